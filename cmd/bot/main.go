package main

import (
	"context"
	"os"
	"time"

	"github.com/yourusername/wabot/internal/api"
	"github.com/yourusername/wabot/internal/commands"
	"github.com/yourusername/wabot/internal/config"
	"github.com/yourusername/wabot/internal/database"
	"github.com/yourusername/wabot/internal/handler"
	"github.com/yourusername/wabot/internal/maintenance"
	"github.com/yourusername/wabot/internal/media"
	"github.com/yourusername/wabot/internal/metrics"
	"github.com/yourusername/wabot/internal/output"
	"github.com/yourusername/wabot/internal/shutdown"
	"github.com/yourusername/wabot/internal/store"
	"github.com/yourusername/wabot/internal/wa"
	"github.com/yourusername/wabot/internal/web"
)

func main() {
	logger := output.NewColorLogger()
	logger.Info("WhatsApp bot starting...")

	cfg, err := config.LoadOrCreate("config/bot.toml")
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger.Success("configuration loaded")

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to initialize database: %v", err)
		os.Exit(1)
	}
	logger.Success("database initialized")

	out, err := output.NewOutput(cfg.Logging.ErrorLogPath)
	if err != nil {
		logger.Error("failed to initialize output: %v", err)
		_ = db.Close()
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Bot.Timezone)
	if err != nil {
		logger.Warning("unknown timezone %q, falling back to UTC", cfg.Bot.Timezone)
		loc = time.UTC
	}

	// In-memory dispatch state
	sessions := store.NewSessionStore(cfg.Limits.GetSessionTTLDuration())
	dedup := store.NewDedupLedger(cfg.Limits.DedupHighWater, cfg.Limits.DedupLowWater)
	games := store.NewGameRegistry()
	quizzes := store.NewQuizRegistry(cfg.Limits.GetQuizTimeoutDuration())

	collector := metrics.NewCollector(db.Conn())

	// External content providers share one HTTP client and circuit breaker
	httpClient := api.NewHTTPClient(cfg.APIs.GetAPITimeoutDuration())
	quotes := api.NewQuoteClient(httpClient, cfg.APIs.QuoteEndpoint)
	prayers := api.NewPrayerClient(httpClient, cfg.APIs.PrayerEndpoint)
	images := api.NewImageClient(httpClient, cfg.APIs.UnsplashKey)
	knowledge := api.NewKnowledgeClient(httpClient, cfg.APIs.KnowledgeGraphKey)
	tts := api.NewTTSClient(httpClient)

	waClient := wa.NewClient(cfg, out)

	culture := commands.NewCultureCommand(sessions)
	prayer := commands.NewPrayerCommand(sessions, prayers, loc)
	quiz := commands.NewQuizCommand(quizzes, waClient)

	registry := commands.NewRegistry()
	registerCommands(registry, registerDeps{
		db:      db,
		client:  waClient,
		cfg:     cfg,
		loc:     loc,
		quotes:  quotes,
		images:  images,
		tts:     tts,
		culture: culture,
		prayer:  prayer,
		quiz:    quiz,
		games:   games,
		quizzes: quizzes,
	}, logger)

	resolver := commands.NewResolver(registry, sessions, quizzes, cfg.Bot.CommandPrefix, waClient.BotJID)

	dispatcher := handler.NewDispatcher(handler.Deps{
		Client:   waClient,
		Registry: registry,
		Resolver: resolver,
		Dedup:    dedup,
		DB:       db,
		Output:   out,
		Metrics:  collector,
		Culture:  culture,
		Prayer:   prayer,
		Quiz:     quiz,
		Stickers: commands.NewStickerConverter(media.NewTranscoder()),
		Answerer: commands.NewQuestionAnswerer(knowledge),
		OwnerJID: cfg.Bot.OwnerJID,
	})
	waClient.SetHandler(dispatcher)

	webServer := web.NewServer(logger, cfg.Server.Port, statusReporter{waClient}, db, collector)
	if err := webServer.Start(); err != nil {
		logger.Error("failed to start web server: %v", err)
	}

	scheduler := maintenance.NewScheduler(out, db, sessions, collector,
		cfg.Database.MessageRetentionDays, cfg.Database.GetVacuumIntervalDuration())
	if err := scheduler.Start(); err != nil {
		logger.Error("failed to start maintenance scheduler: %v", err)
		_ = db.Close()
		os.Exit(1)
	}

	shutdownHandler := shutdown.NewHandler(logger, 5*time.Second)
	shutdownHandler.RegisterShutdownFunc(func() error {
		waClient.Disconnect()
		return nil
	})
	shutdownHandler.RegisterShutdownFunc(func() error {
		scheduler.Stop()
		return nil
	})
	shutdownHandler.RegisterShutdownFunc(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return webServer.Stop(ctx)
	})
	shutdownHandler.RegisterShutdownFunc(func() error {
		return db.Close()
	})
	shutdownHandler.RegisterShutdownFunc(func() error {
		logger.Success("bot has shut down, goodbye")
		return nil
	})
	go shutdownHandler.WaitForShutdown()

	if err := waClient.Connect(context.Background()); err != nil {
		logger.Error("failed to connect to WhatsApp: %v", err)
		shutdownHandler.Shutdown()
		<-shutdownHandler.Done()
		os.Exit(1)
	}

	logger.Success("bot initialization complete")
	<-shutdownHandler.Done()
}

// statusReporter bridges the connection lifecycle to the web status endpoint
type statusReporter struct {
	client *wa.Client
}

func (s statusReporter) State() string         { return string(s.client.State()) }
func (s statusReporter) IsConnected() bool     { return s.client.IsConnected() }
func (s statusReporter) Uptime() time.Duration { return s.client.Uptime() }
func (s statusReporter) BotJID() string        { return s.client.BotJID() }

type registerDeps struct {
	db      *database.DB
	client  commands.ChatClient
	cfg     *config.Config
	loc     *time.Location
	quotes  commands.QuoteService
	images  commands.ImageSearcher
	tts     commands.Synthesizer
	culture *commands.CultureCommand
	prayer  *commands.PrayerCommand
	quiz    *commands.QuizCommand
	games   *store.GameRegistry
	quizzes *store.QuizRegistry
}

// registerCommands wires every chat command into the registry
func registerCommands(registry *commands.Registry, deps registerDeps, logger output.Logger) {
	if err := commands.RegisterMenus(registry); err != nil {
		logger.Error("failed to register menus: %v", err)
	}

	// General
	_ = registry.Register(commands.NewWisdomCommand())
	_ = registry.Register(commands.NewTimeCommand(deps.loc))
	_ = registry.Register(commands.NewQuoteCommand(deps.quotes))
	_ = registry.Register(commands.NewMyMessagesCommand(deps.db))
	_ = registry.Register(commands.NewRepeatCommand(deps.cfg.Limits.RepeatMessageCap))
	_ = registry.Register(commands.NewRepeatLineCommand(deps.cfg.Limits.RepeatLineCap))
	_ = registry.Register(commands.NewDecorateCommand())

	// Menu-driven flows
	_ = registry.Register(deps.culture)
	_ = registry.RegisterAlias("ثقافه", deps.culture.Name())
	_ = registry.Register(deps.prayer)

	// Group management
	_ = registry.Register(commands.NewGroupInfoCommand(deps.db, deps.client))
	_ = registry.Register(commands.NewTopParticipantsCommand(deps.db, deps.client))
	_ = registry.Register(commands.NewMentionAllCommand(deps.client))
	_ = registry.Register(commands.NewAddMemberCommand(deps.client))
	_ = registry.Register(commands.NewKickMemberCommand(deps.client))

	// Games and quiz
	_ = registry.Register(commands.NewXOCommand(deps.games))
	_ = registry.Register(commands.NewCancelGameCommand(deps.games))
	_ = registry.Register(deps.quiz)
	_ = registry.Register(commands.NewCancelQuizCommand(deps.quizzes))

	// Media
	_ = registry.Register(commands.NewVoiceCommand(deps.tts, deps.cfg.Limits.TTSMaxChars))
	_ = registry.Register(commands.NewImageSearchCommand(deps.images))

	logger.Info("commands registered")
}

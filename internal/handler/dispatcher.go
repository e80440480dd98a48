package handler

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/yourusername/wabot/internal/commands"
	"github.com/yourusername/wabot/internal/database"
	"github.com/yourusername/wabot/internal/errors"
	"github.com/yourusername/wabot/internal/metrics"
	"github.com/yourusername/wabot/internal/output"
	"github.com/yourusername/wabot/internal/store"
)

// Ack reactions attached to the triggering message as its command moves
// through the lifecycle
const (
	ackPending = "⏳"
	ackDone    = "✅"
	ackFailed  = "❌"
	ackDenied  = "🔒"
)

// Dispatcher drives one inbound message through counting, classification,
// deduplication, execution and the ack lifecycle. Messages of the same chat
// are processed strictly in order; different chats proceed in parallel.
type Dispatcher struct {
	client   commands.ChatClient
	registry *commands.Registry
	resolver *commands.Resolver
	dedup    store.DedupLedger
	db       *database.DB
	out      *output.Output
	metrics  *metrics.Collector

	culture  *commands.CultureCommand
	prayer   *commands.PrayerCommand
	quiz     *commands.QuizCommand
	stickers *commands.StickerConverter
	answerer *commands.QuestionAnswerer

	ownerJID string

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	newID func() string
}

// Deps bundles the dispatcher's collaborators
type Deps struct {
	Client   commands.ChatClient
	Registry *commands.Registry
	Resolver *commands.Resolver
	Dedup    store.DedupLedger
	DB       *database.DB
	Output   *output.Output
	Metrics  *metrics.Collector // optional

	Culture  *commands.CultureCommand
	Prayer   *commands.PrayerCommand
	Quiz     *commands.QuizCommand
	Stickers *commands.StickerConverter
	Answerer *commands.QuestionAnswerer

	OwnerJID string
}

// NewDispatcher creates a dispatcher
func NewDispatcher(deps Deps) *Dispatcher {
	return &Dispatcher{
		client:   deps.Client,
		registry: deps.Registry,
		resolver: deps.Resolver,
		dedup:    deps.Dedup,
		db:       deps.DB,
		out:      deps.Output,
		metrics:  deps.Metrics,
		culture:  deps.Culture,
		prayer:   deps.Prayer,
		quiz:     deps.Quiz,
		stickers: deps.Stickers,
		answerer: deps.Answerer,
		ownerJID: deps.OwnerJID,
		locks:    make(map[string]*sync.Mutex),
		newID:    uuid.NewString,
	}
}

// Handle processes one inbound message end to end. Safe to call from
// concurrent event goroutines; per-chat ordering is enforced internally.
func (d *Dispatcher) Handle(ctx context.Context, msg *commands.Message) {
	lock := d.chatLock(msg.Chat)
	lock.Lock()
	defer lock.Unlock()

	dispatchID := d.newID()

	defer func() {
		if r := recover(); r != nil {
			d.out.LogErrorWithDispatchID("Panic", fmt.Sprintf("recovered: %v", r), nil, dispatchID)
			d.react(ctx, msg, ackFailed)
		}
	}()

	if msg.IsGroup {
		d.out.Logger.GroupMessage(msg.Chat, msg.PushName, msg.Text)
	} else {
		d.out.Logger.DirectMessage(msg.PushName, msg.Text)
	}

	// Every message counts toward the sender's activity total, whether or
	// not it triggers anything
	if _, err := d.db.IncrementCounter(msg.Sender); err != nil {
		d.out.LogErrorWithDispatchID(string(errors.ErrorTypeDatabase), "increment counter", err, dispatchID)
	}
	if err := d.db.LogMessage(msg.ID, msg.Chat, msg.Sender, msg.Text); err != nil {
		d.out.LogErrorWithDispatchID(string(errors.ErrorTypeDatabase), "log message", err, dispatchID)
	}
	d.recordDispatch()

	res := d.resolver.Resolve(msg)

	// Refusals, canned replies and media conversions answer redelivered
	// events too, so they run before the dedup gate
	switch res.Kind {
	case commands.MatchNone:
		return
	case commands.MatchBlocked, commands.MatchLiteral:
		d.send(ctx, msg.Chat, res.Reply, dispatchID)
		return
	case commands.MatchImageToSticker:
		cctx := d.commandContext(ctx, msg, nil, commands.LevelNormal, dispatchID)
		d.runAcked(ctx, msg, dispatchID, func() (*commands.Response, error) {
			return d.stickers.ToSticker(cctx)
		})
		return
	case commands.MatchStickerToImage:
		cctx := d.commandContext(ctx, msg, nil, commands.LevelNormal, dispatchID)
		d.runAcked(ctx, msg, dispatchID, func() (*commands.Response, error) {
			return d.stickers.ToImage(cctx)
		})
		return
	}

	if d.dedup.Seen(msg.ID) {
		d.out.Logger.Info("[%s] duplicate message %s ignored", dispatchID, msg.ID)
		return
	}
	d.dedup.Record(msg.ID)

	switch res.Kind {
	case commands.MatchCommand:
		level := d.permissionLevel(ctx, msg, dispatchID)
		cctx := d.commandContext(ctx, msg, res.Args, level, dispatchID)
		d.recordCommand(res.Command.Name())
		d.runAcked(ctx, msg, dispatchID, func() (*commands.Response, error) {
			return d.registry.Execute(res.Command, cctx)
		})

	case commands.MatchBotQuestion:
		answer := d.answerer.Answer(ctx, res.Question)
		d.send(ctx, msg.Chat, answer, dispatchID)

	case commands.MatchNumericState:
		cctx := d.commandContext(ctx, msg, nil, commands.LevelNormal, dispatchID)
		resp, err := d.handleMenuNumber(cctx, res)
		d.deliver(ctx, msg, dispatchID, resp, err)

	case commands.MatchQuizAnswer:
		cctx := d.commandContext(ctx, msg, nil, commands.LevelNormal, dispatchID)
		resp, err := d.quiz.AnswerQuiz(cctx, res.Number)
		d.deliver(ctx, msg, dispatchID, resp, err)
	}
}

// handleMenuNumber routes a bare number to the step its session state marks
func (d *Dispatcher) handleMenuNumber(cctx *commands.Context, res commands.Resolution) (*commands.Response, error) {
	switch res.State {
	case store.StateCategory:
		return d.culture.HandleCategory(cctx, res.Number)
	case store.StateCulture:
		return d.culture.HandleCountry(cctx, res.Number)
	case store.StatePrayer:
		return d.prayer.HandleCity(cctx, res.Number)
	default:
		return commands.NewResponse(commands.InvalidSelectionReply), nil
	}
}

// runAcked wraps slow work in the ack lifecycle: pending before, done or
// failed (or denied, for permission refusals) after
func (d *Dispatcher) runAcked(ctx context.Context, msg *commands.Message, dispatchID string, run func() (*commands.Response, error)) {
	d.react(ctx, msg, ackPending)
	resp, err := run()
	d.deliver(ctx, msg, dispatchID, resp, err)
}

// deliver sends a command outcome to the chat and settles the ack
func (d *Dispatcher) deliver(ctx context.Context, msg *commands.Message, dispatchID string, resp *commands.Response, err error) {
	if err != nil {
		userMessage := "❌ حدث خطأ غير متوقع، حاول مرة أخرى لاحقاً"
		if botErr, ok := errors.AsBotError(err); ok {
			userMessage = botErr.UserMessage
			d.out.LogErrorWithDispatchID(string(botErr.Type), botErr.Error(), botErr.InternalError, dispatchID)
			d.recordError(string(botErr.Type))
		} else {
			d.out.LogErrorWithDispatchID(string(errors.ErrorTypeUnexpected), "command failed", err, dispatchID)
			d.recordError(string(errors.ErrorTypeUnexpected))
		}

		d.send(ctx, msg.Chat, userMessage, dispatchID)
		if errors.IsPermission(err) {
			d.react(ctx, msg, ackDenied)
		} else {
			d.react(ctx, msg, ackFailed)
		}
		return
	}

	if resp != nil {
		d.sendResponse(ctx, msg.Chat, resp, dispatchID)
	}
	d.react(ctx, msg, ackDone)
}

// sendResponse pushes every part a response carries
func (d *Dispatcher) sendResponse(ctx context.Context, chat string, resp *commands.Response, dispatchID string) {
	for _, m := range resp.Messages {
		d.send(ctx, chat, m, dispatchID)
	}

	switch {
	case resp.Sticker != nil:
		if err := d.client.SendSticker(ctx, chat, resp.Sticker); err != nil {
			d.out.LogErrorWithDispatchID(string(errors.ErrorTypeAPI), "send sticker", err, dispatchID)
		}
	case resp.Voice != nil:
		if err := d.client.SendVoice(ctx, chat, resp.Voice); err != nil {
			d.out.LogErrorWithDispatchID(string(errors.ErrorTypeAPI), "send voice", err, dispatchID)
		}
	case resp.Image != nil:
		if err := d.client.SendImage(ctx, chat, resp.Image, resp.ImageCaption); err != nil {
			d.out.LogErrorWithDispatchID(string(errors.ErrorTypeAPI), "send image", err, dispatchID)
		}
	case resp.Message != "":
		if len(resp.Mentions) > 0 {
			if err := d.client.SendTextWithMentions(ctx, chat, resp.Message, resp.Mentions); err != nil {
				d.out.LogErrorWithDispatchID(string(errors.ErrorTypeAPI), "send text with mentions", err, dispatchID)
			}
		} else {
			d.send(ctx, chat, resp.Message, dispatchID)
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, chat, text string, dispatchID string) {
	if err := d.client.SendText(ctx, chat, text); err != nil {
		d.out.LogErrorWithDispatchID(string(errors.ErrorTypeAPI), "send text", err, dispatchID)
	}
}

func (d *Dispatcher) react(ctx context.Context, msg *commands.Message, emoji string) {
	if err := d.client.React(ctx, msg.Chat, msg.Sender, msg.ID, emoji); err != nil {
		d.out.Logger.Warning("reaction %s failed: %v", emoji, err)
	}
}

// permissionLevel resolves the sender's authority. Direct-chat senders rank
// as admins so group-only commands fail on the chat check, not on a
// misleading permission refusal.
func (d *Dispatcher) permissionLevel(ctx context.Context, msg *commands.Message, dispatchID string) commands.PermissionLevel {
	if d.ownerJID != "" && msg.Sender == d.ownerJID {
		return commands.LevelOwner
	}
	if !msg.IsGroup {
		return commands.LevelAdmin
	}

	info, err := d.client.GroupInfo(ctx, msg.Chat)
	if err != nil {
		d.out.LogErrorWithDispatchID(string(errors.ErrorTypeAPI), "group info for permission check", err, dispatchID)
		return commands.LevelNormal
	}
	if info.IsAdmin(msg.Sender) {
		return commands.LevelAdmin
	}
	return commands.LevelNormal
}

// commandContext builds the execution context, wiring Notify to a plain
// text send
func (d *Dispatcher) commandContext(ctx context.Context, msg *commands.Message, args []string, level commands.PermissionLevel, dispatchID string) *commands.Context {
	return commands.NewContext(ctx, msg, args, level, dispatchID, func(text string) {
		d.send(ctx, msg.Chat, text, dispatchID)
	})
}

// Metric recording never blocks or fails a dispatch

func (d *Dispatcher) recordDispatch() {
	if d.metrics != nil {
		_ = d.metrics.RecordDispatch()
	}
}

func (d *Dispatcher) recordCommand(name string) {
	if d.metrics != nil {
		_ = d.metrics.RecordCommandUsage(name)
	}
}

func (d *Dispatcher) recordError(errorType string) {
	if d.metrics != nil {
		_ = d.metrics.RecordError(errorType)
	}
}

// chatLock returns the mutex serializing the chat's dispatches
func (d *Dispatcher) chatLock(chat string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()

	lock, ok := d.locks[chat]
	if !ok {
		lock = &sync.Mutex{}
		d.locks[chat] = lock
	}
	return lock
}

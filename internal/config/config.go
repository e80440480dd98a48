package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	defaultConfigPath = "config/bot.toml"
)

// Load reads and parses the configuration file from the specified path.
// If path is empty, it uses the default path.
// A .env file in the working directory, if present, is loaded first so
// secret API keys can be supplied outside the TOML file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigPath
	}

	// .env is optional; missing file is not an error
	_ = godotenv.Load()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found at %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrCreate attempts to load the configuration file, and if it doesn't exist,
// creates a default configuration file and returns the default config.
func LoadOrCreate(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Configuration file not found. Creating default configuration at %s\n", path)

		defaultCfg := DefaultConfig()
		if err := CreateDefault(path, defaultCfg); err != nil {
			return nil, fmt.Errorf("failed to create default configuration: %w", err)
		}

		return defaultCfg, nil
	}

	return Load(path)
}

// CreateDefault creates a default configuration file at the specified path
func CreateDefault(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvOverrides replaces secret fields with environment values when set
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("UNSPLASH_KEY"); v != "" {
		cfg.APIs.UnsplashKey = v
	}
	if v := os.Getenv("KNOWLEDGE_KEY"); v != "" {
		cfg.APIs.KnowledgeGraphKey = v
	}
	if v := os.Getenv("OWNER_JID"); v != "" {
		cfg.Bot.OwnerJID = v
	}
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Bot: BotConfig{
			OwnerJID:      "",
			CommandPrefix: ".",
			BotName:       "بوت",
			Timezone:      "Africa/Cairo",
		},
		WhatsApp: WhatsAppConfig{
			SessionDBPath: "data/session.db",
			DeviceName:    "WaBot",
		},
		Database: DatabaseConfig{
			Path:                 "data/bot.db",
			VacuumInterval:       86400, // 24 hours in seconds
			MessageRetentionDays: 90,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		APIs: APIsConfig{
			PrayerEndpoint: "https://api.aladhan.com/v1/timingsByCity",
			QuoteEndpoint:  "https://api.quotable.io/random",
			TimeoutSeconds: 10,
		},
		Limits: LimitsConfig{
			RepeatMessageCap:  10,
			RepeatLineCap:     100,
			QuizTimeoutSecs:   60,
			SessionTTLSecs:    300, // 5 minutes
			DedupHighWater:    1000,
			DedupLowWater:     500,
			TTSMaxChars:       200,
			ReconnectDelayMin: 5,
			ReconnectDelayMax: 300,
		},
		Logging: LoggingConfig{
			ErrorLogPath: "logs/errors.log",
		},
	}
}

// validate checks that all required configuration fields are present and valid
func validate(cfg *Config) error {
	if cfg.Bot.CommandPrefix == "" {
		return fmt.Errorf("bot.command_prefix is required")
	}
	if cfg.Bot.BotName == "" {
		return fmt.Errorf("bot.bot_name is required")
	}
	if cfg.Bot.Timezone == "" {
		return fmt.Errorf("bot.timezone is required")
	}

	if cfg.WhatsApp.SessionDBPath == "" {
		return fmt.Errorf("whatsapp.session_db_path is required")
	}
	if cfg.WhatsApp.DeviceName == "" {
		return fmt.Errorf("whatsapp.device_name is required")
	}

	if cfg.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if cfg.Database.VacuumInterval <= 0 {
		return fmt.Errorf("database.vacuum_interval must be positive, got %d", cfg.Database.VacuumInterval)
	}
	if cfg.Database.MessageRetentionDays <= 0 {
		return fmt.Errorf("database.message_retention_days must be positive, got %d", cfg.Database.MessageRetentionDays)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.APIs.TimeoutSeconds <= 0 {
		return fmt.Errorf("apis.timeout_seconds must be positive, got %d", cfg.APIs.TimeoutSeconds)
	}

	if cfg.Limits.RepeatMessageCap <= 0 {
		return fmt.Errorf("limits.repeat_message_cap must be positive, got %d", cfg.Limits.RepeatMessageCap)
	}
	if cfg.Limits.RepeatLineCap <= 0 {
		return fmt.Errorf("limits.repeat_line_cap must be positive, got %d", cfg.Limits.RepeatLineCap)
	}
	if cfg.Limits.QuizTimeoutSecs <= 0 {
		return fmt.Errorf("limits.quiz_timeout_secs must be positive, got %d", cfg.Limits.QuizTimeoutSecs)
	}
	if cfg.Limits.SessionTTLSecs <= 0 {
		return fmt.Errorf("limits.session_ttl_secs must be positive, got %d", cfg.Limits.SessionTTLSecs)
	}
	if cfg.Limits.DedupLowWater <= 0 {
		return fmt.Errorf("limits.dedup_low_water must be positive, got %d", cfg.Limits.DedupLowWater)
	}
	if cfg.Limits.DedupHighWater <= cfg.Limits.DedupLowWater {
		return fmt.Errorf("limits.dedup_high_water (%d) must be greater than dedup_low_water (%d)",
			cfg.Limits.DedupHighWater, cfg.Limits.DedupLowWater)
	}
	if cfg.Limits.TTSMaxChars <= 0 {
		return fmt.Errorf("limits.tts_max_chars must be positive, got %d", cfg.Limits.TTSMaxChars)
	}
	if cfg.Limits.ReconnectDelayMin <= 0 {
		return fmt.Errorf("limits.reconnect_delay_min must be positive, got %d", cfg.Limits.ReconnectDelayMin)
	}
	if cfg.Limits.ReconnectDelayMax < cfg.Limits.ReconnectDelayMin {
		return fmt.Errorf("limits.reconnect_delay_min (%d) cannot be greater than reconnect_delay_max (%d)",
			cfg.Limits.ReconnectDelayMin, cfg.Limits.ReconnectDelayMax)
	}

	if cfg.Logging.ErrorLogPath == "" {
		return fmt.Errorf("logging.error_log_path is required")
	}

	return nil
}

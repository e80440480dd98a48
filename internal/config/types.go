package config

import "time"

// Config represents the complete bot configuration
type Config struct {
	Bot      BotConfig      `toml:"bot"`
	WhatsApp WhatsAppConfig `toml:"whatsapp"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	APIs     APIsConfig     `toml:"apis"`
	Limits   LimitsConfig   `toml:"limits"`
	Logging  LoggingConfig  `toml:"logging"`
}

// BotConfig contains bot behavior settings
type BotConfig struct {
	// OwnerJID is the WhatsApp JID of the bot owner (e.g. "201234567890@s.whatsapp.net")
	OwnerJID      string `toml:"owner_jid"`
	CommandPrefix string `toml:"command_prefix"`
	// BotName is the name the bot answers to in question-style messages
	BotName  string `toml:"bot_name"`
	Timezone string `toml:"timezone"`
}

// WhatsAppConfig contains protocol session settings
type WhatsAppConfig struct {
	SessionDBPath string `toml:"session_db_path"`
	DeviceName    string `toml:"device_name"`
}

// DatabaseConfig contains bot database settings
type DatabaseConfig struct {
	Path                 string `toml:"path"`
	VacuumInterval       int    `toml:"vacuum_interval"`
	MessageRetentionDays int    `toml:"message_retention_days"`
}

// ServerConfig contains the liveness HTTP server settings
type ServerConfig struct {
	Port int `toml:"port"`
}

// APIsConfig contains external content API settings.
// Keys may be overridden from the environment (UNSPLASH_KEY, KNOWLEDGE_KEY).
type APIsConfig struct {
	UnsplashKey       string `toml:"unsplash_key"`
	KnowledgeGraphKey string `toml:"knowledge_graph_key"`
	PrayerEndpoint    string `toml:"prayer_endpoint"`
	QuoteEndpoint     string `toml:"quote_endpoint"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
}

// LimitsConfig contains dispatch-core bounds
type LimitsConfig struct {
	RepeatMessageCap  int `toml:"repeat_message_cap"`
	RepeatLineCap     int `toml:"repeat_line_cap"`
	QuizTimeoutSecs   int `toml:"quiz_timeout_secs"`
	SessionTTLSecs    int `toml:"session_ttl_secs"`
	DedupHighWater    int `toml:"dedup_high_water"`
	DedupLowWater     int `toml:"dedup_low_water"`
	TTSMaxChars       int `toml:"tts_max_chars"`
	ReconnectDelayMin int `toml:"reconnect_delay_min"`
	ReconnectDelayMax int `toml:"reconnect_delay_max"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	ErrorLogPath string `toml:"error_log_path"`
}

// GetAPITimeoutDuration returns the external API timeout as a time.Duration
func (c *APIsConfig) GetAPITimeoutDuration() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetQuizTimeoutDuration returns the quiz timeout as a time.Duration
func (c *LimitsConfig) GetQuizTimeoutDuration() time.Duration {
	return time.Duration(c.QuizTimeoutSecs) * time.Second
}

// GetSessionTTLDuration returns the session state TTL as a time.Duration
func (c *LimitsConfig) GetSessionTTLDuration() time.Duration {
	return time.Duration(c.SessionTTLSecs) * time.Second
}

// GetReconnectDelayMinDuration returns the minimum reconnect delay as a time.Duration
func (c *LimitsConfig) GetReconnectDelayMinDuration() time.Duration {
	return time.Duration(c.ReconnectDelayMin) * time.Second
}

// GetReconnectDelayMaxDuration returns the maximum reconnect delay as a time.Duration
func (c *LimitsConfig) GetReconnectDelayMaxDuration() time.Duration {
	return time.Duration(c.ReconnectDelayMax) * time.Second
}

// GetVacuumIntervalDuration returns the vacuum interval as a time.Duration
func (c *DatabaseConfig) GetVacuumIntervalDuration() time.Duration {
	return time.Duration(c.VacuumInterval) * time.Second
}

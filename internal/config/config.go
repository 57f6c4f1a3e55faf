// Package config loads wordquiz settings from YAML, environment variables
// and defaults.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Session  SessionConfig  `yaml:"session"`
	Audio    AudioConfig    `yaml:"audio"`
	Journal  JournalConfig  `yaml:"journal"`
	Log      LogConfig      `yaml:"log"`
	Practice PracticeConfig `yaml:"practice"`
}

// ServerConfig locates the vocabulary backend.
type ServerConfig struct {
	BaseURL string        `yaml:"base_url" env:"WORDQUIZ_SERVER_URL"     env-default:"http://localhost:5000" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout"  env:"WORDQUIZ_SERVER_TIMEOUT" env-default:"10s"                   validate:"gt=0"`
}

// AuthConfig holds the backend login. Login is skipped when Username is empty.
type AuthConfig struct {
	Username string `yaml:"username" env:"WORDQUIZ_USERNAME"`
	Password string `yaml:"password" env:"WORDQUIZ_PASSWORD" validate:"required_with=Username"`
}

// SessionConfig tunes the quiz session.
type SessionConfig struct {
	// AutoAdvance is the delay before moving on after a correct answer.
	// A negative value disables it.
	AutoAdvance time.Duration `yaml:"auto_advance" env:"WORDQUIZ_AUTO_ADVANCE" env-default:"1s"`
	Category    string        `yaml:"category"     env:"WORDQUIZ_CATEGORY"`
}

// AudioConfig controls pronunciation playback.
type AudioConfig struct {
	Mute bool `yaml:"mute" env:"WORDQUIZ_MUTE"`
	// Command plays a file, e.g. "mpg123 -q {file}". Empty means the first
	// known player found on PATH.
	Command  string `yaml:"command"   env:"WORDQUIZ_AUDIO_COMMAND"`
	CacheDir string `yaml:"cache_dir" env:"WORDQUIZ_AUDIO_CACHE"`
}

// JournalConfig controls the local answer journal.
type JournalConfig struct {
	Path     string `yaml:"path"     env:"WORDQUIZ_DB"`
	Disabled bool   `yaml:"disabled" env:"WORDQUIZ_JOURNAL_DISABLED"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WORDQUIZ_LOG_LEVEL"  env-default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"WORDQUIZ_LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
	// Path of the log file. Empty means $XDG_STATE_HOME/wordquiz/wordquiz.log.
	Path string `yaml:"path" env:"WORDQUIZ_LOG_PATH"`
}

// Practice coaches.
const (
	CoachServer = "server"
	CoachLLM    = "llm"
)

// PracticeConfig selects where AI practice sentences come from.
type PracticeConfig struct {
	Coach string `yaml:"coach" env:"WORDQUIZ_COACH" env-default:"server" validate:"oneof=server llm"`
}

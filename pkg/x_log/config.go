package x_log

import (
	"os"
	"strconv"
	"strings"
)

const (
	EnvLevel    = "HUFF_LOG_LEVEL"
	EnvFile     = "HUFF_LOG_FILE"
	EnvStyle    = "HUFF_LOG_STYLE"
	EnvMaxMB    = "HUFF_LOG_FILE_MAX_MB"
	EnvCompress = "HUFF_LOG_FILE_COMPRESS"
)

// Config describes log outputs. Style is "dark" or "light"; MaxSize is in
// megabytes and MaxAge in days.
type Config struct {
	Level       string `json:"level" mapstructure:"level"`
	LogFile     string `json:"log_file" mapstructure:"log_file"`
	ToConsole   bool   `json:"to_console" mapstructure:"to_console"`
	ToFile      bool   `json:"to_file" mapstructure:"to_file"`
	ColoredFile bool   `json:"colored_file" mapstructure:"colored_file"`
	Style       string `json:"style" mapstructure:"style"`
	MaxSize     int    `json:"max_size" mapstructure:"max_size"`
	MaxBackups  int    `json:"max_backups" mapstructure:"max_backups"`
	MaxAge      int    `json:"max_age" mapstructure:"max_age"`
	Compress    bool   `json:"compress" mapstructure:"compress"`
}

var defaultConfig = Config{
	Level:      "info",
	LogFile:    "logs/huff.log",
	ToConsole:  true,
	ToFile:     false,
	Style:      "dark",
	MaxSize:    10,
	MaxBackups: 5,
	MaxAge:     7,
	Compress:   true,
}

// DefaultConfig returns a copy of the built-in configuration.
func DefaultConfig() Config {
	return defaultConfig
}

// ApplyEnv overrides cfg with HUFF_LOG_* variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvLevel); v != "" {
		cfg.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvFile); v != "" {
		cfg.LogFile = v
		cfg.ToFile = true
	}
	if v := os.Getenv(EnvStyle); v != "" {
		cfg.Style = v
	}
	if v, err := strconv.Atoi(os.Getenv(EnvMaxMB)); err == nil && v > 0 {
		cfg.MaxSize = v
	}
	if v := os.Getenv(EnvCompress); v != "" {
		cfg.Compress = v == "1" || strings.EqualFold(v, "true")
	}
}

// applyDefaults fills zero values from defaultConfig.
func applyDefaults(cfg *Config) {
	if cfg.Level == "" {
		cfg.Level = defaultConfig.Level
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultConfig.LogFile
	}
	if cfg.Style == "" {
		cfg.Style = defaultConfig.Style
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = defaultConfig.MaxSize
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = defaultConfig.MaxBackups
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = defaultConfig.MaxAge
	}
}

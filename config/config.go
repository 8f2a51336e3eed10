package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rskv-p/huff/constant"
	"github.com/rskv-p/huff/pkg/x_db"
	"github.com/rskv-p/huff/pkg/x_log"
	"github.com/rskv-p/huff/pkg/x_report"
)

// Config holds the runtime settings of the CLI and the encode services.
type Config struct {
	ServiceName string       `json:"service_name"`
	LogLevel    string       `json:"log_level"`
	HTTPAddr    string       `json:"http_addr"`
	JWTSecret   string       `json:"jwt_secret"`
	CacheSize   int          `json:"cache_size"`
	DumpBytes   int          `json:"dump_bytes"`
	History     int          `json:"history"`
	Store       bool         `json:"store"`
	DB          x_db.Config  `json:"db"`
	NATS        NATSSettings `json:"nats"`
	Logger      x_log.Config `json:"logger"`
}

// Default returns a default config.
func Default() *Config {
	return &Config{
		ServiceName: "huff",
		LogLevel:    "info",
		HTTPAddr:    "127.0.0.1:8080",
		CacheSize:   128,
		DumpBytes:   x_report.DefaultDumpBytes,
		History:     20,
		DB:          x_db.DefaultConfig(),
		NATS:        DefaultNATS(),
		Logger:      x_log.DefaultConfig(),
	}
}

// Load reads a JSON config file over the defaults. ${VAR} references are
// expanded from the environment before decoding.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	data = ReplaceEnvVars(data)

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config json: %w", err)
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv loads config from environment using prefix.
func LoadFromEnv(prefix string) *Config {
	cfg := Default()

	cfg.ServiceName = GetEnvStr(prefix+"SERVICE_NAME", cfg.ServiceName)
	cfg.LogLevel = GetEnvStr(prefix+"LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPAddr = GetEnvStr(prefix+"HTTP_ADDR", cfg.HTTPAddr)
	cfg.JWTSecret = GetEnvStr(prefix+"JWT_SECRET", cfg.JWTSecret)
	cfg.CacheSize = GetEnvInt(prefix+"CACHE_SIZE", cfg.CacheSize)
	cfg.DumpBytes = GetEnvInt(prefix+"DUMP_BYTES", cfg.DumpBytes)
	cfg.History = GetEnvInt(prefix+"HISTORY", cfg.History)
	cfg.Store = GetEnvBool(prefix+"STORE", cfg.Store)

	cfg.DB.Type = x_db.DbType(GetEnvStr(prefix+"DB_TYPE", string(cfg.DB.Type)))
	cfg.DB.DSN = GetEnvStr(prefix+"DB_DSN", cfg.DB.DSN)

	cfg.NATS.URL = GetEnvStr(prefix+"NATS_URL", cfg.NATS.URL)
	cfg.NATS.Host = GetEnvStr(prefix+"NATS_HOST", cfg.NATS.Host)
	cfg.NATS.Port = GetEnvInt(prefix+"NATS_PORT", cfg.NATS.Port)
	cfg.NATS.Embedded = GetEnvBool(prefix+"NATS_EMBEDDED", cfg.NATS.Embedded)
	cfg.NATS.Subject = GetEnvStr(prefix+"NATS_SUBJECT", cfg.NATS.Subject)

	return cfg
}

// LoadWithFallback loads from HUFF_CONFIG or HUFF_ env vars.
func LoadWithFallback() *Config {
	if path := os.Getenv(constant.EnvConfigPath); path != "" {
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}
	return LoadFromEnv(constant.EnvPrefix)
}

// Validate checks config for required values.
func (cfg *Config) Validate() error {
	var bad []string
	if cfg.ServiceName == "" {
		bad = append(bad, "service_name")
	}
	if cfg.HTTPAddr == "" {
		bad = append(bad, "http_addr")
	}
	if cfg.CacheSize < 0 {
		bad = append(bad, fmt.Sprintf("cache_size(%d)", cfg.CacheSize))
	}
	if cfg.DumpBytes < 0 {
		bad = append(bad, fmt.Sprintf("dump_bytes(%d)", cfg.DumpBytes))
	}
	if err := cfg.DB.Validate(); err != nil {
		bad = append(bad, "db: "+err.Error())
	}
	if err := cfg.NATS.Validate(); err != nil {
		bad = append(bad, "nats: "+err.Error())
	}
	if len(bad) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(bad, ", "))
	}
	return nil
}

// String returns the config as indented JSON with secrets masked.
func (cfg *Config) String() string {
	data, _ := json.MarshalIndent(cfg.masked(), "", "  ")
	return string(data)
}

func (cfg *Config) Dump(w io.Writer) {
	_, _ = io.WriteString(w, cfg.String())
}

func (cfg *Config) masked() *Config {
	c := *cfg
	if c.JWTSecret != "" {
		c.JWTSecret = "***"
	}
	return &c
}

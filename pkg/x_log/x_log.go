// Package x_log configures the process-wide zerolog logger: styled console
// output, rotated file output and per-module child loggers.
package x_log

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu      sync.Mutex
	closers []io.Closer
)

// InitWithConfig configures the global logger. service, when set, is attached
// to every entry as the "service" field; New adds "module" on top of it.
func InitWithConfig(cfg *Config, service string) {
	c := *cfg
	applyDefaults(&c)

	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	mu.Lock()
	defer mu.Unlock()
	closeOutputs()

	writers, cs := buildWriters(&c)
	closers = cs

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if service != "" {
		ctx = ctx.Str("service", service)
	}
	log.Logger = ctx.Logger()
}

// Close releases file outputs opened by InitWithConfig.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeOutputs()
}

func closeOutputs() {
	for _, c := range closers {
		_ = c.Close()
	}
	closers = nil
}

// New returns a child of the global logger tagged with module.
func New(module string) zerolog.Logger {
	return log.Logger.With().Str("module", module).Logger()
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// From returns the logger stored in ctx, or the global logger.
func From(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

// Stderr is a console logger used before configuration is loaded.
func Stderr() zerolog.Logger {
	styles := DefaultStylesDark()
	styles.Out = os.Stderr
	return zerolog.New(ConsoleWriterWithStyles(styles)).With().Timestamp().Logger()
}

//---------------------
// Global shortcuts
//---------------------

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }
func Fatal() *zerolog.Event { return log.Fatal() }

package x_db

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm/logger"
)

//
// ---------- GORM log adapter (zerolog) ----------

// logAdapter implements gorm's logger.Interface on top of zerolog.
type logAdapter struct {
	Logger        *zerolog.Logger
	LogLevel      logger.LogLevel
	SlowThreshold time.Duration
}

func newLogAdapter(zl *zerolog.Logger, level logger.LogLevel) logger.Interface {
	return &logAdapter{
		Logger:        zl,
		LogLevel:      level,
		SlowThreshold: 200 * time.Millisecond,
	}
}

func parseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func (l *logAdapter) LogMode(level logger.LogLevel) logger.Interface {
	n := *l
	n.LogLevel = level
	return &n
}

func (l *logAdapter) Info(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Info {
		l.Logger.Info().Msgf(msg, data...)
	}
}

func (l *logAdapter) Warn(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Warn {
		l.Logger.Warn().Msgf(msg, data...)
	}
}

func (l *logAdapter) Error(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Error {
		l.Logger.Error().Msgf(msg, data...)
	}
}

// Trace logs statements; failed and slow ones are raised to error and warn.
func (l *logAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	e := l.Logger.With().
		Str("elapsed", elapsed.String()).
		Int64("rows", rows).
		Logger()

	switch {
	case err != nil && err != logger.ErrRecordNotFound && l.LogLevel >= logger.Error:
		e.Error().Err(err).Msg(sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= logger.Warn:
		e.Warn().Msgf("slow sql: %s", sql)
	case l.LogLevel >= logger.Info:
		e.Debug().Msg(sql)
	}
}

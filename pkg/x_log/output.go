package x_log

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// buildWriters returns the configured outputs and the closers owning files.
// Console output goes to stderr so reports on stdout stay clean.
func buildWriters(cfg *Config) ([]io.Writer, []io.Closer) {
	var (
		writers []io.Writer
		closers []io.Closer
	)

	if cfg.ToFile && cfg.LogFile != "" {
		rot := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		closers = append(closers, rot)

		if cfg.ColoredFile {
			styles := DefaultStylesByName(cfg.Style)
			styles.Out = rot
			styles.ForceColor = true
			writers = append(writers, ConsoleWriterWithStyles(styles))
		} else {
			writers = append(writers, rot)
		}
	}

	if cfg.ToConsole || len(writers) == 0 {
		styles := DefaultStylesByName(cfg.Style)
		styles.Out = os.Stderr
		writers = append(writers, ConsoleWriterWithStyles(styles))
	}
	return writers, closers
}

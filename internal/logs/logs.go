package logs

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// FileLogger returns a JSON debug logger appending to path, used as the
// per-run trail next to the console output. The returned closer must be
// called when the run ends.
func FileLogger(path string) (*slog.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}

	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	}
	return slog.New(slog.NewJSONHandler(f, opts)), f.Close, nil
}

// ConsoleLogger returns a tinted stderr logger and installs it as the
// process default.
func ConsoleLogger() *slog.Logger {
	return ConsoleLoggerAt(slog.LevelInfo)
}

// ConsoleLoggerAt is ConsoleLogger with an explicit minimum level,
// wired to the --verbose flag.
func ConsoleLoggerAt(level slog.Level) *slog.Logger {
	w := os.Stderr

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
	return logger
}

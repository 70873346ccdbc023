package logger

import (
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/tradeyard/tradeyard-auction-service/internal/config"
)

// Setup builds the process-wide slog logger from LogConfig and installs it
// as the default.
func Setup(cfg config.LogConfig) *slog.Logger {
	var out io.Writer
	switch cfg.LogOutput {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(cfg.LogOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("failed to open log output %s: %v", cfg.LogOutput, err)
		}
		out = f
	}

	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

func levelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug", "dbg":
		return slog.LevelDebug
	case "info", "inf":
		return slog.LevelInfo
	case "warn", "wrn":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init routes the default slog logger to a text handler appending to the
// given file, creating parent directories as needed.
func Init(path, level string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: levelFromString(level)})
	slog.SetDefault(slog.New(handler))
	return nil
}

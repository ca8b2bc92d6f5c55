package logger

import (
	"log/slog"
	"os"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/config"
)

var base *slog.Logger

// InitLogger builds the JSON logger the service logs through and installs
// it as the package logger. Debug mode lowers the level and adds source
// locations.
func InitLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	addSource := false
	if cfg.GinMode == "debug" {
		level = slog.LevelDebug
		addSource = true
	}

	base = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	}))
	base.Info("Structured logging initialized", "level", level.String())
	return base
}

// active falls back to slog's default logger before InitLogger runs, so
// library code and tests can log without wiring.
func active() *slog.Logger {
	if base == nil {
		return slog.Default()
	}
	return base
}

func Info(msg string, args ...any)  { active().Info(msg, args...) }
func Warn(msg string, args ...any)  { active().Warn(msg, args...) }
func Error(msg string, args ...any) { active().Error(msg, args...) }
func Debug(msg string, args ...any) { active().Debug(msg, args...) }

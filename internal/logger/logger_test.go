package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/config"
)

func TestInitLoggerLevels(t *testing.T) {
	l := InitLogger(&config.Config{GinMode: "release"})
	if l == nil {
		t.Fatal("InitLogger returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level should be disabled outside debug mode")
	}

	l = InitLogger(&config.Config{GinMode: "debug"})
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level should be enabled in debug mode")
	}
}

func TestHelpersWorkBeforeInit(t *testing.T) {
	saved := base
	base = nil
	defer func() { base = saved }()

	// Must not panic without a configured logger.
	Info("message before init")
	Warn("message before init")
}

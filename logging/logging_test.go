package logging

import (
	"testing"

	"github.com/rs/zerolog"

	"clusterfile/config"
)

func TestSetupLevels(t *testing.T) {
	logger, cleanup, err := Setup(config.LoggingConfig{Level: "warn"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer cleanup()
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %s", logger.GetLevel())
	}
}

func TestSetupDefaultsToInfo(t *testing.T) {
	logger, cleanup, err := Setup(config.LoggingConfig{})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer cleanup()
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", logger.GetLevel())
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	if _, _, err := Setup(config.LoggingConfig{Level: "shout"}); err == nil {
		t.Fatal("expected level parse error")
	}
}

func TestSetupRejectsLokiWithoutURL(t *testing.T) {
	cfg := config.LoggingConfig{Loki: config.LokiConfig{Enabled: true}}
	if _, _, err := Setup(cfg); err == nil {
		t.Fatal("expected loki url error")
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewProductionLogsJSON(t *testing.T) {
	var output bytes.Buffer
	logger := New("warn", "production", &output)

	if logger.GetLevel() != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %s", logger.GetLevel())
	}

	logger.WithField("user_id", 7).Warn("reminder skipped")
	payload := map[string]any{}
	if err := json.Unmarshal(output.Bytes(), &payload); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", output.String(), err)
	}
	if payload["msg"] != "reminder skipped" || payload["user_id"] != float64(7) {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var output bytes.Buffer
	logger := New("loud", "development", &output)

	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", logger.GetLevel())
	}
	if !strings.Contains(output.String(), "invalid log level") {
		t.Fatalf("expected warning about invalid level, got %q", output.String())
	}
}

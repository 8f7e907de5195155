package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ki-Sung/weather-email-service/internal/config"
)

func TestNewLogger_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Config{AppEnv: "prod", LogLevel: slog.LevelInfo}

	logger := newLogger(cfg, "1.2.3", "weather-mail", &buf)
	logger.Info("hello", "k", "v")
	logger.Debug("hidden")

	line := strings.TrimSpace(buf.String())
	if strings.Contains(line, "\n") {
		t.Fatalf("expected one log line, got %q", line)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	for key, want := range map[string]string{
		"msg": "hello", "app": "weather-mail", "version": "1.2.3", "env": "prod", "k": "v",
	} {
		if got := rec[key]; got != want {
			t.Errorf("%s = %v, want %q", key, got, want)
		}
	}
}

func TestNewLogger_DevUsesTextHandler(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Config{AppEnv: "dev", LogLevel: slog.LevelDebug}

	newLogger(cfg, "dev", "weather-mail", &buf).Debug("dev message")

	out := buf.String()
	if !strings.Contains(out, "dev message") {
		t.Errorf("output %q missing message", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("dev output looks like JSON: %q", out)
	}
}

func TestNewLogger_MirrorsToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := config.Config{
		AppEnv:        "dev",
		LogLevel:      slog.LevelInfo,
		LogFile:       path,
		LogMaxSizeMB:  1,
		LogMaxBackups: 1,
	}

	newLogger(cfg, "dev", "weather-mail", &buf).Info("to both")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to both") {
		t.Errorf("log file %q missing message", data)
	}
	if strings.Contains(string(data), "\x1b[") {
		t.Errorf("log file contains color escapes: %q", data)
	}
	if !strings.Contains(buf.String(), "to both") {
		t.Errorf("stdout %q missing message", buf.String())
	}
}

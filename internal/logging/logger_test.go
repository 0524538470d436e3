package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:  LevelDebug,
		Output: &buf,
		JSON:   true,
	}

	logger := New(cfg)
	if logger == nil {
		t.Fatal("New logger should not be nil")
	}

	t.Run("Levels", func(t *testing.T) {
		buf.Reset()
		logger.Debug("debug msg")
		if !strings.Contains(buf.String(), "debug msg") {
			t.Error("debug logging failed")
		}

		buf.Reset()
		logger.Info("info msg")
		if !strings.Contains(buf.String(), "info msg") {
			t.Error("info logging failed")
		}

		buf.Reset()
		logger.Warn("warn msg")
		if !strings.Contains(buf.String(), "warn msg") {
			t.Error("warn logging failed")
		}

		buf.Reset()
		logger.Error("error msg")
		if !strings.Contains(buf.String(), "error msg") {
			t.Error("error logging failed")
		}
	})

	t.Run("JSONShape", func(t *testing.T) {
		buf.Reset()
		logger.Info("setting MTU", "ifname", "eth0", "mtu", 9000)
		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if rec["ifname"] != "eth0" {
			t.Errorf("expected ifname=eth0, got %v", rec["ifname"])
		}
	})

	t.Run("DynamicLevel", func(t *testing.T) {
		logger.SetLevel(LevelError)
		if logger.GetLevel() != LevelError {
			t.Error("SetLevel failed")
		}

		buf.Reset()
		logger.Info("should not appear")
		if buf.Len() > 0 {
			t.Error("Logged info message when level was Error")
		}

		logger.SetLevel(LevelDebug)
	})

	t.Run("WithComponent", func(t *testing.T) {
		buf.Reset()
		l := logger.WithComponent("network")
		l.Info("msg")
		if !strings.Contains(buf.String(), "network") {
			t.Error("WithComponent missing component field")
		}
	})

	t.Run("WithFields", func(t *testing.T) {
		buf.Reset()
		l := logger.WithFields(map[string]any{"foo": "bar"})
		l.Info("msg")
		if !strings.Contains(buf.String(), "foo") || !strings.Contains(buf.String(), "bar") {
			t.Error("WithFields missing fields")
		}
	})
}

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf})

	logger.WithComponent("Control").Info("bringing link up", "ifname", "eth0", "note", "two words")
	line := buf.String()

	if !strings.Contains(line, fmt.Sprintf("netctl[%d]: ", os.Getpid())) {
		t.Errorf("missing process prefix: %q", line)
	}
	if !strings.Contains(line, "[info] control: bringing link up") {
		t.Errorf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "ifname=eth0") {
		t.Errorf("missing attr: %q", line)
	}
	if !strings.Contains(line, `note="two words"`) {
		t.Errorf("spaced value not quoted: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Errorf("component should be promoted to the header: %q", line)
	}
}

func TestTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelTrace, Output: &buf})
	logger.Log(context.Background(), LevelTrace, "raw reply")
	if !strings.Contains(buf.String(), "[trace]") {
		t.Errorf("expected trace label, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", LevelTrace, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	t.Setenv(EnvFormat, "JSON")

	cfg := ConfigFromEnv()
	if cfg.Level != LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.Level)
	}
	if !cfg.JSON {
		t.Error("expected JSON output")
	}
}

func TestDefaultLogger(t *testing.T) {
	l := Default()
	if l == nil {
		t.Fatal("Default logger is nil")
	}

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	SetDefault(New(cfg))
	defer SetDefault(l)

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	Errorf("error %s", "formatted")

	WithComponent("comp").Info("comp msg")

	if buf.Len() == 0 {
		t.Error("Default logger captured no output")
	}
	if strings.Contains(buf.String(), "[debug]") {
		t.Error("unexpected debug output at info level")
	}
}

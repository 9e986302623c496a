package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func setup(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelWarn)
	})
	return buf
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestInit(t *testing.T) {
	t.Run("verbose enables debug", func(t *testing.T) {
		Init(true)
		if GetLevel() != LevelDebug {
			t.Errorf("expected LevelDebug, got %v", GetLevel())
		}
	})

	t.Run("non-verbose defaults to warn", func(t *testing.T) {
		Init(false)
		if GetLevel() != LevelWarn {
			t.Errorf("expected LevelWarn, got %v", GetLevel())
		}
	})
}

func TestLevelFiltering(t *testing.T) {
	buf := setup(t)
	SetLevel(LevelWarn)

	Debug("hidden debug")
	Info("hidden info")
	Warn("shown warn")
	Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown warn") || !strings.Contains(out, "shown error") {
		t.Errorf("warn/error should pass the filter: %q", out)
	}
}

func TestFormatting(t *testing.T) {
	buf := setup(t)
	SetLevel(LevelDebug)

	Info("parsing %s", "/etc/apache2/vhosts.conf")

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("expected level prefix, got %q", out)
	}
	if !strings.Contains(out, "parsing /etc/apache2/vhosts.conf") {
		t.Errorf("expected formatted message, got %q", out)
	}
}

func TestFields(t *testing.T) {
	buf := setup(t)
	SetLevel(LevelDebug)

	InfoFields("commit", map[string]interface{}{
		"file":   "vhosts.conf",
		"backup": "vhosts.conf.bak",
	})

	out := buf.String()
	// Keys are sorted, so backup comes before file.
	if !strings.Contains(out, "commit backup=vhosts.conf.bak file=vhosts.conf") {
		t.Errorf("expected sorted key=value fields, got %q", out)
	}
}

func TestFieldsEmpty(t *testing.T) {
	buf := setup(t)
	SetLevel(LevelDebug)

	DebugFields("plain", nil)

	if !strings.Contains(buf.String(), "plain\n") {
		t.Errorf("expected bare message with no trailing fields, got %q", buf.String())
	}
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		debug bool
	}{
		{"info hides debug", log.InfoLevel, false},
		{"debug shows debug", log.DebugLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.level)
			l.Info("listening", "addr", ":5000")
			l.Debug("cache hit", "type", "http")

			out := buf.String()
			if !strings.Contains(out, "listening") {
				t.Errorf("info message missing: %q", out)
			}
			if got := strings.Contains(out, "cache hit"); got != tt.debug {
				t.Errorf("debug message shown = %v, want %v", got, tt.debug)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestProgressLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.DebugLevel)).done("Described json")
	if !strings.Contains(buf.String(), "Described json (") {
		t.Errorf("progress output = %q", buf.String())
	}

	buf.Reset()
	newProgress(newLogger(&buf, log.InfoLevel)).done("Described json")
	if buf.Len() != 0 {
		t.Errorf("progress should be silent at info level, got %q", buf.String())
	}
}

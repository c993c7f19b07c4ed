package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestLevelFiltering(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.Debug("hidden")
	l.Info("shown")
	l.Warn("careful")
	l.Error("broken")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered, got %q", out)
	}
	for _, want := range []string{"INFO shown", "WARN careful", "ERROR broken"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestDebugLevelShowsEverything(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	l := New(&buf, LevelDebug)
	l.Debug("details")

	if !strings.Contains(buf.String(), "DEBUG details") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

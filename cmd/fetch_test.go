package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/perarneng/gmailday/pkg/interfaces"
)

func TestRunFetchLogsBadDate(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	fetchCmd.SetOut(&buf)
	defer fetchCmd.SetOut(nil)

	err := runFetch(fetchCmd, []string{"2024-06-04", "2024-06-01"})
	if !errors.Is(err, interfaces.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, err.Error()) {
		t.Errorf("expected the query error to be logged, got %q", out)
	}
}

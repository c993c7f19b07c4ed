package output

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/perarneng/gmailday/pkg/interfaces"
	"github.com/perarneng/gmailday/pkg/logger"
)

func day(s string) time.Time {
	t, err := time.Parse(FileDateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newWriter(t *testing.T) (*FileWriter, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileWriter(logger.New(io.Discard, logger.LevelDebug), dir), dir
}

func readRecords(t *testing.T, path string) []interfaces.MessageRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var got []interfaces.MessageRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return got
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name  string
		query interfaces.Query
		want  string
	}{
		{"single day", interfaces.Query{Start: day("2024-06-04"), End: day("2024-06-04")}, "emails_2024-06-04.json"},
		{"range", interfaces.Query{Start: day("2024-06-01"), End: day("2024-06-30")}, "emails_2024-06-01_to_2024-06-30.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.query); got != tt.want {
				t.Errorf("FileName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPersistExampleScenario(t *testing.T) {
	w, dir := newWriter(t)
	q := interfaces.Query{Start: day("2024-06-04"), End: day("2024-06-04")}
	records := []interfaces.MessageRecord{
		{ID: "18f2", Date: "Tue, 4 Jun 2024 09:00:00 +0000", Subject: "Standup", From: "bob@example.com", Snippet: "notes"},
		{ID: "18f1", From: "ana@example.com"},
	}

	path, err := w.Persist(records, q)
	if err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if path != filepath.Join(dir, "emails_2024-06-04.json") {
		t.Errorf("path = %s", path)
	}
	if got := readRecords(t, path); !reflect.DeepEqual(got, records) {
		t.Errorf("got %+v, want %+v", got, records)
	}

	// Field names and defaults as they appear on disk.
	data, _ := os.ReadFile(path)
	var raw []map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"id": "18f1", "date": "", "subject": "", "from": "ana@example.com", "snippet": ""}
	if !reflect.DeepEqual(raw[1], want) {
		t.Errorf("second record on disk = %v, want %v", raw[1], want)
	}
	if data[0] != '[' || data[1] != '\n' || string(data[2:6]) != "  {\n" {
		t.Errorf("expected indented JSON array, got %q", data[:10])
	}
}

func TestPersistEmptyWritesEmptyArray(t *testing.T) {
	w, _ := newWriter(t)
	q := interfaces.Query{Start: day("2024-06-04"), End: day("2024-06-04")}

	for _, records := range [][]interfaces.MessageRecord{nil, {}} {
		path, err := w.Persist(records, q)
		if err != nil {
			t.Fatalf("Persist failed: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "[]" {
			t.Errorf("expected [] on disk, got %q", data)
		}
	}
}

func TestPersistOverwrites(t *testing.T) {
	w, _ := newWriter(t)
	q := interfaces.Query{Start: day("2024-06-01"), End: day("2024-06-30")}

	first := []interfaces.MessageRecord{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	if _, err := w.Persist(first, q); err != nil {
		t.Fatal(err)
	}
	second := []interfaces.MessageRecord{{ID: "9"}}
	path, err := w.Persist(second, q)
	if err != nil {
		t.Fatal(err)
	}

	if got := readRecords(t, path); !reflect.DeepEqual(got, second) {
		t.Errorf("expected file replaced by second run, got %+v", got)
	}
}

func TestPersistWriteError(t *testing.T) {
	w := NewFileWriter(logger.New(io.Discard, logger.LevelDebug), filepath.Join(t.TempDir(), "missing"))
	_, err := w.Persist(nil, interfaces.Query{Start: day("2024-06-04"), End: day("2024-06-04")})
	if !errors.Is(err, interfaces.ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestValidateOutputDir(t *testing.T) {
	log := logger.New(io.Discard, logger.LevelDebug)
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{"existing dir", dir, false},
		{"missing dir", filepath.Join(dir, "nope"), true},
		{"regular file", file, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFileWriter(log, tt.dir).ValidateOutputDir()
			if tt.wantErr {
				if !errors.Is(err, interfaces.ErrIO) {
					t.Errorf("expected ErrIO, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/perarneng/gmailday/pkg/interfaces"
)

// FileDateLayout is the date format used in output file names.
const FileDateLayout = "2006-01-02"

type FileWriter struct {
	logger    interfaces.Logger
	outputDir string
}

func NewFileWriter(logger interfaces.Logger, outputDir string) *FileWriter {
	return &FileWriter{
		logger:    logger,
		outputDir: outputDir,
	}
}

// ValidateOutputDir checks that the directory Persist writes to exists.
func (w *FileWriter) ValidateOutputDir() error {
	outputDir := w.outputDir
	info, err := os.Stat(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			w.logger.Error(fmt.Sprintf("Output directory does not exist: %s", outputDir))
			return fmt.Errorf("%w: output directory does not exist: %s", interfaces.ErrIO, outputDir)
		}
		return fmt.Errorf("%w: error checking output directory: %v", interfaces.ErrIO, err)
	}

	if !info.IsDir() {
		w.logger.Error(fmt.Sprintf("Output path is not a directory: %s", outputDir))
		return fmt.Errorf("%w: output path is not a directory: %s", interfaces.ErrIO, outputDir)
	}

	w.logger.Debug(fmt.Sprintf("Output directory validated: %s", outputDir))
	return nil
}

// FileName is emails_<date>.json for one day, emails_<start>_to_<end>.json otherwise.
func FileName(q interfaces.Query) string {
	if q.SingleDay() {
		return fmt.Sprintf("emails_%s.json", q.Start.Format(FileDateLayout))
	}
	return fmt.Sprintf("emails_%s_to_%s.json", q.Start.Format(FileDateLayout), q.End.Format(FileDateLayout))
}

// Persist writes records as an indented JSON array, replacing any existing
// file of the same name. It returns the written path.
func (w *FileWriter) Persist(records []interfaces.MessageRecord, q interfaces.Query) (string, error) {
	if records == nil {
		records = []interfaces.MessageRecord{}
	}
	path := filepath.Join(w.outputDir, FileName(q))

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		w.logger.Error(fmt.Sprintf("Failed to encode messages: %v", err))
		return "", fmt.Errorf("%w: failed to encode messages: %v", interfaces.ErrIO, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		w.logger.Error(fmt.Sprintf("Failed to write %s: %v", path, err))
		return "", fmt.Errorf("%w: failed to write %s: %v", interfaces.ErrIO, path, err)
	}

	w.logger.Info(fmt.Sprintf("Wrote %d messages to %s", len(records), path))
	return path, nil
}

var _ interfaces.OutputWriter = (*FileWriter)(nil)

package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"codeberg.org/snonux/codewise/internal/dataset"
)

// CSVExporter writes one row per record. The code_files column holds the
// JSON encoded code file list.
type CSVExporter struct {
	path string
}

// NewCSVExporter creates a CSV file exporter.
func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{path: path}
}

func (e *CSVExporter) Name() string { return "csv:" + e.path }

// Export writes the file, replacing any existing one.
func (e *CSVExporter) Export(_ context.Context, ds *dataset.Dataset) error {
	f, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range ds.Records() {
		files := r.CodeFiles
		if files == nil {
			files = []dataset.CodeFile{}
		}
		code, err := json.Marshal(files)
		if err != nil {
			return fmt.Errorf("failed to encode code files of %s: %w", r.Key, err)
		}
		row := []string{r.Tag, r.Key, string(code), deref(r.Readme), deref(r.Link)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	return f.Close()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

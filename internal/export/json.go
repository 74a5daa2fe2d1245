package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"codeberg.org/snonux/codewise/internal/dataset"
)

// Document is the JSON layout of an exported dataset.
type Document struct {
	Columns []string                `json:"columns"`
	Records []dataset.ProblemRecord `json:"records"`
}

// EncodeJSON writes ds as an indented JSON document.
func EncodeJSON(w io.Writer, ds *dataset.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(Document{Columns: ds.Columns(), Records: ds.Records()})
}

// JSONExporter writes the dataset to a JSON file.
type JSONExporter struct {
	path string
}

// NewJSONExporter creates a JSON file exporter.
func NewJSONExporter(path string) *JSONExporter {
	return &JSONExporter{path: path}
}

func (e *JSONExporter) Name() string { return "json:" + e.path }

// Export writes the file, replacing any existing one.
func (e *JSONExporter) Export(_ context.Context, ds *dataset.Dataset) error {
	f, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	if err := EncodeJSON(f, ds); err != nil {
		f.Close()
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return f.Close()
}

package export

import (
	"context"
	"fmt"

	"codeberg.org/snonux/codewise/internal/dataset"
)

// Exporter writes a dataset somewhere.
type Exporter interface {
	Name() string
	Export(ctx context.Context, ds *dataset.Dataset) error
}

// Config lists the export targets of a run. Empty fields are skipped.
type Config struct {
	JSONPath    string
	CSVPath     string
	SQLitePath  string
	PostgresDSN string
	S3          S3Config
}

// New builds the exporters for every configured target.
func New(cfg Config) ([]Exporter, error) {
	var out []Exporter

	if cfg.JSONPath != "" {
		out = append(out, NewJSONExporter(cfg.JSONPath))
	}
	if cfg.CSVPath != "" {
		out = append(out, NewCSVExporter(cfg.CSVPath))
	}
	if cfg.SQLitePath != "" {
		out = append(out, NewSQLiteExporter(cfg.SQLitePath))
	}
	if cfg.PostgresDSN != "" {
		out = append(out, NewPostgresExporter(cfg.PostgresDSN))
	}
	if cfg.S3.Bucket != "" {
		s3, err := NewS3Exporter(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to configure S3 export: %w", err)
		}
		out = append(out, s3)
	}

	return out, nil
}

// FilePaths returns the local files the configured exporters write, so they
// can be archived before a run.
func (c Config) FilePaths() []string {
	var paths []string
	for _, p := range []string{c.JSONPath, c.CSVPath, c.SQLitePath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/codewise/internal/dataset"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS problems (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tag TEXT NOT NULL,
	key TEXT NOT NULL,
	readme TEXT,
	link TEXT,
	UNIQUE(tag, key)
);
CREATE TABLE IF NOT EXISTS code_files (
	problem_id INTEGER NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	extension TEXT,
	content TEXT,
	PRIMARY KEY (problem_id, position)
);`

// SQLiteExporter upserts records into a SQLite database file. Rerunning an
// export replaces rows with the same tag and key.
type SQLiteExporter struct {
	path string
}

// NewSQLiteExporter creates a SQLite exporter.
func NewSQLiteExporter(path string) *SQLiteExporter {
	return &SQLiteExporter{path: path}
}

func (e *SQLiteExporter) Name() string { return "sqlite:" + e.path }

// Export writes every record in one transaction.
func (e *SQLiteExporter) Export(ctx context.Context, ds *dataset.Dataset) error {
	db, err := sql.Open("sqlite3", e.path+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range ds.Records() {
		if err := insertSQLiteRecord(ctx, tx, r); err != nil {
			return fmt.Errorf("failed to insert %s/%s: %w", r.Tag, r.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func insertSQLiteRecord(ctx context.Context, tx *sql.Tx, r dataset.ProblemRecord) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM problems WHERE tag = ? AND key = ?`, r.Tag, r.Key); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO problems (tag, key, readme, link) VALUES (?, ?, ?, ?)`,
		r.Tag, r.Key, r.Readme, r.Link)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, cf := range r.CodeFiles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO code_files (problem_id, position, name, extension, content) VALUES (?, ?, ?, ?, ?)`,
			id, i, cf.Name, cf.Extension, cf.Content); err != nil {
			return err
		}
	}
	return nil
}

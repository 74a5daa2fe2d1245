package export

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"codeberg.org/snonux/codewise/internal/dataset"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS problems (
	id BIGSERIAL PRIMARY KEY,
	tag TEXT NOT NULL,
	key TEXT NOT NULL,
	readme TEXT,
	link TEXT,
	UNIQUE (tag, key)
);
CREATE TABLE IF NOT EXISTS code_files (
	problem_id BIGINT NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
	position INT NOT NULL,
	name TEXT NOT NULL,
	extension TEXT,
	content TEXT,
	PRIMARY KEY (problem_id, position)
);`

// PostgresExporter upserts records into a PostgreSQL database.
type PostgresExporter struct {
	dsn string
}

// NewPostgresExporter creates a PostgreSQL exporter for dsn.
func NewPostgresExporter(dsn string) *PostgresExporter {
	return &PostgresExporter{dsn: dsn}
}

func (e *PostgresExporter) Name() string { return "postgres" }

// Export writes every record in one transaction.
func (e *PostgresExporter) Export(ctx context.Context, ds *dataset.Dataset) error {
	conn, err := pgx.Connect(ctx, e.dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range ds.Records() {
		if err := insertPostgresRecord(ctx, tx, r); err != nil {
			return fmt.Errorf("failed to insert %s/%s: %w", r.Tag, r.Key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func insertPostgresRecord(ctx context.Context, tx pgx.Tx, r dataset.ProblemRecord) error {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO problems (tag, key, readme, link) VALUES ($1, $2, $3, $4)
		ON CONFLICT (tag, key) DO UPDATE SET readme = EXCLUDED.readme, link = EXCLUDED.link
		RETURNING id`,
		r.Tag, r.Key, r.Readme, r.Link).Scan(&id)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM code_files WHERE problem_id = $1`, id); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for i, cf := range r.CodeFiles {
		batch.Queue(`INSERT INTO code_files (problem_id, position, name, extension, content) VALUES ($1, $2, $3, $4, $5)`,
			id, i, cf.Name, cf.Extension, cf.Content)
	}
	if batch.Len() == 0 {
		return nil
	}
	return tx.SendBatch(ctx, batch).Close()
}

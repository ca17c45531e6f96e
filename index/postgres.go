package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/hdcinema/linkstream/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS media_files (
	id         BIGSERIAL PRIMARY KEY,
	file_name  TEXT NOT NULL,
	file_size  BIGINT NOT NULL,
	mime_type  TEXT NOT NULL DEFAULT '',
	file_ref   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_media_files_name ON media_files (LOWER(file_name));
`

// PostgresIndex is the sqlx-backed implementation of Index.
type PostgresIndex struct {
	db *sqlx.DB
}

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to file database: %w", err)
	}
	return db, nil
}

func NewPostgres(db *sqlx.DB) *PostgresIndex {
	return &PostgresIndex{db: db}
}

// EnsureSchema creates the media table when it does not exist yet.
func (p *PostgresIndex) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensuring media schema: %w", err)
	}
	return nil
}

// Search matches every whitespace-separated term of the query against file
// names, case-insensitively, and returns up to limit records ordered by name.
func (p *PostgresIndex) Search(ctx context.Context, query string, limit int) ([]types.FileRecord, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	conditions := make([]string, 0, len(terms))
	args := make([]interface{}, 0, len(terms)+1)
	for _, term := range terms {
		conditions = append(conditions, fmt.Sprintf("file_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+term+"%")
	}
	args = append(args, limit)

	q := fmt.Sprintf(
		"SELECT id, file_name, file_size, mime_type, file_ref FROM media_files WHERE %s ORDER BY file_name ASC LIMIT $%d",
		strings.Join(conditions, " AND "), len(args),
	)

	var records []types.FileRecord
	if err := p.db.SelectContext(ctx, &records, q, args...); err != nil {
		return nil, fmt.Errorf("searching media files: %w", err)
	}
	return records, nil
}

// Get loads a single record by its numeric reference.
func (p *PostgresIndex) Get(ctx context.Context, id int64) (*types.FileRecord, error) {
	var rec types.FileRecord
	err := p.db.GetContext(ctx, &rec,
		"SELECT id, file_name, file_size, mime_type, file_ref FROM media_files WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading media file %d: %w", id, err)
	}
	return &rec, nil
}

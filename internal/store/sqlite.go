package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scholex/semindex/pkg/types"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteStore creates a new SQLite store instance
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Upsert inserts or fully overwrites the row for the natural key.
// Concurrent upserts to the same key are last-writer-wins by design;
// embedding triggers are operator-initiated and not concurrent.
func (s *SQLiteStore) Upsert(ctx context.Context, row *EmbeddedContent) error {
	if !row.ContentType.Valid() {
		return fmt.Errorf("%w: content type %q", types.ErrInvalidArgument, row.ContentType)
	}

	metadata, err := json.Marshal(row.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO embedded_content (id, content_type, content_id, title, content, vector, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_type, content_id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			vector = excluded.vector,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`
	now := time.Now().UTC()
	newID := uuid.NewString()
	err = s.db.QueryRowContext(ctx, query,
		newID, row.ContentType, row.ContentID, row.Title, row.Content,
		serializeVector(row.Vector), string(metadata), now, now).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert embedded content: %w", err)
	}

	row.UpdatedAt = now
	return nil
}

// Get returns the row for the natural key
func (s *SQLiteStore) Get(ctx context.Context, contentType types.ContentType, contentID string) (*EmbeddedContent, error) {
	query := `
		SELECT id, content_type, content_id, title, content, vector, metadata, created_at, updated_at
		FROM embedded_content
		WHERE content_type = ? AND content_id = ?
	`
	row, err := scanRow(s.db.QueryRowContext(ctx, query, contentType, contentID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s/%s", types.ErrNotFound, contentType, contentID)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ListAll returns every row. Order is arbitrary from the caller's point
// of view; ranking never depends on it.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]*EmbeddedContent, error) {
	query := `
		SELECT id, content_type, content_id, title, content, vector, metadata, created_at, updated_at
		FROM embedded_content
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded content: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var all []*EmbeddedContent
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, row)
	}
	return all, rows.Err()
}

// Delete removes zero or one row; a missing row is not an error
func (s *SQLiteStore) Delete(ctx context.Context, contentType types.ContentType, contentID string) error {
	query := `DELETE FROM embedded_content WHERE content_type = ? AND content_id = ?`
	_, err := s.db.ExecContext(ctx, query, contentType, contentID)
	if err != nil {
		return fmt.Errorf("failed to delete embedded content: %w", err)
	}
	return nil
}

// CountByType returns the number of rows for one content type
func (s *SQLiteStore) CountByType(ctx context.Context, contentType types.ContentType) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM embedded_content WHERE content_type = ?", contentType).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count embedded content: %w", err)
	}
	return count, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRow reads one embedded_content row
func scanRow(sc scanner) (*EmbeddedContent, error) {
	var row EmbeddedContent
	var vectorBlob []byte
	var metadata string
	err := sc.Scan(
		&row.ID, &row.ContentType, &row.ContentID, &row.Title, &row.Content,
		&vectorBlob, &metadata, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	row.Vector = deserializeVector(vectorBlob)
	if err := json.Unmarshal([]byte(metadata), &row.Metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return &row, nil
}

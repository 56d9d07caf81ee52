package registry

import (
	"context"
	"database/sql"
	"fmt"
)

// TagStore persists tag sets keyed by owner id. Owners are channel ids
// and service ids; the store does not distinguish them. Save replaces
// the owner's full set, so removal is expressed by saving the remainder.
type TagStore interface {
	Load(ctx context.Context, ownerID string) ([]string, error)
	Save(ctx context.Context, ownerID string, tags []string) error
}

// SQLiteTagStore persists tags in the owner_tags table created by the
// schema migrations. One row per (owner, tag) pair.
type SQLiteTagStore struct {
	db *sql.DB
}

// NewSQLiteTagStore wraps an open database handle. The handle is owned
// by the caller; the store never closes it.
func NewSQLiteTagStore(db *sql.DB) *SQLiteTagStore {
	return &SQLiteTagStore{db: db}
}

// Load returns the persisted tags for an owner, sorted. An owner with
// no rows yields an empty slice, not an error.
func (s *SQLiteTagStore) Load(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag FROM owner_tags WHERE owner_id = ? ORDER BY tag`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

// Save replaces the owner's tag set inside one transaction.
func (s *SQLiteTagStore) Save(ctx context.Context, ownerID string, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM owner_tags WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO owner_tags (owner_id, tag) VALUES (?, ?)`, ownerID, tag); err != nil {
			return fmt.Errorf("insert tag: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tags: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/objectid"
)

func scanTag(s rowScanner) (models.Tag, error) {
	var t models.Tag
	err := s.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ListTags returns every tag ordered by name.
func (db *DB) ListTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM tags ORDER BY name COLLATE `+db.dialect.byteOrder+`, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list tags: %w", err)
	}
	defer rows.Close()

	out := []models.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan tag: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTag returns the tag with id or apperr.ErrNotFound.
func (db *DB) GetTag(ctx context.Context, id string) (models.Tag, error) {
	t, err := scanTag(db.conn.QueryRowContext(ctx,
		db.rebind(`SELECT id, name, created_at, updated_at FROM tags WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tag{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Tag{}, fmt.Errorf("store: get tag: %w", err)
	}
	return t, nil
}

// EnsureTags inserts any of names that do not exist yet. Existing tags are
// untouched.
func (db *DB) EnsureTags(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, db.rebind(`
		INSERT INTO tags (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO NOTHING
	`))
	if err != nil {
		return fmt.Errorf("store: prepare tag insert: %w", err)
	}
	defer stmt.Close()

	ts := now()
	for _, name := range names {
		if _, err := stmt.ExecContext(ctx, objectid.New(), name, ts, ts); err != nil {
			return fmt.Errorf("store: insert tag %q: %w", name, err)
		}
	}
	return tx.Commit()
}

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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(s rowScanner) (models.Folder, error) {
	var f models.Folder
	err := s.Scan(&f.ID, &f.Name, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

// ListFolders returns every folder ordered by name.
func (db *DB) ListFolders(ctx context.Context) ([]models.Folder, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM folders ORDER BY name COLLATE `+db.dialect.byteOrder+`, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list folders: %w", err)
	}
	defer rows.Close()

	out := []models.Folder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan folder: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetFolder returns the folder with id or apperr.ErrNotFound.
func (db *DB) GetFolder(ctx context.Context, id string) (models.Folder, error) {
	return db.getFolder(ctx, db.conn, id)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (db *DB) getFolder(ctx context.Context, q queryer, id string) (models.Folder, error) {
	f, err := scanFolder(q.QueryRowContext(ctx,
		db.rebind(`SELECT id, name, created_at, updated_at FROM folders WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Folder{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Folder{}, fmt.Errorf("store: get folder: %w", err)
	}
	return f, nil
}

// CreateFolder inserts a folder with a fresh id.
func (db *DB) CreateFolder(ctx context.Context, name string) (models.Folder, error) {
	ts := now()
	f := models.Folder{ID: objectid.New(), Name: name, CreatedAt: ts, UpdatedAt: ts}
	_, err := db.conn.ExecContext(ctx,
		db.rebind(`INSERT INTO folders (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`),
		f.ID, f.Name, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return models.Folder{}, db.mapWriteErr("create folder", err)
	}
	return f, nil
}

// UpdateFolder renames a folder and returns the updated document.
func (db *DB) UpdateFolder(ctx context.Context, id, name string) (models.Folder, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.Folder{}, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx,
		db.rebind(`UPDATE folders SET name = ?, updated_at = ? WHERE id = ?`), name, now(), id)
	if err != nil {
		return models.Folder{}, db.mapWriteErr("update folder", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.Folder{}, fmt.Errorf("store: update folder: %w", err)
	} else if n == 0 {
		return models.Folder{}, apperr.ErrNotFound
	}

	f, err := db.getFolder(ctx, tx, id)
	if err != nil {
		return models.Folder{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Folder{}, fmt.Errorf("store: commit: %w", err)
	}
	return f, nil
}

// DeleteFolder removes a folder. Notes are left alone.
func (db *DB) DeleteFolder(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, db.rebind(`DELETE FROM folders WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("store: delete folder: %w", err)
	}
	return mustAffect(res, "delete folder")
}

func mustAffect(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: %s: %w", op, err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

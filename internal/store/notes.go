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

const noteColumns = `id, title, content, folder_id, created_at, updated_at`

func scanNote(s rowScanner) (models.Note, error) {
	var (
		n        models.Note
		folderID sql.NullString
	)
	err := s.Scan(&n.ID, &n.Title, &n.Content, &folderID, &n.CreatedAt, &n.UpdatedAt)
	n.FolderID = folderID.String
	return n, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ListNotes returns notes in creation order, optionally limited to a folder.
func (db *DB) ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes`
	var args []any
	if filter.FolderID != "" {
		query += ` WHERE folder_id = ?`
		args = append(args, filter.FolderID)
	}
	query += ` ORDER BY created_at, id`

	rows, err := db.conn.QueryContext(ctx, db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	defer rows.Close()

	out := []models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// GetNote returns the note with id or apperr.ErrNotFound.
func (db *DB) GetNote(ctx context.Context, id string) (models.Note, error) {
	n, err := scanNote(db.conn.QueryRowContext(ctx,
		db.rebind(`SELECT `+noteColumns+` FROM notes WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("store: get note: %w", err)
	}
	return n, nil
}

// CreateNote inserts n with a fresh id and timestamps. n.ID is ignored.
func (db *DB) CreateNote(ctx context.Context, n models.Note) (models.Note, error) {
	ts := now()
	n.ID = objectid.New()
	n.CreatedAt, n.UpdatedAt = ts, ts
	_, err := db.conn.ExecContext(ctx,
		db.rebind(`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
		n.ID, n.Title, n.Content, nullString(n.FolderID), n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return models.Note{}, db.mapWriteErr("create note", err)
	}
	return n, nil
}

// DeleteNote removes a single note.
func (db *DB) DeleteNote(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, db.rebind(`DELETE FROM notes WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	return mustAffect(res, "delete note")
}

// DeleteNotesByFolder removes every note filed under folderID and reports how
// many were removed.
func (db *DB) DeleteNotesByFolder(ctx context.Context, folderID string) (int64, error) {
	res, err := db.conn.ExecContext(ctx, db.rebind(`DELETE FROM notes WHERE folder_id = ?`), folderID)
	if err != nil {
		return 0, fmt.Errorf("store: delete notes by folder: %w", err)
	}
	return res.RowsAffected()
}

// ClearNotesFolder unfiles every note filed under folderID.
func (db *DB) ClearNotesFolder(ctx context.Context, folderID string) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		db.rebind(`UPDATE notes SET folder_id = NULL, updated_at = ? WHERE folder_id = ?`), now(), folderID)
	if err != nil {
		return 0, fmt.Errorf("store: clear notes folder: %w", err)
	}
	return res.RowsAffected()
}

// CountNotesByFolder reports how many notes are filed under folderID.
func (db *DB) CountNotesByFolder(ctx context.Context, folderID string) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		db.rebind(`SELECT count(*) FROM notes WHERE folder_id = ?`), folderID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("store: count notes: %w", err)
	}
	return n, nil
}

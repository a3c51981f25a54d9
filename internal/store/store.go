// Package store persists folders, tags and notes in a SQL database.
//
// One implementation serves two dialects: SQLite (mattn/go-sqlite3) for local
// and test use, and PostgreSQL (pgx stdlib driver) for shared deployments.
// Identifiers are assigned by the store. Missing documents surface as
// apperr.ErrNotFound, unique-name violations as apperr.ErrDuplicateName.
package store

import (
	"context"

	"github.com/starford/noteful/internal/models"
)

// FolderRepo is the folder collection.
type FolderRepo interface {
	ListFolders(ctx context.Context) ([]models.Folder, error)
	GetFolder(ctx context.Context, id string) (models.Folder, error)
	CreateFolder(ctx context.Context, name string) (models.Folder, error)
	UpdateFolder(ctx context.Context, id, name string) (models.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
}

// TagRepo is the tag collection. Tags are only written by EnsureTags.
type TagRepo interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, id string) (models.Tag, error)
	EnsureTags(ctx context.Context, names []string) error
}

// NoteRepo is the note collection, including the bulk operations used when
// a folder goes away.
type NoteRepo interface {
	ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	GetNote(ctx context.Context, id string) (models.Note, error)
	CreateNote(ctx context.Context, n models.Note) (models.Note, error)
	DeleteNote(ctx context.Context, id string) error
	DeleteNotesByFolder(ctx context.Context, folderID string) (int64, error)
	ClearNotesFolder(ctx context.Context, folderID string) (int64, error)
	CountNotesByFolder(ctx context.Context, folderID string) (int, error)
}

// Store is every collection plus connection lifecycle.
type Store interface {
	FolderRepo
	TagRepo
	NoteRepo
	Ping(ctx context.Context) error
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)

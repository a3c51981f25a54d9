// Package folderservice implements folder operations, including the manual
// cascade onto notes when a folder is deleted.
package folderservice

import (
	"context"
	"errors"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/objectid"
	"github.com/starford/noteful/internal/store"
)

// DeletePolicy decides what happens to notes filed in a deleted folder.
type DeletePolicy string

const (
	// Cascade deletes the notes.
	Cascade DeletePolicy = "cascade"
	// SetNull keeps the notes and unfiles them.
	SetNull DeletePolicy = "set_null"
	// Restrict refuses to delete a folder that still has notes.
	Restrict DeletePolicy = "restrict"
)

// Service holds no per-request state; it is safe for concurrent use.
type Service struct {
	folders store.FolderRepo
	notes   store.NoteRepo
	policy  DeletePolicy
	logger  *slog.Logger
}

// NewService creates a folder service. An empty policy means Cascade and a
// nil logger means slog.Default().
func NewService(folders store.FolderRepo, notes store.NoteRepo, policy DeletePolicy, logger *slog.Logger) *Service {
	if policy == "" {
		policy = Cascade
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{folders: folders, notes: notes, policy: policy, logger: logger}
}

var nameRule = validation.Required.Error("missing `name` in request body")

func validateName(name string) error {
	if err := validation.Validate(name, nameRule); err != nil {
		return &apperr.ValidationError{Err: err}
	}
	return nil
}

// List returns every folder sorted by name.
func (s *Service) List(ctx context.Context) ([]models.Folder, error) {
	return s.folders.ListFolders(ctx)
}

// Get returns one folder.
func (s *Service) Get(ctx context.Context, id string) (models.Folder, error) {
	if !objectid.IsValid(id) {
		return models.Folder{}, apperr.ErrInvalidID
	}
	return s.folders.GetFolder(ctx, id)
}

// Create inserts a folder. A taken name fails with apperr.ErrDuplicateName.
func (s *Service) Create(ctx context.Context, name string) (models.Folder, error) {
	if err := validateName(name); err != nil {
		return models.Folder{}, err
	}
	return s.folders.CreateFolder(ctx, name)
}

// Update renames a folder and returns the new version. The name is checked
// before the id.
func (s *Service) Update(ctx context.Context, id, name string) (models.Folder, error) {
	if err := validateName(name); err != nil {
		return models.Folder{}, err
	}
	if !objectid.IsValid(id) {
		return models.Folder{}, apperr.ErrInvalidID
	}
	return s.folders.UpdateFolder(ctx, id, name)
}

// Delete removes a folder and applies the delete policy to its notes.
//
// For Cascade and SetNull the folder delete and the note update are issued
// concurrently and joined; either failing fails the call. They are not
// atomic: one may have been applied when the other fails. Only the folder
// delete decides between success and apperr.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !objectid.IsValid(id) {
		return apperr.ErrInvalidID
	}
	switch s.policy {
	case Restrict:
		return s.deleteRestricted(ctx, id)
	case SetNull:
		return s.deleteJoined(ctx, id, s.notes.ClearNotesFolder)
	default:
		return s.deleteJoined(ctx, id, s.notes.DeleteNotesByFolder)
	}
}

func (s *Service) deleteJoined(ctx context.Context, id string, detach func(context.Context, string) (int64, error)) error {
	var (
		found    bool
		affected int64
	)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.folders.DeleteFolder(gCtx, id)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})

	g.Go(func() error {
		n, err := detach(gCtx, id)
		affected = n
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if !found {
		return apperr.ErrNotFound
	}
	s.logger.Debug("folder deleted",
		slog.String("id", id),
		slog.String("policy", string(s.policy)),
		slog.Int64("notes_affected", affected))
	return nil
}

func (s *Service) deleteRestricted(ctx context.Context, id string) error {
	n, err := s.notes.CountNotesByFolder(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.ErrFolderInUse
	}
	return s.folders.DeleteFolder(ctx, id)
}

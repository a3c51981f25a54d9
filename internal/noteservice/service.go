// Package noteservice implements the note operations needed to file notes in
// folders and observe the folder delete policy.
package noteservice

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/objectid"
	"github.com/starford/noteful/internal/store"
)

// NoteInput is the writable part of a note.
type NoteInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	FolderID string `json:"folderId"`
}

// Validate checks the input before it reaches the store.
func (in NoteInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required.Error("missing `title` in request body")),
		validation.Field(&in.FolderID, validation.By(func(v any) error {
			if s, _ := v.(string); s != "" && !objectid.IsValid(s) {
				return validation.NewError("validation_folder_id", "the `folderId` is not valid")
			}
			return nil
		})),
	)
}

// Service coordinates note storage.
type Service struct {
	notes store.NoteRepo
}

// NewService creates a new note service.
func NewService(notes store.NoteRepo) *Service {
	return &Service{notes: notes}
}

// List returns notes in creation order, limited to folderID when set.
func (s *Service) List(ctx context.Context, folderID string) ([]models.Note, error) {
	if folderID != "" && !objectid.IsValid(folderID) {
		return nil, apperr.ErrInvalidID
	}
	return s.notes.ListNotes(ctx, models.NoteFilter{FolderID: folderID})
}

// Get returns one note.
func (s *Service) Get(ctx context.Context, id string) (models.Note, error) {
	if !objectid.IsValid(id) {
		return models.Note{}, apperr.ErrInvalidID
	}
	return s.notes.GetNote(ctx, id)
}

// Create stores a new note. The folder is not required to exist.
func (s *Service) Create(ctx context.Context, in NoteInput) (models.Note, error) {
	if err := in.Validate(); err != nil {
		return models.Note{}, &apperr.ValidationError{Err: err}
	}
	return s.notes.CreateNote(ctx, models.Note{
		Title:    in.Title,
		Content:  in.Content,
		FolderID: in.FolderID,
	})
}

// Delete removes a note.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !objectid.IsValid(id) {
		return apperr.ErrInvalidID
	}
	return s.notes.DeleteNote(ctx, id)
}

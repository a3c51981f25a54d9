package api

import (
	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/sse"
)

// FolderRequest is the request body for creating or renaming a folder.
type FolderRequest struct {
	Name string `json:"name" example:"Work" validate:"required"`
}

// NoteRequest is the request body for creating a note.
type NoteRequest struct {
	Title    string `json:"title" example:"Standup" validate:"required"`
	Content  string `json:"content" example:"Discussed roadmap"`
	FolderID string `json:"folderId,omitempty" example:"5f1e9c2b8a3d4e5f6a7b8c9d"`
}

// Folder is the folder response type (aliased from the domain layer).
type Folder = models.Folder

// Tag is the tag response type (aliased from the domain layer).
type Tag = models.Tag

// Note is the note response type (aliased from the domain layer).
type Note = models.Note

// Publisher receives change events.
type Publisher interface {
	Publish(sse.Event)
}

// idEvent is the payload of every change event.
func idEvent(kind, id string) sse.Event {
	return sse.Event{Type: kind, Data: map[string]string{"id": id}}
}

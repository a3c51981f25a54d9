package models

import "time"

// Note is a piece of content that may belong to a folder.
// FolderID is empty when the note is not filed.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FolderID  string    `json:"folderId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteFilter narrows a note listing. Zero value lists everything.
type NoteFilter struct {
	FolderID string
}

// Package models defines the domain types for Noteful.
package models

import "time"

// Folder is a named container that notes may reference. Name is unique.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

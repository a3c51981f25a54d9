// Package tagservice implements read-only tag operations.
package tagservice

import (
	"context"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/objectid"
	"github.com/starford/noteful/internal/store"
)

type Service struct {
	tags store.TagRepo
}

func NewService(tags store.TagRepo) *Service {
	return &Service{tags: tags}
}

// List returns every tag sorted by name.
func (s *Service) List(ctx context.Context) ([]models.Tag, error) {
	return s.tags.ListTags(ctx)
}

// Get returns one tag.
func (s *Service) Get(ctx context.Context, id string) (models.Tag, error) {
	if !objectid.IsValid(id) {
		return models.Tag{}, apperr.ErrInvalidID
	}
	return s.tags.GetTag(ctx, id)
}

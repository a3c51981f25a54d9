package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/noteful/internal/folderservice"
	"github.com/starford/noteful/internal/noteservice"
	"github.com/starford/noteful/internal/tagservice"
)

// RouterConfig wires the services and options the API depends on.
type RouterConfig struct {
	Folders *folderservice.Service
	Tags    *tagservice.Service
	Notes   *noteservice.Service

	// Events, if non-nil, receives a change event after every successful write.
	Events Publisher
	// EventStream, if non-nil, is mounted at GET /events inside the auth group.
	EventStream http.Handler

	AuthEnabled bool
	Token       string
}

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(cfg RouterConfig) chi.Router {
	h := NewHandler(cfg.Folders, cfg.Tags, cfg.Notes, cfg.Events)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(cfg.AuthEnabled, cfg.Token))
	r.NotFound(notFound)

	r.Route("/folders", func(r chi.Router) {
		r.Get("/", h.ListFolders)
		r.Post("/", h.CreateFolder)
		r.Get("/{id}", h.GetFolder)
		r.Put("/{id}", h.UpdateFolder)
		r.Delete("/{id}", h.DeleteFolder)
	})

	r.Route("/tags", func(r chi.Router) {
		r.Get("/", h.ListTags)
		r.Get("/{id}", h.GetTag)
	})

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", h.ListNotes)
		r.Post("/", h.CreateNote)
		r.Get("/{id}", h.GetNote)
		r.Delete("/{id}", h.DeleteNote)
	})

	if cfg.EventStream != nil {
		r.Get("/events", cfg.EventStream.ServeHTTP)
	}

	return r
}

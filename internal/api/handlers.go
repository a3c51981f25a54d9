package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/noteful/internal/folderservice"
	"github.com/starford/noteful/internal/noteservice"
	"github.com/starford/noteful/internal/tagservice"
)

// Handler holds API route handlers.
type Handler struct {
	folders *folderservice.Service
	tags    *tagservice.Service
	notes   *noteservice.Service
	events  Publisher
}

// NewHandler creates a new Handler. events may be nil.
func NewHandler(folders *folderservice.Service, tags *tagservice.Service, notes *noteservice.Service, events Publisher) *Handler {
	return &Handler{folders: folders, tags: tags, notes: notes, events: events}
}

func (h *Handler) publish(kind, id string) {
	if h.events != nil {
		h.events.Publish(idEvent(kind, id))
	}
}

func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// location is the URL of a document created by a POST to the collection at r.
func location(r *http.Request, id string) string {
	return strings.TrimSuffix(r.URL.Path, "/") + "/" + id
}

func idAttr(id string) slog.Attr {
	return slog.String("id", id)
}

// ListFolders handles GET /api/folders.
//
//	@Summary		List folders sorted by name
//	@Tags			folders
//	@Produce		json
//	@Success		200	{array}	Folder
//	@Security		BearerAuth
//	@Router			/folders [get]
func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folders.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

// GetFolder handles GET /api/folders/{id}.
//
//	@Summary		Get a folder by id
//	@Tags			folders
//	@Produce		json
//	@Param			id	path		string	true	"Folder id"
//	@Success		200	{object}	Folder
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/folders/{id} [get]
func (h *Handler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	folder, err := h.folders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, idAttr(id))
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// CreateFolder handles POST /api/folders.
//
//	@Summary		Create a folder
//	@Tags			folders
//	@Accept			json
//	@Produce		json
//	@Param			body	body		FolderRequest	true	"Folder to create"
//	@Success		201		{object}	Folder
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/folders [post]
func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req FolderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	folder, err := h.folders.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.publish("folder.created", folder.ID)
	w.Header().Set("Location", location(r, folder.ID))
	writeJSON(w, http.StatusCreated, folder)
}

// UpdateFolder handles PUT /api/folders/{id}.
//
//	@Summary		Rename a folder
//	@Tags			folders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Folder id"
//	@Param			body	body		FolderRequest	true	"New name"
//	@Success		200		{object}	Folder
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/folders/{id} [put]
func (h *Handler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	var req FolderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	folder, err := h.folders.Update(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, r, err, idAttr(id))
		return
	}
	h.publish("folder.updated", folder.ID)
	writeJSON(w, http.StatusOK, folder)
}

// DeleteFolder handles DELETE /api/folders/{id}.
//
//	@Summary		Delete a folder and apply the delete policy to its notes
//	@Tags			folders
//	@Param			id	path	string	true	"Folder id"
//	@Success		204	"Folder deleted"
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/folders/{id} [delete]
func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if err := h.folders.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, idAttr(id))
		return
	}
	h.publish("folder.deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// ListTags handles GET /api/tags.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// GetTag handles GET /api/tags/{id}.
func (h *Handler) GetTag(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	tag, err := h.tags.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, idAttr(id))
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// ListNotes handles GET /api/notes, optionally filtered by ?folderId=.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.List(r.Context(), r.URL.Query().Get("folderId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// GetNote handles GET /api/notes/{id}.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	note, err := h.notes.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, idAttr(id))
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// CreateNote handles POST /api/notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	note, err := h.notes.Create(r.Context(), noteservice.NoteInput{
		Title:    req.Title,
		Content:  req.Content,
		FolderID: req.FolderID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.publish("note.created", note.ID)
	w.Header().Set("Location", location(r, note.ID))
	writeJSON(w, http.StatusCreated, note)
}

// DeleteNote handles DELETE /api/notes/{id}.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if err := h.notes.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, idAttr(id))
		return
	}
	h.publish("note.deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quillnotes/quill/internal/noteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// eventsHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *noteservice.Service, authEnabled bool, token string, eventsHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Notes CRUD.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/{id}", h.GetNote)
	r.Put("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)
	r.Get("/notes/{id}/html", h.RenderNote)

	// Tag substring search.
	r.Get("/search", h.Search)

	// Tag vocabulary.
	r.Get("/tags", h.ListTags)

	// Folder tree.
	r.Get("/folders", h.ListFolders)
	r.Post("/folders", h.CreateFolder)
	r.Put("/folders/{id}", h.RenameFolder)
	r.Delete("/folders/{id}", h.DeleteFolder)

	// Preferences.
	r.Get("/preferences/{key}", h.GetPreference)
	r.Put("/preferences/{key}", h.SetPreference)

	// SSE endpoint (protected by same auth middleware).
	if eventsHandler != nil {
		r.Get("/events", eventsHandler.ServeHTTP)
	}

	return r
}

// Package noteservice is the operation surface exposed to presentation
// adapters (HTTP API, MCP). It wraps the store and publishes change events.
package noteservice

import (
	"context"

	"github.com/quillnotes/quill/internal/models"
	"github.com/quillnotes/quill/internal/render"
	"github.com/quillnotes/quill/internal/sse"
	"github.com/quillnotes/quill/internal/store"
)

// Service coordinates store operations and change notifications.
type Service struct {
	store  *store.Store
	events *sse.Broker
}

// NewService creates a new service. events may be nil (e.g. MCP stdio mode),
// in which case no change events are published.
func NewService(st *store.Store, events *sse.Broker) *Service {
	return &Service{store: st, events: events}
}

// ListNotes returns every note with its aggregated tags.
func (s *Service) ListNotes(_ context.Context) ([]models.Note, error) {
	return s.store.ListNotes()
}

// GetNote returns one note or apperr.ErrNotFound.
func (s *Service) GetNote(_ context.Context, id int64) (*models.Note, error) {
	return s.store.GetNote(id)
}

// CreateNote creates a note with its tag set and optional folder.
func (s *Service) CreateNote(_ context.Context, title, content string, markdown bool, folderID *int64, tags []string) (*models.Note, error) {
	n, err := s.store.CreateNote(title, content, markdown, folderID, tags)
	if err != nil {
		return nil, err
	}
	s.publish("note", "created", n.ID)
	return n, nil
}

// UpdateNote rewrites a note's fields and tag set.
func (s *Service) UpdateNote(_ context.Context, id int64, title, content string, markdown bool, folderID *int64, tags []string) (*models.Note, error) {
	n, err := s.store.UpdateNote(id, title, content, markdown, folderID, tags)
	if err != nil {
		return nil, err
	}
	s.publish("note", "updated", id)
	return n, nil
}

// DeleteNote removes a note. Missing ids are a no-op.
func (s *Service) DeleteNote(_ context.Context, id int64) error {
	if err := s.store.DeleteNote(id); err != nil {
		return err
	}
	s.publish("note", "deleted", id)
	return nil
}

// SearchNotes returns notes having at least one tag containing fragment.
func (s *Service) SearchNotes(_ context.Context, fragment string) ([]models.Note, error) {
	return s.store.SearchNotesByTag(fragment)
}

// RenderNote returns a note's body as HTML, honoring its markdown flag.
func (s *Service) RenderNote(_ context.Context, id int64) (string, error) {
	n, err := s.store.GetNote(id)
	if err != nil {
		return "", err
	}
	return render.HTML(n.Content, n.Markdown)
}

// ListTags returns the full tag vocabulary, sorted.
func (s *Service) ListTags(_ context.Context) ([]string, error) {
	return s.store.ListTags()
}

// ListFolders returns the folder tree as a flat list with parent pointers.
func (s *Service) ListFolders(_ context.Context) ([]models.Folder, error) {
	return s.store.ListFolders()
}

// CreateFolder creates a folder under the optional parent.
func (s *Service) CreateFolder(_ context.Context, name string, parentID *int64) (*models.Folder, error) {
	f, err := s.store.CreateFolder(name, parentID)
	if err != nil {
		return nil, err
	}
	s.publish("folder", "created", f.ID)
	return f, nil
}

// RenameFolder updates a folder's name only.
func (s *Service) RenameFolder(_ context.Context, id int64, name string) error {
	if err := s.store.RenameFolder(id, name); err != nil {
		return err
	}
	s.publish("folder", "updated", id)
	return nil
}

// DeleteFolder removes a folder subtree and all notes it transitively owns.
func (s *Service) DeleteFolder(_ context.Context, id int64) error {
	if err := s.store.DeleteFolder(id); err != nil {
		return err
	}
	s.publish("folder", "deleted", id)
	return nil
}

// GetPreference returns the value stored under key, or empty string.
func (s *Service) GetPreference(_ context.Context, key string) (string, error) {
	return s.store.GetPreference(key)
}

// SetPreference stores value under key.
func (s *Service) SetPreference(_ context.Context, key, value string) error {
	return s.store.SetPreference(key, value)
}

func (s *Service) publish(entity, action string, id int64) {
	if s.events != nil {
		s.events.PublishChange(entity, action, id)
	}
}

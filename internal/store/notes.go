package store

import (
	"database/sql"
	"fmt"

	"github.com/quillnotes/quill/internal/apperr"
	"github.com/quillnotes/quill/internal/models"
)

// ListNotes returns every note joined with its aggregated tag set.
// Notes with no tags carry an empty (non-nil) tag slice.
func (s *Store) ListNotes() ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := queryNotes(s.conn, `SELECT id, title, content, markdown, folder_id FROM notes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return s.attachTags(notes)
}

// GetNote returns a single note with its tags, or apperr.ErrNotFound.
func (s *Store) GetNote(id int64) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := queryNotes(s.conn, `SELECT id, title, content, markdown, folder_id FROM notes WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, apperr.ErrNotFound
	}
	withTags, err := s.attachTags(notes)
	if err != nil {
		return nil, err
	}
	return &withTags[0], nil
}

// CreateNote inserts the note row and establishes its tag set in one
// transaction, so no reader ever observes the note with the wrong tags.
// A folderID referencing a missing folder fails the insert (foreign key).
func (s *Store) CreateNote(title, content string, markdown bool, folderID *int64, tags []string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	res, err := tx.Exec(`INSERT INTO notes (title, content, markdown, folder_id) VALUES (?, ?, ?, ?)`,
		title, content, markdown, folderID)
	if err != nil {
		return nil, fmt.Errorf("store: insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: note id: %w", err)
	}
	if err := setNoteTags(tx, id, tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}

	return &models.Note{
		ID:       id,
		Title:    title,
		Content:  content,
		Markdown: markdown,
		FolderID: folderID,
		Tags:     normalizeTags(tags),
	}, nil
}

// UpdateNote rewrites all scalar fields and replaces the tag set in one
// transaction. Returns apperr.ErrNotFound when id matches no note.
func (s *Store) UpdateNote(id int64, title, content string, markdown bool, folderID *int64, tags []string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.Exec(`UPDATE notes SET title = ?, content = ?, markdown = ?, folder_id = ? WHERE id = ?`,
		title, content, markdown, folderID, id)
	if err != nil {
		return nil, fmt.Errorf("store: update note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return nil, apperr.ErrNotFound
	}
	if err := setNoteTags(tx, id, tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}

	return &models.Note{
		ID:       id,
		Title:    title,
		Content:  content,
		Markdown: markdown,
		FolderID: folderID,
		Tags:     normalizeTags(tags),
	}, nil
}

// DeleteNote removes the note row; its note_tags rows cascade at the
// database level. The tag vocabulary itself is untouched. Deleting a missing
// id is a no-op.
func (s *Store) DeleteNote(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.conn.Exec(`DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	return nil
}

// SearchNotesByTag returns every note having at least one tag whose name
// contains fragment as a substring (case-insensitive for ASCII, the SQLite
// LIKE default). Each matching note appears once, carrying its full tag set,
// not just the matching tags.
func (s *Store) SearchNotesByTag(fragment string) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := queryNotes(s.conn, `
		SELECT DISTINCT n.id, n.title, n.content, n.markdown, n.folder_id
		FROM notes n
		JOIN note_tags nt ON nt.note_id = n.id
		JOIN tags t ON t.id = nt.tag_id
		WHERE t.name LIKE '%' || ? || '%' ESCAPE '\'
		ORDER BY n.id`, escapeLike(fragment))
	if err != nil {
		return nil, err
	}
	return s.attachTags(notes)
}

func queryNotes(conn *sql.DB, query string, args ...any) ([]models.Note, error) {
	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query notes: %w", err)
	}
	defer rows.Close()

	out := []models.Note{}
	for rows.Next() {
		var n models.Note
		var folderID sql.NullInt64
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Markdown, &folderID); err != nil {
			return nil, err
		}
		if folderID.Valid {
			n.FolderID = &folderID.Int64
		}
		n.Tags = []string{}
		out = append(out, n)
	}
	return out, rows.Err()
}

// attachTags fills in the tag names for each note in notes.
// Caller must hold s.mu.
func (s *Store) attachTags(notes []models.Note) ([]models.Note, error) {
	if len(notes) == 0 {
		return notes, nil
	}
	byNote, err := tagsByNote(s.conn)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if tags, ok := byNote[notes[i].ID]; ok {
			notes[i].Tags = tags
		}
	}
	return notes, nil
}

// escapeLike escapes LIKE metacharacters so the fragment matches literally.
func escapeLike(fragment string) string {
	out := make([]byte, 0, len(fragment))
	for i := 0; i < len(fragment); i++ {
		switch fragment[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, fragment[i])
	}
	return string(out)
}

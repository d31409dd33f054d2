package store

import (
	"database/sql"
	"fmt"
	"sort"
)

// setNoteTags replaces the full tag association set for a note within tx.
// Duplicate names in the input collapse. Each distinct name is upserted into
// the shared vocabulary first, so resolution cannot miss; the associations
// are then rewritten with a delete-then-insert (full replace, not a diff).
func setNoteTags(tx *sql.Tx, noteID int64, names []string) error {
	names = dedupe(names)

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, err := ensureTag(tx, name)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if _, err := tx.Exec(`DELETE FROM note_tags WHERE note_id = ?`, noteID); err != nil {
		return fmt.Errorf("store: clear note tags: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare tag insert: %w", err)
	}
	defer stmt.Close()
	for _, tagID := range ids {
		if _, err := stmt.Exec(noteID, tagID); err != nil {
			return fmt.Errorf("store: insert note tag: %w", err)
		}
	}
	return nil
}

// ensureTag inserts the tag name if absent and returns its id. Tag names are
// unique and case-sensitive as stored; the name-to-id mapping is stable once
// created.
func ensureTag(tx *sql.Tx, name string) (int64, error) {
	if _, err := tx.Exec(`INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
		return 0, fmt.Errorf("store: upsert tag: %w", err)
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM tags WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("store: resolve tag %q: %w", name, err)
	}
	return id, nil
}

// ListTags returns every tag name in the vocabulary, sorted alphabetically.
// Orphaned tags (referenced by no note) persist and are included.
func (s *Store) ListTags() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.conn.Query(`SELECT name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list tags: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// tagsByNote loads the tag names for every note, keyed by note id.
// Names within each note are ordered alphabetically; that collation is the
// read-back order everywhere a note's tag list is returned.
func tagsByNote(conn *sql.DB) (map[int64][]string, error) {
	rows, err := conn.Query(`
		SELECT nt.note_id, t.name
		FROM note_tags nt
		JOIN tags t ON t.id = nt.tag_id
		ORDER BY t.name`)
	if err != nil {
		return nil, fmt.Errorf("store: load note tags: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]string)
	for rows.Next() {
		var noteID int64
		var name string
		if err := rows.Scan(&noteID, &name); err != nil {
			return nil, err
		}
		out[noteID] = append(out[noteID], name)
	}
	return out, rows.Err()
}

// dedupe collapses duplicate names, preserving first occurrence.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// normalizeTags is the read-back shape of a tag set: deduplicated and sorted.
func normalizeTags(names []string) []string {
	out := dedupe(names)
	sort.Strings(out)
	return out
}

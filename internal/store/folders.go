package store

import (
	"database/sql"
	"fmt"

	"github.com/quillnotes/quill/internal/apperr"
	"github.com/quillnotes/quill/internal/models"
)

// ListFolders returns all folders as a flat list with parent pointers; the
// caller reconstructs the tree shape.
func (s *Store) ListFolders() ([]models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.conn.Query(`SELECT id, name, parent_id FROM folders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list folders: %w", err)
	}
	defer rows.Close()

	out := []models.Folder{}
	for rows.Next() {
		var f models.Folder
		var parentID sql.NullInt64
		if err := rows.Scan(&f.ID, &f.Name, &parentID); err != nil {
			return nil, err
		}
		if parentID.Valid {
			f.ParentID = &parentID.Int64
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// CreateFolder inserts a new folder. A parentID referencing a missing folder
// fails the insert (foreign key). A new folder has no children, so no
// operation on this surface can introduce a parent cycle: create always
// points at a pre-existing node and rename never touches parent_id.
func (s *Store) CreateFolder(name string, parentID *int64) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.conn.Exec(`INSERT INTO folders (name, parent_id) VALUES (?, ?)`, name, parentID)
	if err != nil {
		return nil, fmt.Errorf("store: insert folder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: folder id: %w", err)
	}
	return &models.Folder{ID: id, Name: name, ParentID: parentID}, nil
}

// RenameFolder updates the name field only. Returns apperr.ErrNotFound when
// id matches no folder.
func (s *Store) RenameFolder(id int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.conn.Exec(`UPDATE folders SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("store: rename folder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteFolder removes the folder, every descendant folder, and every note
// transitively owned by them, in one transaction. SQL cascades cannot express
// the transitive note deletion, so the walk is procedural. Deleting a missing
// id is a no-op.
func (s *Store) DeleteFolder(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if err := deleteFolderTree(tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteFolderTree walks the subtree rooted at id post-order: children
// first, then the folder's own notes (note_tags cascade at the database
// level), then the folder row itself. No folder is deleted before its
// descendants are fully processed and no note is left referencing a
// deleted folder.
func deleteFolderTree(tx *sql.Tx, id int64) error {
	rows, err := tx.Query(`SELECT id FROM folders WHERE parent_id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: folder children: %w", err)
	}
	var children []int64
	for rows.Next() {
		var child int64
		if err := rows.Scan(&child); err != nil {
			rows.Close()
			return err
		}
		children = append(children, child)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, child := range children {
		if err := deleteFolderTree(tx, child); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM notes WHERE folder_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete folder notes: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM folders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete folder: %w", err)
	}
	return nil
}

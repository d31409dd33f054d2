// Package models defines the domain types for Quill.
package models

// Note is a single note joined with its aggregated tag names.
// A nil FolderID means the note is unfiled.
type Note struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Markdown bool     `json:"markdown"`
	FolderID *int64   `json:"folder_id,omitempty"`
	Tags     []string `json:"tags"`
}

// Folder is a node in the folder tree. A nil ParentID means root-level.
type Folder struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

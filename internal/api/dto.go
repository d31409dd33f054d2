package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NoteRequest is the payload for creating or updating a note.
type NoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Markdown bool     `json:"markdown"`
	FolderID *int64   `json:"folder_id"`
	Tags     []string `json:"tags"`
}

// Validate validates the note payload.
func (r NoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 512)),
		validation.Field(&r.Tags, validation.Each(validation.Required, validation.Length(1, 128))),
	)
}

// FolderRequest is the payload for creating or renaming a folder.
type FolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

// Validate validates the folder payload.
func (r FolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// PreferenceRequest is the payload for setting a preference value.
// Values are opaque text; an empty value is allowed.
type PreferenceRequest struct {
	Value string `json:"value"`
}

package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/quillnotes/quill/internal/apperr"
)

func TestCreateNote_DuplicateTagsCollapse(t *testing.T) {
	s := testStore(t)

	n, err := s.CreateNote("dup", "body", false, nil, []string{"a", "a", "b"})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if !reflect.DeepEqual(n.Tags, []string{"a", "b"}) {
		t.Errorf("created tags = %v, want [a b]", n.Tags)
	}

	got, err := s.GetNote(n.ID)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if !reflect.DeepEqual(got.Tags, []string{"a", "b"}) {
		t.Errorf("read-back tags = %v, want [a b]", got.Tags)
	}
}

func TestUpdateNote_ReplacesTagSet(t *testing.T) {
	s := testStore(t)

	n, _ := s.CreateNote("n", "", false, nil, []string{"old1", "old2"})
	if _, err := s.UpdateNote(n.ID, "n", "", false, nil, []string{"new", "old2"}); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	got, _ := s.GetNote(n.ID)
	// Exactly the second set, never a union of both.
	if !reflect.DeepEqual(got.Tags, []string{"new", "old2"}) {
		t.Errorf("tags = %v, want [new old2]", got.Tags)
	}
}

func TestUpdateNote_NotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.UpdateNote(999, "x", "", false, nil, nil)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateNote_RoundTrip(t *testing.T) {
	s := testStore(t)

	folder, _ := s.CreateFolder("inbox", nil)
	n, err := s.CreateNote("title", "content", true, &folder.ID, []string{"x", "y"})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if _, err := s.UpdateNote(n.ID, "title", "content", true, &folder.ID, []string{"x", "y"}); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	notes, err := s.ListNotes()
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	got := notes[0]
	if got.Title != "title" || got.Content != "content" || !got.Markdown {
		t.Errorf("scalar fields changed: %+v", got)
	}
	if got.FolderID == nil || *got.FolderID != folder.ID {
		t.Errorf("folder id = %v, want %d", got.FolderID, folder.ID)
	}
	if !reflect.DeepEqual(got.Tags, []string{"x", "y"}) {
		t.Errorf("tags = %v, want [x y]", got.Tags)
	}
}

func TestListNotes_UntaggedNoteHasEmptyTags(t *testing.T) {
	s := testStore(t)

	if _, err := s.CreateNote("bare", "", false, nil, nil); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	notes, err := s.ListNotes()
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Tags == nil || len(notes[0].Tags) != 0 {
		t.Errorf("tags = %#v, want empty non-nil slice", notes[0].Tags)
	}
}

func TestDeleteNote_KeepsTagVocabulary(t *testing.T) {
	s := testStore(t)

	n, _ := s.CreateNote("n", "", false, nil, []string{"orphan"})
	if err := s.DeleteNote(n.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}

	// Associations are gone (database-level cascade)...
	var count int
	if err := s.conn.QueryRow(`SELECT count(*) FROM note_tags`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("note_tags rows = %d, want 0", count)
	}

	// ...but the vocabulary entry persists as an orphan.
	tags, _ := s.ListTags()
	if !reflect.DeepEqual(tags, []string{"orphan"}) {
		t.Errorf("tags = %v, want [orphan]", tags)
	}
}

func TestDeleteNote_MissingIDIsNoop(t *testing.T) {
	s := testStore(t)
	if err := s.DeleteNote(12345); err != nil {
		t.Fatalf("DeleteNote on missing id: %v", err)
	}
}

func TestCreateNote_MissingFolderFailsConstraint(t *testing.T) {
	s := testStore(t)
	missing := int64(42)
	_, err := s.CreateNote("n", "", false, &missing, nil)
	if err == nil {
		t.Fatal("expected foreign key failure")
	}
	if !IsConstraint(err) {
		t.Errorf("IsConstraint(%v) = false, want true", err)
	}
	// The failed operation must have no effect.
	notes, _ := s.ListNotes()
	if len(notes) != 0 {
		t.Errorf("notes = %d, want 0", len(notes))
	}
}

func TestSearchNotesByTag_Substring(t *testing.T) {
	s := testStore(t)

	rusty, _ := s.CreateNote("rusty", "", false, nil, []string{"rustlang", "systems"})
	_, _ = s.CreateNote("gopher", "", false, nil, []string{"go"})

	hits, err := s.SearchNotesByTag("rust")
	if err != nil {
		t.Fatalf("SearchNotesByTag: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != rusty.ID {
		t.Fatalf("hits = %+v, want only the rustlang note", hits)
	}
	// Full tag set comes back, not just the matching tag.
	if !reflect.DeepEqual(hits[0].Tags, []string{"rustlang", "systems"}) {
		t.Errorf("tags = %v, want [rustlang systems]", hits[0].Tags)
	}
}

func TestSearchNotesByTag_DeduplicatesByNote(t *testing.T) {
	s := testStore(t)

	n, _ := s.CreateNote("multi", "", false, nil, []string{"notes-app", "note-taking"})
	hits, err := s.SearchNotesByTag("note")
	if err != nil {
		t.Fatalf("SearchNotesByTag: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != n.ID {
		t.Fatalf("expected exactly 1 hit, got %+v", hits)
	}
}

func TestSearchNotesByTag_CaseInsensitiveASCII(t *testing.T) {
	s := testStore(t)

	_, _ = s.CreateNote("n", "", false, nil, []string{"Golang"})
	hits, err := s.SearchNotesByTag("golang")
	if err != nil {
		t.Fatalf("SearchNotesByTag: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected case-insensitive match, got %d hits", len(hits))
	}
}

func TestSearchNotesByTag_LiteralMetacharacters(t *testing.T) {
	s := testStore(t)

	_, _ = s.CreateNote("a", "", false, nil, []string{"100%done"})
	_, _ = s.CreateNote("b", "", false, nil, []string{"plain"})

	hits, err := s.SearchNotesByTag("%")
	if err != nil {
		t.Fatalf("SearchNotesByTag: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("%% should match literally, got %d hits", len(hits))
	}
}

package store

import (
	"os"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	f, err := os.CreateTemp("", "quill-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	s, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSchemaCreation(t *testing.T) {
	s := testStore(t)
	for _, table := range []string{"folders", "notes", "tags", "note_tags", "preferences"} {
		var count int
		if err := s.conn.QueryRow(`SELECT count(*) FROM ` + table).Scan(&count); err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestSchemaIdempotent(t *testing.T) {
	f, err := os.CreateTemp("", "quill-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	s, err := Open(f.Name())
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if _, err := s.CreateNote("kept", "", false, nil, []string{"tag"}); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	s.Close()

	// Reopening against an existing file must not destroy data.
	s2, err := Open(f.Name())
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s2.Close()
	notes, err := s2.ListNotes()
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "kept" {
		t.Errorf("notes after reopen = %+v, want the original note", notes)
	}
}

func TestPreferences(t *testing.T) {
	s := testStore(t)

	v, err := s.GetPreference("dark_mode")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if v != "" {
		t.Errorf("unset preference = %q, want empty", v)
	}

	if err := s.SetPreference("dark_mode", "true"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	if err := s.SetPreference("dark_mode", "false"); err != nil {
		t.Fatalf("SetPreference overwrite: %v", err)
	}
	v, _ = s.GetPreference("dark_mode")
	if v != "false" {
		t.Errorf("preference = %q, want %q", v, "false")
	}
}

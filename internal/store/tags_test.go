package store

import (
	"reflect"
	"testing"
)

func TestTagVocabularyIsShared(t *testing.T) {
	s := testStore(t)

	a, _ := s.CreateNote("a", "", false, nil, []string{"shared"})
	b, _ := s.CreateNote("b", "", false, nil, []string{"shared"})

	var count int
	if err := s.conn.QueryRow(`SELECT count(*) FROM tags WHERE name = 'shared'`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("tag rows for 'shared' = %d, want 1", count)
	}

	// Both notes resolve to the same stable id.
	var idA, idB int64
	_ = s.conn.QueryRow(`SELECT tag_id FROM note_tags WHERE note_id = ?`, a.ID).Scan(&idA)
	_ = s.conn.QueryRow(`SELECT tag_id FROM note_tags WHERE note_id = ?`, b.ID).Scan(&idB)
	if idA != idB {
		t.Errorf("tag ids differ: %d vs %d", idA, idB)
	}
}

func TestTagNamesAreCaseSensitiveAsStored(t *testing.T) {
	s := testStore(t)

	_, _ = s.CreateNote("n", "", false, nil, []string{"Go", "go"})
	tags, err := s.ListTags()
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("tags = %v, want two distinct case-sensitive entries", tags)
	}
}

func TestEmptyTagSetClearsAssociations(t *testing.T) {
	s := testStore(t)

	n, _ := s.CreateNote("n", "", false, nil, []string{"a", "b"})
	if _, err := s.UpdateNote(n.ID, "n", "", false, nil, nil); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	got, _ := s.GetNote(n.ID)
	if len(got.Tags) != 0 {
		t.Errorf("tags = %v, want empty", got.Tags)
	}
}

func TestListTags_SortedAlphabetically(t *testing.T) {
	s := testStore(t)

	_, _ = s.CreateNote("n", "", false, nil, []string{"zebra", "alpha", "mid"})
	tags, err := s.ListTags()
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"alpha", "mid", "zebra"}) {
		t.Errorf("tags = %v, want alphabetical order", tags)
	}
}

func TestTagReadBackOrderIsAlphabetical(t *testing.T) {
	s := testStore(t)

	n, _ := s.CreateNote("n", "", false, nil, []string{"c", "a", "b"})
	got, _ := s.GetNote(n.ID)
	if !reflect.DeepEqual(got.Tags, []string{"a", "b", "c"}) {
		t.Errorf("tags = %v, want [a b c]", got.Tags)
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"a", "b", "a", "c", "b"})
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("dedupe = %v, want [a b c]", got)
	}
}

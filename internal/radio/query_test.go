package radio

import (
	"slices"
	"testing"
)

func TestDeriveQuery(t *testing.T) {
	t.Run("no genres falls back to artist name", func(t *testing.T) {
		got := DeriveQuery("Boards of Canada", nil)
		if got != "Boards of Canada" {
			t.Errorf("DeriveQuery() = %q, want %q", got, "Boards of Canada")
		}
	})

	t.Run("single genre", func(t *testing.T) {
		got := DeriveQuery("Boards of Canada", []string{"idm"})
		if got != "idm" {
			t.Errorf("DeriveQuery() = %q, want %q", got, "idm")
		}
	})

	t.Run("picks from genre list", func(t *testing.T) {
		genres := []string{"idm", "downtempo", "ambient"}
		for i := 0; i < 50; i++ {
			got := DeriveQuery("Boards of Canada", genres)
			if !slices.Contains(genres, got) {
				t.Fatalf("DeriveQuery() = %q, not in %v", got, genres)
			}
		}
	})
}

func TestShuffle(t *testing.T) {
	t.Run("preserves elements", func(t *testing.T) {
		uris := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		shuffled := slices.Clone(uris)
		Shuffle(shuffled)

		if len(shuffled) != len(uris) {
			t.Fatalf("len = %d, want %d", len(shuffled), len(uris))
		}
		sorted := slices.Clone(shuffled)
		slices.Sort(sorted)
		if !slices.Equal(sorted, uris) {
			t.Errorf("shuffled = %v, want a permutation of %v", shuffled, uris)
		}
	})

	t.Run("empty and single element", func(t *testing.T) {
		Shuffle(nil)
		one := []string{"only"}
		Shuffle(one)
		if one[0] != "only" {
			t.Errorf("single element changed: %v", one)
		}
	})
}

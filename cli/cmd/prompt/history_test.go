package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistory_PersistsAndDeduplicates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), BaseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}

	for _, e := range []string{"a", "b", " ", "b", "a"} {
		if err := h.Add(e); err != nil {
			t.Fatalf("Add(%q): %v", e, err)
		}
	}

	want := []string{"b", "a"}
	if h.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", h.Len(), len(want))
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	for i, w := range want {
		got, err := reloaded.Line(i)
		if err != nil || got != w {
			t.Errorf("Line(%d) = %q, %v; want %q", i, got, err, w)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "b\na\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestHistory_LineOutOfBounds(t *testing.T) {
	t.Parallel()

	h := NewHistory("")

	for _, i := range []int{-1, 0, 1} {
		if _, err := h.Line(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Line(%d) error = %v, want ErrOutOfBounds", i, err)
		}
	}

	var nilHistory *History
	if nilHistory.Len() != 0 {
		t.Error("nil History has entries")
	}
}

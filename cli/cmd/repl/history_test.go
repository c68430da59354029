package repl

import (
	"path/filepath"
	"testing"
)

func TestHistory_WriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if _, err := h.Write("(+ 1 2)", modeEval); err != nil {
		t.Fatalf("write error: %v", err)
	}

	if _, err := h.Write("list", modeCtrl); err != nil {
		t.Fatalf("write error: %v", err)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load error: %v", err)
	}

	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", reloaded.Len())
	}

	entry, err := reloaded.GetEntry(0)
	if err != nil {
		t.Fatal(err)
	}

	if entry.Line != "(+ 1 2)" || entry.Mode != modeEval {
		t.Errorf("entry 0: got %+v", entry)
	}

	entry, err = reloaded.GetEntry(1)
	if err != nil {
		t.Fatal(err)
	}

	if entry.Line != "list" || entry.Mode != modeCtrl {
		t.Errorf("entry 1: got %+v", entry)
	}
}

func TestHistory_DuplicateMovesToEnd(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	for _, line := range []string{"a", "b", "a"} {
		if _, err := h.Write(line, modeEval); err != nil {
			t.Fatalf("write error: %v", err)
		}
	}

	if h.Len() != 2 {
		t.Fatalf("expected 2 entries after dedup, got %d", h.Len())
	}

	entry, _ := h.GetEntry(1)
	if entry.Line != "a" {
		t.Errorf("duplicate did not move to end: %+v", entry)
	}
}

func TestHistory_RepeatIsNoop(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	_, _ = h.Write("same", modeEval)
	_, _ = h.Write("same", modeEval)

	if h.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", h.Len())
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent"))
	if err := h.Load(); err != nil {
		t.Errorf("missing file should not error: %v", err)
	}
}

func TestHistory_GetEntryOutOfBounds(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	if _, err := h.GetEntry(0); err == nil {
		t.Error("expected out of bounds error")
	}
}

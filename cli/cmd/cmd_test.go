package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitland/interrotron/lang"
)

func TestParseBindings(t *testing.T) {
	frame, err := parseBindings([]string{
		"count=42",
		"rate=2.5",
		"flag=true",
		"empty=nil",
		"name=alice",
	})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if v := frame["count"]; v.Kind != lang.KindInt || v.Int != 42 {
		t.Errorf("count: got %v", v)
	}

	if v := frame["rate"]; v.Kind != lang.KindFloat || v.Float != 2.5 {
		t.Errorf("rate: got %v", v)
	}

	if v := frame["flag"]; v.Kind != lang.KindBool || !v.Bool {
		t.Errorf("flag: got %v", v)
	}

	if v := frame["empty"]; v.Kind != lang.KindNil {
		t.Errorf("empty: got %v", v)
	}

	if v := frame["name"]; v.Kind != lang.KindText || v.Text != "alice" {
		t.Errorf("name: got %v", v)
	}
}

func TestParseBindings_Malformed(t *testing.T) {
	_, err := parseBindings([]string{"novalue"})
	if !errors.Is(err, ErrBindValue) {
		t.Fatalf("expected ErrBindValue, got %v", err)
	}

	_, err = parseBindings([]string{"=5"})
	if !errors.Is(err, ErrBindValue) {
		t.Fatalf("expected ErrBindValue for empty name, got %v", err)
	}
}

func TestParseBindings_Empty(t *testing.T) {
	frame, err := parseBindings(nil)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if frame != nil {
		t.Errorf("expected nil frame, got %v", frame)
	}
}

func TestLoadBindFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.yaml")

	content := []byte("count: 42\nrate: 2.5\nname: alice\nitems:\n  - 1\n  - 2\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	frame, err := loadBindFile(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if v := frame["count"]; v.Kind != lang.KindInt || v.Int != 42 {
		t.Errorf("count: got %v", v)
	}

	if v := frame["name"]; v.Kind != lang.KindText || v.Text != "alice" {
		t.Errorf("name: got %v", v)
	}

	if v := frame["items"]; v.Kind != lang.KindSeq || len(v.Seq) != 2 {
		t.Errorf("items: got %v", v)
	}
}

func TestLoadBindFile_Missing(t *testing.T) {
	_, err := loadBindFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrBindFile) {
		t.Fatalf("expected ErrBindFile, got %v", err)
	}
}

func TestMergeFrames(t *testing.T) {
	merged := mergeFrames(
		lang.Frame{"a": lang.Int(1), "b": lang.Int(2)},
		lang.Frame{"b": lang.Int(20)},
	)

	if merged["a"].Int != 1 || merged["b"].Int != 20 {
		t.Errorf("later frames must shadow earlier: %v", merged)
	}
}

func TestEvalCompile_NoRule(t *testing.T) {
	e := &Eval{}

	_, err := e.compile(t.Context(), lang.New())
	if !errors.Is(err, ErrNoRule) {
		t.Fatalf("expected ErrNoRule, got %v", err)
	}
}

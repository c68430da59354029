package lang

import (
	"errors"
	"testing"
)

func TestEnv_InnermostFirst(t *testing.T) {
	env := NewEnv(Frame{"x": Int(1), "y": Int(10)})
	env.Push(Frame{"x": Int(2)})

	v, err := env.Resolve("x")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if v.Int != 2 {
		t.Errorf("inner frame did not shadow: got %v", v)
	}

	v, err = env.Resolve("y")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if v.Int != 10 {
		t.Errorf("outer lookup failed: got %v", v)
	}

	env.Pop()

	v, err = env.Resolve("x")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if v.Int != 1 {
		t.Errorf("pop did not restore outer binding: got %v", v)
	}
}

func TestEnv_UndefinedVar(t *testing.T) {
	env := NewEnv(Frame{})

	_, err := env.Resolve("missing")
	if !errors.Is(err, ErrUndefinedVar) {
		t.Fatalf("expected ErrUndefinedVar, got %v", err)
	}
}

func TestEnv_BindOnEmpty(t *testing.T) {
	env := NewEnv()
	env.Bind("x", Int(7))

	v, err := env.Resolve("x")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if v.Int != 7 {
		t.Errorf("bind on empty env: got %v", v)
	}
}

func TestEnv_PopEmptyIsNoop(t *testing.T) {
	env := NewEnv()
	env.Pop()

	_, err := env.Resolve("anything")
	if !errors.Is(err, ErrUndefinedVar) {
		t.Fatalf("expected ErrUndefinedVar, got %v", err)
	}
}

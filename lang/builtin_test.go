package lang

import (
	"errors"
	"testing"
	"time"
)

func run(t *testing.T, src string) Value {
	t.Helper()

	v, err := Run(t.Context(), src, nil)
	if err != nil {
		t.Fatalf("run %q: %v", src, err)
	}

	return v
}

func TestBuiltin_Comparisons(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{`(> 2 1)`, true},
		{`(< 2 1)`, false},
		{`(>= 2 2)`, true},
		{`(<= 3 2)`, false},
		{`(= 2 2.0)`, true},
		{`(!= 2 3)`, true},
		{`(= "a" "a")`, true},
		{`(< "a" "b")`, true},
		{`(< #dt{2024-01-01} #dt{2024-06-01})`, true},
	}

	for _, c := range cases {
		v := run(t, c.src)
		if v.Kind != KindBool || v.Bool != c.want {
			t.Errorf("%s: expected %v, got %v", c.src, c.want, v)
		}
	}
}

func TestBuiltin_CompareTypeMismatch(t *testing.T) {
	_, err := Run(t.Context(), `(> 1 "a")`, nil)
	if !errors.Is(err, ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}
}

func TestBuiltin_ArithmeticFold(t *testing.T) {
	if v := run(t, `(+ 1 2 3 4)`); v.Int != 10 {
		t.Errorf("(+ 1 2 3 4): got %v", v)
	}

	if v := run(t, `(- 10 3 2)`); v.Int != 5 {
		t.Errorf("(- 10 3 2): got %v", v)
	}

	if v := run(t, `(* 2 3 4)`); v.Int != 24 {
		t.Errorf("(* 2 3 4): got %v", v)
	}

	// A float participant promotes the fold.
	if v := run(t, `(+ 1 2.5)`); v.Kind != KindFloat || v.Float != 3.5 {
		t.Errorf("(+ 1 2.5): got %v", v)
	}
}

func TestBuiltin_DivisionAndModulo(t *testing.T) {
	if v := run(t, `(/ 7 2)`); v.Kind != KindInt || v.Int != 3 {
		t.Errorf("(/ 7 2): got %v", v)
	}

	if v := run(t, `(/ 7 2.0)`); v.Kind != KindFloat || v.Float != 3.5 {
		t.Errorf("(/ 7 2.0): got %v", v)
	}

	if v := run(t, `(% 7 2)`); v.Int != 1 {
		t.Errorf("(%% 7 2): got %v", v)
	}

	_, err := Run(t.Context(), `(/ 1 0)`, nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected division by zero error, got %v", err)
	}
}

func TestBuiltin_Rounding(t *testing.T) {
	if v := run(t, `(floor 2.9)`); v.Kind != KindInt || v.Int != 2 {
		t.Errorf("(floor 2.9): got %v", v)
	}

	if v := run(t, `(ceil 2.1)`); v.Int != 3 {
		t.Errorf("(ceil 2.1): got %v", v)
	}

	if v := run(t, `(round 2.5)`); v.Int != 3 {
		t.Errorf("(round 2.5): got %v", v)
	}

	if v := run(t, `(round 7)`); v.Int != 7 {
		t.Errorf("(round 7): got %v", v)
	}
}

func TestBuiltin_SequenceAccessors(t *testing.T) {
	if v := run(t, `(max (array 3 1 4 1 5))`); v.Int != 5 {
		t.Errorf("max: got %v", v)
	}

	if v := run(t, `(min (array 3 1 4 1 5))`); v.Int != 1 {
		t.Errorf("min: got %v", v)
	}

	if v := run(t, `(first (array 3 1 4))`); v.Int != 3 {
		t.Errorf("first: got %v", v)
	}

	if v := run(t, `(last (array 3 1 4))`); v.Int != 4 {
		t.Errorf("last: got %v", v)
	}

	if v := run(t, `(first (array))`); v.Kind != KindNil {
		t.Errorf("first of empty: got %v", v)
	}

	_, err := Run(t.Context(), `(length 5)`, nil)
	if !errors.Is(err, ErrType) {
		t.Fatalf("length of non-sequence: expected ErrType, got %v", err)
	}
}

func TestBuiltin_Coercions(t *testing.T) {
	if v := run(t, `(to_i 2.9)`); v.Kind != KindInt || v.Int != 2 {
		t.Errorf("(to_i 2.9): got %v", v)
	}

	if v := run(t, `(to_i "12abc")`); v.Int != 12 {
		t.Errorf("(to_i \"12abc\"): got %v", v)
	}

	if v := run(t, `(to_i "abc")`); v.Int != 0 {
		t.Errorf("(to_i \"abc\"): got %v", v)
	}

	if v := run(t, `(to_f "2.5x")`); v.Kind != KindFloat || v.Float != 2.5 {
		t.Errorf("(to_f \"2.5x\"): got %v", v)
	}

	if v := run(t, `(upcase "abc")`); v.Text != "ABC" {
		t.Errorf("upcase: got %v", v)
	}

	if v := run(t, `(downcase "ABC")`); v.Text != "abc" {
		t.Errorf("downcase: got %v", v)
	}
}

func TestBuiltin_Str(t *testing.T) {
	if v := run(t, `(str "a" 1 2.5)`); v.Text != "a12.5" {
		t.Errorf("str: got %v", v)
	}

	// nil contributes nothing to concatenation.
	if v := run(t, `(str "a" nil "b")`); v.Text != "ab" {
		t.Errorf("str with nil: got %v", v)
	}
}

func TestBuiltin_Negation(t *testing.T) {
	if v := run(t, `(not true)`); v.Bool {
		t.Errorf("(not true): got %v", v)
	}

	if v := run(t, `(! nil)`); !v.Bool {
		t.Errorf("(! nil): got %v", v)
	}

	if v := run(t, `(not 0)`); v.Bool {
		t.Errorf("zero is truthy: got %v", v)
	}
}

func TestBuiltin_RandAndNow(t *testing.T) {
	v := run(t, `(rand)`)
	if v.Kind != KindFloat || v.Float < 0 || v.Float >= 1 {
		t.Errorf("rand out of range: %v", v)
	}

	before := time.Now().Add(-time.Minute)

	v = run(t, `(now)`)
	if v.Kind != KindTime || v.Time.Before(before) {
		t.Errorf("now implausible: %v", v)
	}
}

func TestBuiltin_Constants(t *testing.T) {
	if v := run(t, `true`); v.Kind != KindBool || !v.Bool {
		t.Errorf("true: got %v", v)
	}

	if v := run(t, `false`); v.Kind != KindBool || v.Bool {
		t.Errorf("false: got %v", v)
	}

	if v := run(t, `nil`); v.Kind != KindNil {
		t.Errorf("nil: got %v", v)
	}
}

func TestBuiltins_ReturnsCopy(t *testing.T) {
	a := Builtins()
	a["if"] = Nil()

	b := Builtins()
	if b["if"].Kind != KindMacro {
		t.Error("mutating a Builtins copy leaked into the defaults")
	}
}

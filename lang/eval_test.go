package lang

import (
	"errors"
	"testing"
)

func TestRun_Arithmetic(t *testing.T) {
	v, err := Run(t.Context(), `(+ 1 2)`, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Kind != KindInt || v.Int != 3 {
		t.Errorf("expected 3, got %v", v)
	}
}

func TestRun_TextPlusIsTypeError(t *testing.T) {
	_, err := Run(t.Context(), `(+ "a" "b")`, nil)
	if !errors.Is(err, ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}
}

func TestRun_IfBranches(t *testing.T) {
	src := `(if (> a 2) "big" "small")`

	rule, err := Compile(t.Context(), src)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	v, err := rule.Call(t.Context(), Frame{"a": Int(5)})
	if err != nil {
		t.Fatalf("call error: %v", err)
	}

	if v.Text != "big" {
		t.Errorf("expected big with a=5, got %v", v)
	}

	v, err = rule.Call(t.Context(), Frame{"a": Int(1)})
	if err != nil {
		t.Fatalf("call error: %v", err)
	}

	if v.Text != "small" {
		t.Errorf("expected small with a=1, got %v", v)
	}
}

func TestRun_IfUntakenBranchNeverEvaluates(t *testing.T) {
	count := 0
	tick := NewMacro(func(*Evaluator, []*Node) (*Node, error) {
		count++

		return NewValueNode(Int(int64(count))), nil
	})

	eng := New(WithVars(Frame{"tick": tick}))

	v, err := eng.Run(t.Context(), `(if true "taken" (tick))`, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Text != "taken" {
		t.Errorf("expected taken, got %v", v)
	}

	if count != 0 {
		t.Errorf("untaken branch evaluated %d times", count)
	}
}

func TestRun_Cond(t *testing.T) {
	src := `(cond (= a 1) "one" (= a 2) "two" "other")`

	rule, err := Compile(t.Context(), src)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	v, err := rule.Call(t.Context(), Frame{"a": Int(2)})
	if err != nil {
		t.Fatalf("call error: %v", err)
	}

	if v.Text != "two" {
		t.Errorf("expected two with a=2, got %v", v)
	}

	v, err = rule.Call(t.Context(), Frame{"a": Int(9)})
	if err != nil {
		t.Fatalf("call error: %v", err)
	}

	if v.Text != "other" {
		t.Errorf("expected other with a=9, got %v", v)
	}
}

func TestRun_CondTooFewArgs(t *testing.T) {
	_, err := Run(t.Context(), `(cond true)`, nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRun_UndefinedVarNamesIdentifier(t *testing.T) {
	_, err := Run(t.Context(), `(+ unknown_var 1)`, nil)
	if !errors.Is(err, ErrUndefinedVar) {
		t.Fatalf("expected ErrUndefinedVar, got %v", err)
	}
}

func TestRun_VariableShadowing(t *testing.T) {
	// Instance binding shadows a library default of the same name.
	eng := New(WithVars(Frame{"now": Text("instance")}))

	v, err := eng.Run(t.Context(), `now`, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Text != "instance" {
		t.Errorf("instance override did not shadow default: %v", v)
	}

	// Call binding shadows both.
	v, err = eng.Run(t.Context(), `now`, Frame{"now": Text("call")})
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Text != "call" {
		t.Errorf("call override did not shadow instance: %v", v)
	}
}

func TestRun_ArrayAndLength(t *testing.T) {
	v, err := Run(t.Context(), `(array 1 2 3)`, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Kind != KindSeq || len(v.Seq) != 3 || v.Seq[2].Int != 3 {
		t.Errorf("expected [1 2 3], got %v", v)
	}

	v, err = Run(t.Context(), `(length (array 1 2 3))`, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Kind != KindInt || v.Int != 3 {
		t.Errorf("expected length 3, got %v", v)
	}
}

func TestRun_AndOrShortCircuit(t *testing.T) {
	v, err := Run(t.Context(), `(and true 1 "yes")`, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Text != "yes" {
		t.Errorf("expected last truthy value, got %v", v)
	}

	v, err = Run(t.Context(), `(and true false unknown_var)`, nil)
	if err != nil {
		t.Fatalf("and did not short-circuit: %v", err)
	}

	if v.Kind != KindBool || v.Bool {
		t.Errorf("expected false, got %v", v)
	}

	v, err = Run(t.Context(), `(or false nil 7)`, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Kind != KindInt || v.Int != 7 {
		t.Errorf("expected 7, got %v", v)
	}

	v, err = Run(t.Context(), `(or false nil)`, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Kind != KindBool || v.Bool {
		t.Errorf("expected false, got %v", v)
	}
}

func TestRun_NonCallableHead(t *testing.T) {
	// A form whose head is not callable evaluates its arguments for
	// effect and collapses to the head's value.
	v, err := Run(t.Context(), `(42 (+ 1 2))`, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Kind != KindInt || v.Int != 42 {
		t.Errorf("expected 42, got %v", v)
	}

	_, err = Run(t.Context(), `(42 unknown_var)`, nil)
	if !errors.Is(err, ErrUndefinedVar) {
		t.Fatalf("argument errors must still propagate, got %v", err)
	}
}

func TestRun_EmptyList(t *testing.T) {
	v, err := Run(t.Context(), `()`, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Kind != KindNil {
		t.Errorf("expected nil, got %v", v)
	}
}

func TestRun_OpsThreshold(t *testing.T) {
	eng := New(WithMaxOps(3))

	_, err := eng.Run(t.Context(), `(+ 1 (+ 2 (+ 3 4)))`, nil)
	if !errors.Is(err, ErrOpsThreshold) {
		t.Fatalf("expected ErrOpsThreshold, got %v", err)
	}

	// The same form fits under a generous ceiling.
	v, err := New(WithMaxOps(100)).Run(t.Context(), `(+ 1 (+ 2 (+ 3 4)))`, nil)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Int != 10 {
		t.Errorf("expected 10, got %v", v)
	}
}

func TestRun_WrongArity(t *testing.T) {
	_, err := Run(t.Context(), `(floor 1 2)`, nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRule_CompileOnceCallMany(t *testing.T) {
	rule, err := Compile(t.Context(), `(* n n)`)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	for i := int64(1); i <= 5; i++ {
		v, err := rule.Call(t.Context(), Frame{"n": Int(i)})
		if err != nil {
			t.Fatalf("call error: %v", err)
		}

		if v.Int != i*i {
			t.Errorf("n=%d: expected %d, got %v", i, i*i, v)
		}
	}
}

func TestRun_IdentReference(t *testing.T) {
	// A host-constructed identifier node resolves at call time, so
	// callable references can be injected as data.
	eng := New(WithVars(Frame{"picker": NewMacro(
		func(ev *Evaluator, args []*Node) (*Node, error) {
			return NewIdent("target"), nil
		},
	)}))

	v, err := eng.Run(t.Context(), `(picker)`, Frame{"target": Int(99)})
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if v.Int != 99 {
		t.Errorf("expected 99, got %v", v)
	}
}

func TestFromAndAnyRoundTrip(t *testing.T) {
	v, err := From([]any{int(1), 2.5, "x", true, nil})
	if err != nil {
		t.Fatalf("from error: %v", err)
	}

	out, ok := v.Any().([]any)
	if !ok {
		t.Fatalf("expected []any, got %T", v.Any())
	}

	if out[0] != int64(1) || out[1] != 2.5 || out[2] != "x" ||
		out[3] != true || out[4] != nil {
		t.Errorf("round trip mismatch: %v", out)
	}
}

func TestFrom_Unsupported(t *testing.T) {
	_, err := From(struct{}{})
	if !errors.Is(err, ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}
}

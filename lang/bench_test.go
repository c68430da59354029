package lang

import (
	"context"
	"testing"
)

func BenchmarkCompile(b *testing.B) {
	ctx := context.Background()

	for b.Loop() {
		ClearCache()

		if _, err := Compile(ctx, `(if (> a 2) (* a 10) (+ a 1))`); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompileCached(b *testing.B) {
	ctx := context.Background()

	for b.Loop() {
		if _, err := Compile(ctx, `(if (> a 2) (* a 10) (+ a 1))`); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRuleCall(b *testing.B) {
	ctx := context.Background()

	rule, err := Compile(ctx, `(if (> a 2) (* a 10) (+ a 1))`)
	if err != nil {
		b.Fatal(err)
	}

	vars := Frame{"a": Int(5)}

	b.ResetTimer()

	for b.Loop() {
		if _, err := rule.Call(ctx, vars); err != nil {
			b.Fatal(err)
		}
	}
}

func FuzzTokenize(f *testing.F) {
	f.Add(`(+ 1 2)`)
	f.Add(`(str "a\"b" 'c')`)
	f.Add(`#dt{2024-06-01}`)
	f.Add(`((()))`)
	f.Add(`)(`)

	f.Fuzz(func(t *testing.T, src string) {
		toks, err := Tokenize(src)
		if err != nil {
			return
		}

		for _, tok := range toks {
			if tok.Kind == TokenSpace {
				t.Errorf("whitespace token emitted: %v", tok)
			}
		}
	})
}

func FuzzRun(f *testing.F) {
	f.Add(`(+ 1 2)`)
	f.Add(`(if true 1)`)
	f.Add(`(cond true "x" "y")`)
	f.Add(`(length (array 1 2 3))`)
	f.Add(`(42 43)`)

	f.Fuzz(func(t *testing.T, src string) {
		eng := New(WithMaxOps(1000))

		// Arbitrary input must fail with an error, never a panic.
		_, _ = eng.Run(t.Context(), src, nil)
	})
}

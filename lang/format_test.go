package lang

import "testing"

func TestFormatSource_NormalizesWhitespace(t *testing.T) {
	got, err := FormatSource("(+  1\n\t2)")
	if err != nil {
		t.Fatalf("format error: %v", err)
	}

	if got != `(+ 1 2)` {
		t.Errorf("expected (+ 1 2), got %q", got)
	}
}

func TestFormatSource_NormalizesQuotes(t *testing.T) {
	got, err := FormatSource(`(str 'a' "b")`)
	if err != nil {
		t.Fatalf("format error: %v", err)
	}

	if got != `(str "a" "b")` {
		t.Errorf("quote style not normalized: %q", got)
	}
}

func TestFormatSource_RoundTrip(t *testing.T) {
	sources := []string{
		`(if (> a 2) "big" "small")`,
		`(cond (= a 1) "one" (= a 2) "two" "other")`,
		`(+ 1 2.5 (* 3 4))`,
		`(str "a\"b")`,
	}

	for _, src := range sources {
		once, err := FormatSource(src)
		if err != nil {
			t.Fatalf("format %q: %v", src, err)
		}

		twice, err := FormatSource(once)
		if err != nil {
			t.Fatalf("reformat %q: %v", once, err)
		}

		if once != twice {
			t.Errorf("format not a fixed point: %q vs %q", once, twice)
		}
	}
}

func TestFormat_FloatKeepsPoint(t *testing.T) {
	got, err := FormatSource(`2.0`)
	if err != nil {
		t.Fatalf("format error: %v", err)
	}

	if got != "2.0" {
		t.Errorf("float literal lost its decimal point: %q", got)
	}
}

func TestFormat_DateTime(t *testing.T) {
	got, err := FormatSource(`#dt{2024-06-01}`)
	if err != nil {
		t.Fatalf("format error: %v", err)
	}

	if got != `#dt{2024-06-01T00:00:00Z}` {
		t.Errorf("unexpected date-time form: %q", got)
	}
}

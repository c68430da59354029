package lang

import (
	"sync"
	"testing"
)

func TestParseCached_SharesTree(t *testing.T) {
	ClearCache()

	a, err := parseCached(`(+ shared 1)`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	b, err := parseCached(`(+ shared 1)`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if a != b {
		t.Error("identical source did not share one parse")
	}
}

func TestParseCached_ErrorMemoized(t *testing.T) {
	ClearCache()

	_, err1 := parseCached(`(+ 1 @)`)
	if err1 == nil {
		t.Fatal("expected parse error")
	}

	_, err2 := parseCached(`(+ 1 @)`)
	if err2 == nil {
		t.Fatal("expected memoized parse error")
	}
}

func TestParseCached_Concurrent(t *testing.T) {
	ClearCache()

	const workers = 16

	roots := make([]*Node, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			root, err := parseCached(`(* n (+ n 1))`)
			if err != nil {
				t.Errorf("parse error: %v", err)

				return
			}

			roots[i] = root
		}()
	}

	wg.Wait()

	for i := 1; i < workers; i++ {
		if roots[i] != roots[0] {
			t.Fatal("concurrent compiles produced distinct trees")
		}
	}
}

func TestClearCache(t *testing.T) {
	ClearCache()

	a, err := parseCached(`cleared`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	ClearCache()

	b, err := parseCached(`cleared`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if a == b {
		t.Error("cache cleared but tree still shared")
	}
}

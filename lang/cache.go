package lang

import (
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// parseCache stores parse results keyed by source hash, so compiling the
// same rule text twice shares one immutable syntax tree.
//
//nolint:gochecknoglobals
var parseCache sync.Map

// parseState holds the one-shot parse result for a source key.
type parseState struct {
	once sync.Once
	root *Node
	err  error
}

// parseCached parses rule source, memoizing by xxh3 hash of the text.
// The returned tree is shared; callers must treat it as immutable.
func parseCached(source string) (*Node, error) {
	key := strconv.FormatUint(xxh3.Hash([]byte(source)), 36)

	entry, _ := parseCache.LoadOrStore(key, new(parseState))

	st, ok := entry.(*parseState)
	if !ok {
		return Parse(source)
	}

	st.once.Do(func() {
		st.root, st.err = Parse(source)
	})

	return st.root, st.err
}

// ClearCache drops all memoized parses. Primarily useful for tests and
// for reclaiming memory in long-lived hosts.
func ClearCache() {
	parseCache = sync.Map{}
}

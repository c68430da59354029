package repl

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// HistoryEntry is a single history entry with the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History manages command history with file persistence. Entries are
// persisted one per line with an "E:" or "C:" mode prefix.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a History backed by the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file. A missing file is
// not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		mode := modeEval
		content := line

		if s, ok := strings.CutPrefix(line, "E:"); ok {
			content = s
		} else if s, ok := strings.CutPrefix(line, "C:"); ok {
			mode = modeCtrl
			content = s
		}

		h.entries = append(h.entries, HistoryEntry{
			Line: content,
			Mode: mode,
		})
	}

	return scanner.Err()
}

// Write appends a new entry to the history with the given mode. Repeating
// the previous entry is a no-op; an older duplicate moves to the end.
func (h *History) Write(entry string, mode inputMode) (int, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) > 0 {
		last := h.entries[len(h.entries)-1]
		if last.Line == entry && last.Mode == mode {
			return len(entry), nil
		}
	}

	needsRewrite := false

	for i := range h.entries {
		if h.entries[i].Line == entry && h.entries[i].Mode == mode {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			needsRewrite = true

			break
		}
	}

	h.entries = append(h.entries, HistoryEntry{Line: entry, Mode: mode})

	if needsRewrite {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(modePrefix(mode) + entry + "\n")
}

// GetEntry retrieves a historic entry by index. Index 0 is the oldest.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// rewriteFile rewrites the entire history file with the current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	total := 0

	for _, entry := range h.entries {
		n, err := file.WriteString(modePrefix(entry.Mode) + entry.Line + "\n")
		if err != nil {
			return total, err
		}

		total += n
	}

	return total, nil
}

func modePrefix(mode inputMode) string {
	if mode == modeCtrl {
		return "C:"
	}

	return "E:"
}

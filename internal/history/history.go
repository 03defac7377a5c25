// Package history keeps a bounded, linear undo/redo log of theme snapshots.
package history

import (
	"sync"

	"github.com/Railly/tinte-sub002/internal/models"
)

// DefaultLimit is the snapshot capacity used when New is given no limit.
const DefaultLimit = 50

// State describes where the cursor sits in the log.
type State string

const (
	StateEmpty      State = "empty"
	StateAtTip      State = "at-tip"
	StateMidHistory State = "mid-history"
)

// History stores the last N theme snapshots in a ring with a cursor.
// Entries older than the cursor are reachable by Undo, newer ones by Redo.
type History struct {
	mu      sync.Mutex
	size    int
	entries []models.Theme
	start   int
	count   int
	cursor  int
}

// New returns a history sized for limit snapshots.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{
		size:    limit,
		entries: make([]models.Theme, limit),
	}
}

func (h *History) slot(i int) int {
	return (h.start + i) % h.size
}

// Push records a snapshot, discarding any redo tail. When the log is full the
// oldest snapshot is dropped.
func (h *History) Push(theme models.Theme) {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count > 0 {
		h.count = h.cursor + 1
	}
	if h.count == h.size {
		h.entries[h.start] = models.Theme{}
		h.start = (h.start + 1) % h.size
		h.count--
	}

	h.entries[h.slot(h.count)] = theme.Clone()
	h.count++
	h.cursor = h.count - 1
}

// Undo moves one step back and returns that snapshot. It reports false when
// there is nothing older to return.
func (h *History) Undo() (models.Theme, bool) {
	if h == nil {
		return models.Theme{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 || h.cursor == 0 {
		return models.Theme{}, false
	}
	h.cursor--
	return h.entries[h.slot(h.cursor)].Clone(), true
}

// Redo moves one step forward and returns that snapshot. It reports false
// when the cursor is already at the newest snapshot.
func (h *History) Redo() (models.Theme, bool) {
	if h == nil {
		return models.Theme{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 || h.cursor >= h.count-1 {
		return models.Theme{}, false
	}
	h.cursor++
	return h.entries[h.slot(h.cursor)].Clone(), true
}

// Reset clears the log and seeds it with baseline as its only entry.
func (h *History) Reset(baseline models.Theme) {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.entries {
		h.entries[i] = models.Theme{}
	}
	h.start = 0
	h.entries[0] = baseline.Clone()
	h.count = 1
	h.cursor = 0
}

// Current returns the snapshot under the cursor.
func (h *History) Current() (models.Theme, bool) {
	if h == nil {
		return models.Theme{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return models.Theme{}, false
	}
	return h.entries[h.slot(h.cursor)].Clone(), true
}

// UndoDepth is the number of snapshots Undo can still step back through.
func (h *History) UndoDepth() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// RedoDepth is the number of snapshots Redo can still step forward through.
func (h *History) RedoDepth() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.count == 0 {
		return 0
	}
	return h.count - 1 - h.cursor
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Limit returns the snapshot capacity.
func (h *History) Limit() int {
	if h == nil {
		return 0
	}
	return h.size
}

// State reports whether the log is empty, at its newest entry, or somewhere
// in between.
func (h *History) State() State {
	if h == nil {
		return StateEmpty
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case h.count == 0:
		return StateEmpty
	case h.cursor == h.count-1:
		return StateAtTip
	default:
		return StateMidHistory
	}
}

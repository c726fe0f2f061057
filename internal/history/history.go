// Package history implements the snapshot-based undo/redo stack over the
// annotation and measurement collections of the active image. History is
// scoped to one image: the owning state resets the manager whenever the
// active image changes.
package history

import (
	"github.com/jinzhu/copier"

	"radview/internal/annotation"
)

// DefaultLimit bounds the stack depth.
const DefaultLimit = 50

// Snapshot is a deep copy of the entity collections at one point in time.
type Snapshot struct {
	Annotations  []annotation.Annotation
	Measurements []annotation.Measurement
}

// Clone returns a deep copy of the snapshot. Entities hold point slices, so
// a shallow copy would alias live geometry into the stack.
func (s Snapshot) Clone() Snapshot {
	var out Snapshot
	// copier with DeepCopy duplicates the nested point slices.
	_ = copier.CopyWithOption(&out, &s, copier.Option{DeepCopy: true})
	if out.Annotations == nil {
		out.Annotations = []annotation.Annotation{}
	}
	if out.Measurements == nil {
		out.Measurements = []annotation.Measurement{}
	}
	return out
}

// Manager is a bounded snapshot stack with a cursor. The cursor is the index
// of the snapshot the next Undo restores; after a Push it sits on the newly
// pushed entry. The current live state is only appended lazily, when an Undo
// happens at the top of the stack, so that a Redo can return to it.
type Manager struct {
	stack  []Snapshot
	cursor int
	limit  int
}

// NewManager creates a manager bounded to limit entries. Non-positive limits
// fall back to DefaultLimit.
func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{cursor: -1, limit: limit}
}

// Reset drops all history, e.g. when the active image changes.
func (m *Manager) Reset() {
	m.stack = nil
	m.cursor = -1
}

// Len returns the number of stored snapshots.
func (m *Manager) Len() int {
	return len(m.stack)
}

// CanUndo reports whether Undo would restore a snapshot.
func (m *Manager) CanUndo() bool {
	return m.cursor >= 0
}

// CanRedo reports whether Redo would restore a snapshot.
func (m *Manager) CanRedo() bool {
	return m.cursor+2 <= len(m.stack)-1
}

// Push records the pre-commit state. Any redo tail beyond the cursor is
// truncated, and the oldest entry is dropped once the limit is reached.
func (m *Manager) Push(s Snapshot) {
	if m.cursor < len(m.stack)-1 {
		m.stack = m.stack[:m.cursor+1]
	}
	m.stack = append(m.stack, s.Clone())
	if len(m.stack) > m.limit {
		m.stack = m.stack[1:]
	}
	m.cursor = len(m.stack) - 1
}

// Undo returns the snapshot below the cursor and moves the cursor back.
// When undoing from the top of the stack, the live state is first appended
// so a subsequent Redo restores it. Returns false at the bottom (no-op).
func (m *Manager) Undo(live Snapshot) (Snapshot, bool) {
	if m.cursor < 0 || m.cursor >= len(m.stack) {
		return Snapshot{}, false
	}
	if m.cursor == len(m.stack)-1 {
		m.stack = append(m.stack, live.Clone())
	}
	s := m.stack[m.cursor].Clone()
	m.cursor--
	return s, true
}

// Redo moves the cursor forward and returns the snapshot that position
// represents as the current state. Returns false past the top (no-op).
func (m *Manager) Redo() (Snapshot, bool) {
	if !m.CanRedo() {
		return Snapshot{}, false
	}
	m.cursor++
	return m.stack[m.cursor+1].Clone(), true
}

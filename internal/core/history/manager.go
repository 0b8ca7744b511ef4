package history

import (
	"fmt"

	"github.com/bethropolis/docedit/internal/buffer"
)

// Manager handles the undo/redo stacks for one buffer.
// It is not safe for concurrent use; callers serialize access per document.
type Manager struct {
	buf        buffer.Buffer
	undoStack  []Operation
	redoStack  []Operation
	maxHistory int // 0 means unlimited
}

// NewManager creates a history manager over buf. A positive maxHistory bounds the
// undo stack; the oldest entries are evicted first.
func NewManager(buf buffer.Buffer, maxHistory int) *Manager {
	if maxHistory < 0 {
		maxHistory = 0
	}
	return &Manager{
		buf:        buf,
		maxHistory: maxHistory,
	}
}

// Execute applies op. Undoable operations are recorded and clear any redo history;
// an operation that fails to apply is not recorded.
func (m *Manager) Execute(op Operation) error {
	if err := op.Apply(m.buf); err != nil {
		return err
	}
	if !op.Undoable() {
		return nil
	}

	m.undoStack = append(m.undoStack, op)
	m.redoStack = m.redoStack[:0]

	if m.maxHistory > 0 && len(m.undoStack) > m.maxHistory {
		// Remove the oldest change (simple FIFO eviction)
		m.undoStack = m.undoStack[len(m.undoStack)-m.maxHistory:]
	}
	return nil
}

// Undo reverts the last recorded operation. It returns false when there is nothing to undo.
func (m *Manager) Undo() (bool, error) {
	if len(m.undoStack) == 0 {
		return false, nil
	}

	top := len(m.undoStack) - 1
	op := m.undoStack[top]
	if err := op.Revert(m.buf); err != nil {
		return false, fmt.Errorf("undo %s: %w", op.Description(), err)
	}
	m.undoStack = m.undoStack[:top]
	m.redoStack = append(m.redoStack, op)
	return true, nil
}

// Redo reapplies the last undone operation. It returns false when there is nothing to redo.
func (m *Manager) Redo() (bool, error) {
	if len(m.redoStack) == 0 {
		return false, nil
	}

	top := len(m.redoStack) - 1
	op := m.redoStack[top]
	if err := op.Apply(m.buf); err != nil {
		return false, fmt.Errorf("redo %s: %w", op.Description(), err)
	}
	m.redoStack = m.redoStack[:top]
	m.undoStack = append(m.undoStack, op)
	return true, nil
}

// Clear drops both stacks. Call this when the buffer is reloaded.
func (m *Manager) Clear() {
	m.undoStack = m.undoStack[:0]
	m.redoStack = m.redoStack[:0]
}

func (m *Manager) CanUndo() bool { return len(m.undoStack) > 0 }

func (m *Manager) CanRedo() bool { return len(m.redoStack) > 0 }

func (m *Manager) UndoDepth() int { return len(m.undoStack) }

func (m *Manager) RedoDepth() int { return len(m.redoStack) }

// Peek returns the operation the next Undo would revert.
func (m *Manager) Peek() (Operation, bool) {
	if len(m.undoStack) == 0 {
		return nil, false
	}
	return m.undoStack[len(m.undoStack)-1], true
}

// Package history provides reversible buffer operations and an undo/redo stack over them.
package history

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/docedit/internal/buffer"
	"github.com/bethropolis/docedit/internal/types"
)

// Operation is a single, reversible edit against a buffer.
// Apply performs the edit and records whatever Revert needs; Revert restores the
// buffer to the state before the matching Apply.
type Operation interface {
	Apply(buf buffer.Buffer) error
	Revert(buf buffer.Buffer) error
	Undoable() bool
	Description() string
}

// AppendOp appends text (possibly several lines) to the end of the buffer.
type AppendOp struct {
	Text string

	lineCountBefore int
}

func (op *AppendOp) Apply(buf buffer.Buffer) error {
	op.lineCountBefore = buf.LineCount()
	buf.Append(op.Text)
	return nil
}

func (op *AppendOp) Revert(buf buffer.Buffer) error {
	for buf.LineCount() > op.lineCountBefore {
		if err := buf.DeleteLine(buf.LineCount()); err != nil {
			return fmt.Errorf("revert append: %w", err)
		}
	}
	return nil
}

func (op *AppendOp) Undoable() bool { return true }

func (op *AppendOp) Description() string {
	return fmt.Sprintf("append %q", op.Text)
}

// InsertOp inserts text at Line:Col.
type InsertOp struct {
	Line, Col int
	Text      string

	newLines bool // insert started new trailing lines
}

func (op *InsertOp) Apply(buf buffer.Buffer) error {
	op.newLines = op.Line == buf.LineCount()+1
	return buf.Insert(op.Line, op.Col, op.Text)
}

// Revert removes exactly the inserted span. Without line breaks this is a delete
// of len(Text) runes at Line:Col.
func (op *InsertOp) Revert(buf buffer.Buffer) error {
	if op.Text == "" {
		return nil
	}
	if op.newLines {
		added := strings.Count(op.Text, "\n") + 1
		for i := 0; i < added; i++ {
			if err := buf.DeleteLine(buf.LineCount()); err != nil {
				return fmt.Errorf("revert insert: %w", err)
			}
		}
		return nil
	}
	if !strings.Contains(op.Text, "\n") {
		return buf.Delete(op.Line, op.Col, utf8.RuneCountInString(op.Text))
	}
	start := types.Position{Line: op.Line, Col: op.Col}
	return buf.Splice(start, spanEnd(start, op.Text), "")
}

func (op *InsertOp) Undoable() bool { return true }

func (op *InsertOp) Description() string {
	return fmt.Sprintf("insert %d:%d %q", op.Line, op.Col, op.Text)
}

// DeleteOp removes Length runes at Line:Col. The removed text is captured on Apply.
type DeleteOp struct {
	Line, Col, Length int

	deleted string
}

func (op *DeleteOp) Apply(buf buffer.Buffer) error {
	deleted, err := buf.Text(op.Line, op.Col, op.Length)
	if err != nil {
		return err
	}
	if err := buf.Delete(op.Line, op.Col, op.Length); err != nil {
		return err
	}
	op.deleted = deleted
	return nil
}

func (op *DeleteOp) Revert(buf buffer.Buffer) error {
	if op.deleted == "" {
		return nil
	}
	at := types.Position{Line: op.Line, Col: op.Col}
	return buf.Splice(at, at, op.deleted)
}

func (op *DeleteOp) Undoable() bool { return true }

func (op *DeleteOp) Description() string {
	return fmt.Sprintf("delete %d:%d %d", op.Line, op.Col, op.Length)
}

// ReplaceOp replaces Length runes at Line:Col with Text. The replaced text is captured on Apply.
type ReplaceOp struct {
	Line, Col, Length int
	Text              string

	replaced string
}

func (op *ReplaceOp) Apply(buf buffer.Buffer) error {
	replaced, err := buf.Text(op.Line, op.Col, op.Length)
	if err != nil {
		return err
	}
	if err := buf.Replace(op.Line, op.Col, op.Length, op.Text); err != nil {
		return err
	}
	op.replaced = replaced
	return nil
}

func (op *ReplaceOp) Revert(buf buffer.Buffer) error {
	start := types.Position{Line: op.Line, Col: op.Col}
	return buf.Splice(start, spanEnd(start, op.Text), op.replaced)
}

func (op *ReplaceOp) Undoable() bool { return true }

func (op *ReplaceOp) Description() string {
	return fmt.Sprintf("replace %d:%d %d %q", op.Line, op.Col, op.Length, op.Text)
}

// SnapshotOp swaps the whole buffer between two full contents.
// Structural edits record one SnapshotOp per command.
type SnapshotOp struct {
	Before, After []string
	Label         string
}

// NewSnapshot captures the current buffer content as the Before state.
func NewSnapshot(buf buffer.Buffer, after []string, label string) *SnapshotOp {
	return &SnapshotOp{Before: buf.Lines(), After: after, Label: label}
}

func (op *SnapshotOp) Apply(buf buffer.Buffer) error {
	buf.SetLines(op.After)
	return nil
}

func (op *SnapshotOp) Revert(buf buffer.Buffer) error {
	buf.SetLines(op.Before)
	return nil
}

func (op *SnapshotOp) Undoable() bool { return true }

func (op *SnapshotOp) Description() string {
	return op.Label
}

// NoUndo wraps an operation so that it is applied but never recorded.
func NoUndo(op Operation) Operation {
	return noUndo{op}
}

type noUndo struct {
	Operation
}

func (noUndo) Undoable() bool { return false }

// spanEnd returns the position just past text when it is inserted at start.
func spanEnd(start types.Position, text string) types.Position {
	breaks := strings.Count(text, "\n")
	if breaks == 0 {
		return types.Position{Line: start.Line, Col: start.Col + utf8.RuneCountInString(text)}
	}
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return types.Position{Line: start.Line + breaks, Col: utf8.RuneCountInString(last) + 1}
}

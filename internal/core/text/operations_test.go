package text

import (
	"errors"
	"testing"

	"github.com/bethropolis/docedit/internal/document"
	"github.com/bethropolis/docedit/internal/types"
)

func TestEditsAreUndoable(t *testing.T) {
	doc := document.FromContent(document.KindText, "abc")

	if err := Insert(doc, 1, 2, "123"); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := Append(doc, "tail\nend"); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if err := Replace(doc, 2, 1, 4, "TAIL"); err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if err := Delete(doc, 1, 2, 3); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got, want := doc.Content(), "abc\nTAIL\nend"; got != want {
		t.Fatalf("Content = %q, want %q", got, want)
	}
	if !doc.IsModified() {
		t.Fatalf("document not marked modified")
	}

	for i := 0; i < 4; i++ {
		if ok, err := doc.Undo(); !ok || err != nil {
			t.Fatalf("undo %d = %v, %v", i, ok, err)
		}
	}
	if got := doc.Content(); got != "abc" {
		t.Fatalf("Content after undoing everything = %q, want %q", got, "abc")
	}
	if ok, _ := doc.Undo(); ok {
		t.Fatalf("undo past the first edit succeeded")
	}
}

func TestFailedEditLeavesDocumentUnchanged(t *testing.T) {
	doc := document.FromContent(document.KindText, "Hello")
	if err := Delete(doc, 1, 4, 3); !errors.Is(err, types.ErrLengthExceeded) {
		t.Fatalf("Delete err = %v, want ErrLengthExceeded", err)
	}
	if err := Insert(doc, 3, 1, "x"); !errors.Is(err, types.ErrOutOfRange) {
		t.Fatalf("Insert err = %v, want ErrOutOfRange", err)
	}
	if doc.IsModified() || doc.History().CanUndo() {
		t.Fatalf("failed edits touched the document")
	}
}

func TestEmptyDocumentInsert(t *testing.T) {
	doc := document.New(document.KindText)
	if err := Insert(doc, 1, 1, "x"); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if got := doc.Content(); got != "x" {
		t.Fatalf("Content = %q, want %q", got, "x")
	}
	doc.Undo()
	if doc.LineCount() != 0 {
		t.Fatalf("LineCount after undo = %d, want 0", doc.LineCount())
	}
}

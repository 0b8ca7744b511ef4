// Package text applies plain line edits to a document. These edits bypass the
// element tree and go straight to the buffer through the document history.
package text

import (
	"github.com/bethropolis/docedit/internal/core/history"
	"github.com/bethropolis/docedit/internal/document"
)

// Append adds text (split on line breaks) to the end of the document.
func Append(doc *document.Document, text string) error {
	return doc.Execute(&history.AppendOp{Text: text})
}

// Insert inserts text at line:col.
func Insert(doc *document.Document, line, col int, text string) error {
	return doc.Execute(&history.InsertOp{Line: line, Col: col, Text: text})
}

// Delete removes length runes at line:col.
func Delete(doc *document.Document, line, col, length int) error {
	return doc.Execute(&history.DeleteOp{Line: line, Col: col, Length: length})
}

// Replace replaces length runes at line:col with text.
func Replace(doc *document.Document, line, col, length int, text string) error {
	return doc.Execute(&history.ReplaceOp{Line: line, Col: col, Length: length, Text: text})
}

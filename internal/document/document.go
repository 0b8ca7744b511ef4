// Package document ties a line buffer to its undo/redo history.
package document

import (
	"strconv"
	"strings"

	"github.com/bethropolis/docedit/internal/buffer"
	"github.com/bethropolis/docedit/internal/core/history"
)

// Kind selects which edit commands apply to a document.
type Kind string

const (
	KindText Kind = "text"
	KindXML  Kind = "xml"
)

// Document owns the buffer contents, the modified flag, and one operation history.
// A Document is single-writer: callers serialize edits to it.
type Document struct {
	kind    Kind
	buf     *buffer.LineBuffer
	history *history.Manager
}

// Option configures a Document.
type Option func(*options)

type options struct {
	historyLimit int
}

// WithHistoryLimit bounds the number of undo steps kept. Zero means unlimited.
func WithHistoryLimit(n int) Option {
	return func(o *options) { o.historyLimit = n }
}

// New creates an empty document with no lines.
func New(kind Kind, opts ...Option) *Document {
	return newDocument(kind, buffer.New(), opts)
}

// FromContent creates an unmodified document holding content.
func FromContent(kind Kind, content string, opts ...Option) *Document {
	return newDocument(kind, buffer.FromContent(content), opts)
}

func newDocument(kind Kind, buf *buffer.LineBuffer, opts []Option) *Document {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Document{
		kind:    kind,
		buf:     buf,
		history: history.NewManager(buf, o.historyLimit),
	}
}

func (d *Document) Kind() Kind { return d.kind }

// Buffer exposes the underlying buffer for read access and for operations.
func (d *Document) Buffer() buffer.Buffer { return d.buf }

func (d *Document) History() *history.Manager { return d.history }

// Execute applies op through the history.
func (d *Document) Execute(op history.Operation) error {
	return d.history.Execute(op)
}

// Undo reverts the most recent edit. It returns false when there is nothing to undo.
func (d *Document) Undo() (bool, error) {
	return d.history.Undo()
}

// Redo reapplies the most recently undone edit. It returns false when there is nothing to redo.
func (d *Document) Redo() (bool, error) {
	return d.history.Redo()
}

func (d *Document) Content() string { return d.buf.Content() }

func (d *Document) Lines() []string { return d.buf.Lines() }

func (d *Document) LineCount() int { return d.buf.LineCount() }

func (d *Document) Line(n int) (string, error) { return d.buf.Line(n) }

func (d *Document) IsModified() bool { return d.buf.IsModified() }

// SetModified updates the dirty flag, e.g. after the caller saved the content.
func (d *Document) SetModified(modified bool) { d.buf.SetModified(modified) }

// Show formats lines start..end as "<n>: <content>", one per line.
// A bound <= 0 selects the whole document; otherwise end is clamped to the last
// line. An empty document or start > end yields "".
func (d *Document) Show(start, end int) string {
	total := d.buf.LineCount()
	if total == 0 {
		return ""
	}
	if start <= 0 || end <= 0 {
		start, end = 1, total
	}
	if end > total {
		end = total
	}
	if start > end {
		return ""
	}

	lines := d.buf.Lines()
	var sb strings.Builder
	for i := start; i <= end; i++ {
		if i > start {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(": ")
		sb.WriteString(lines[i-1])
	}
	return sb.String()
}

// ShowAll formats every line of the document.
func (d *Document) ShowAll() string {
	return d.Show(0, 0)
}

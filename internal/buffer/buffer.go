// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/docedit/internal/types"

// Buffer defines the line-addressed text operations. Lines and columns are 1-based,
// columns count runes, and lines never carry their trailing line break.
type Buffer interface {
	Append(text string)
	Insert(line, col int, text string) error
	Delete(line, col, length int) error
	Replace(line, col, length int, text string) error
	Text(line, col, length int) (string, error)
	DeleteLine(line int) error
	Line(line int) (string, error)
	LineCount() int
	Content() string
	Lines() []string
	SetLines(lines []string)
	// Range based editing, used to express exact inverses of multi-line edits.
	Splice(start, end types.Position, text string) error
	IsModified() bool
	SetModified(modified bool)
}

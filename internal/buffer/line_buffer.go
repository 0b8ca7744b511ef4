// internal/buffer/line_buffer.go
package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/docedit/internal/types"
	"github.com/bethropolis/docedit/internal/utils"
)

// LineBuffer stores a document as a slice of lines.
// Edits that may produce several lines splice the affected line and re-split it on
// line breaks, so the line count never needs a separate reflow pass.
type LineBuffer struct {
	lines    []string
	modified bool // Track if buffer has unsaved changes
}

// New creates an empty LineBuffer with no lines.
func New() *LineBuffer {
	return &LineBuffer{lines: []string{}}
}

// FromLines creates a LineBuffer holding a copy of lines.
func FromLines(lines []string) *LineBuffer {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &LineBuffer{lines: cp}
}

// FromContent splits content on line breaks. Empty content yields a buffer with no lines;
// a trailing line break yields a trailing empty line.
func FromContent(content string) *LineBuffer {
	if content == "" {
		return New()
	}
	return &LineBuffer{lines: strings.Split(content, "\n")}
}

func (lb *LineBuffer) LineCount() int {
	return len(lb.lines)
}

// Line returns the text of the given line.
func (lb *LineBuffer) Line(line int) (string, error) {
	if line < 1 || line > len(lb.lines) {
		return "", fmt.Errorf("%w: line %d not in [1, %d]", types.ErrOutOfRange, line, len(lb.lines))
	}
	return lb.lines[line-1], nil
}

// Lines returns a copy of all lines.
func (lb *LineBuffer) Lines() []string {
	cp := make([]string, len(lb.lines))
	copy(cp, lb.lines)
	return cp
}

// SetLines replaces the whole content with a copy of lines.
func (lb *LineBuffer) SetLines(lines []string) {
	cp := make([]string, len(lines))
	copy(cp, lines)
	lb.lines = cp
	lb.modified = true
}

// Content joins the lines with line breaks, without a trailing break.
func (lb *LineBuffer) Content() string {
	return strings.Join(lb.lines, "\n")
}

func (lb *LineBuffer) IsModified() bool {
	return lb.modified
}

func (lb *LineBuffer) SetModified(modified bool) {
	lb.modified = modified
}

// --- Buffer Modification Methods ---

// Append splits text on line breaks and adds the resulting lines at the end.
func (lb *LineBuffer) Append(text string) {
	lb.lines = append(lb.lines, strings.Split(text, "\n")...)
	lb.modified = true
}

// Insert inserts text at line:col. Text may contain line breaks.
// Inserting at line LineCount()+1, column 1 starts new trailing lines.
func (lb *LineBuffer) Insert(line, col int, text string) error {
	if err := lb.validateInsert(line, col); err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	if line == len(lb.lines)+1 {
		lb.lines = append(lb.lines, strings.Split(text, "\n")...)
	} else {
		current := lb.lines[line-1]
		offset := utils.RuneIndexToByteOffset(current, col-1)
		lb.spliceLine(line, current[:offset]+text+current[offset:])
	}
	lb.modified = true
	return nil
}

// Delete removes length runes starting at line:col. Deletion never spans lines.
func (lb *LineBuffer) Delete(line, col, length int) error {
	current, err := lb.checkSpan(line, col, length)
	if err != nil {
		return err
	}
	if length == 0 {
		return nil // Nothing to delete
	}

	start, end := utils.RuneIndexToByteOffset(current, col-1), utils.RuneIndexToByteOffset(current, col+length-1)
	lb.lines[line-1] = current[:start] + current[end:]
	lb.modified = true
	return nil
}

// Replace removes length runes at line:col and splices text in their place.
func (lb *LineBuffer) Replace(line, col, length int, text string) error {
	current, err := lb.checkSpan(line, col, length)
	if err != nil {
		return err
	}

	start, end := utils.RuneIndexToByteOffset(current, col-1), utils.RuneIndexToByteOffset(current, col+length-1)
	lb.spliceLine(line, current[:start]+text+current[end:])
	lb.modified = true
	return nil
}

// Text returns length runes starting at line:col, with the same bounds as Delete.
func (lb *LineBuffer) Text(line, col, length int) (string, error) {
	current, err := lb.checkSpan(line, col, length)
	if err != nil {
		return "", err
	}
	return current[utils.RuneIndexToByteOffset(current, col-1):utils.RuneIndexToByteOffset(current, col+length-1)], nil
}

// DeleteLine removes a whole line.
func (lb *LineBuffer) DeleteLine(line int) error {
	if line < 1 || line > len(lb.lines) {
		return fmt.Errorf("%w: line %d not in [1, %d]", types.ErrOutOfRange, line, len(lb.lines))
	}
	lb.lines = append(lb.lines[:line-1], lb.lines[line:]...)
	lb.modified = true
	return nil
}

// Splice replaces the half-open range [start, end) with text. The range may span lines;
// positions may address the end of a line. Start and end are swapped if out of order.
func (lb *LineBuffer) Splice(start, end types.Position, text string) error {
	if end.Before(start) {
		start, end = end, start
	}
	startOffset, err := lb.offsetAt(start)
	if err != nil {
		return fmt.Errorf("invalid splice start: %w", err)
	}
	endOffset, err := lb.offsetAt(end)
	if err != nil {
		return fmt.Errorf("invalid splice end: %w", err)
	}

	head := lb.lines[start.Line-1][:startOffset]
	tail := lb.lines[end.Line-1][endOffset:]
	lb.replaceLines(start.Line, end.Line, strings.Split(head+text+tail, "\n"))
	lb.modified = true
	return nil
}

// validateInsert checks an insert position.
func (lb *LineBuffer) validateInsert(line, col int) error {
	count := len(lb.lines)
	// A buffer holding a single empty line only accepts 1:1
	if count == 1 && lb.lines[0] == "" && (line != 1 || col != 1) {
		return fmt.Errorf("%w: empty buffer only accepts 1:1, got %d:%d", types.ErrOutOfRange, line, col)
	}
	if line < 1 || line > count+1 {
		return fmt.Errorf("%w: line %d not in [1, %d]", types.ErrOutOfRange, line, count+1)
	}
	if line <= count {
		maxCol := utf8.RuneCountInString(lb.lines[line-1]) + 1
		if col < 1 || col > maxCol {
			return fmt.Errorf("%w: column %d not in [1, %d] on line %d", types.ErrOutOfRange, col, maxCol, line)
		}
		return nil
	}
	if col != 1 {
		return fmt.Errorf("%w: new line %d only accepts column 1, got %d", types.ErrOutOfRange, line, col)
	}
	return nil
}

// checkSpan validates a single-line span and returns the line it lies on.
func (lb *LineBuffer) checkSpan(line, col, length int) (string, error) {
	if line < 1 || line > len(lb.lines) {
		return "", fmt.Errorf("%w: line %d not in [1, %d]", types.ErrOutOfRange, line, len(lb.lines))
	}
	current := lb.lines[line-1]
	lineLen := utf8.RuneCountInString(current)
	if col < 1 || col > lineLen {
		return "", fmt.Errorf("%w: column %d not in [1, %d] on line %d", types.ErrOutOfRange, col, lineLen, line)
	}
	if length < 0 {
		return "", fmt.Errorf("%w: negative length %d", types.ErrOutOfRange, length)
	}
	if available := lineLen - (col - 1); length > available {
		return "", fmt.Errorf("%w: length %d at column %d, only %d runes left on line %d",
			types.ErrLengthExceeded, length, col, available, line)
	}
	return current, nil
}

// offsetAt converts a position (column up to one past the line end) to a byte offset.
func (lb *LineBuffer) offsetAt(pos types.Position) (int, error) {
	if pos.Line < 1 || pos.Line > len(lb.lines) {
		return 0, fmt.Errorf("%w: line %d not in [1, %d]", types.ErrOutOfRange, pos.Line, len(lb.lines))
	}
	current := lb.lines[pos.Line-1]
	if maxCol := utf8.RuneCountInString(current) + 1; pos.Col < 1 || pos.Col > maxCol {
		return 0, fmt.Errorf("%w: column %d not in [1, %d] on line %d", types.ErrOutOfRange, pos.Col, maxCol, pos.Line)
	}
	return utils.RuneIndexToByteOffset(current, pos.Col-1), nil
}

// spliceLine replaces a line with the lines obtained by splitting combined.
func (lb *LineBuffer) spliceLine(line int, combined string) {
	lb.replaceLines(line, line, strings.Split(combined, "\n"))
}

// replaceLines replaces lines from..to (inclusive) with repl.
func (lb *LineBuffer) replaceLines(from, to int, repl []string) {
	tail := append([]string(nil), lb.lines[to:]...)
	lb.lines = append(append(lb.lines[:from-1], repl...), tail...)
}

// Ensure LineBuffer satisfies the Buffer interface
var _ Buffer = (*LineBuffer)(nil)

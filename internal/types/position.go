// internal/types/position.go
package types

import "fmt"

// Position addresses a location in a line buffer.
// Line is the 1-based line number.
// Col is the 1-based column, counted in runes. A column one past the
// last rune addresses the end of the line.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Col < other.Col)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

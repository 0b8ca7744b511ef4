package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/bethropolis/docedit/internal/types"
)

// splitArgs splits a command line on whitespace. Double-quoted parts may hold
// spaces and the escapes \n, \t, \" and \\.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inArg   bool
		quoted  bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quoted && r == '\\' && i+1 < len(runes):
			i++
			switch runes[i] {
			case 'n':
				current.WriteByte('\n')
			case 't':
				current.WriteByte('\t')
			case '"', '\\':
				current.WriteRune(runes[i])
			default:
				current.WriteRune('\\')
				current.WriteRune(runes[i])
			}
		case r == '"':
			quoted = !quoted
			inArg = true
		case !quoted && unicode.IsSpace(r):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if quoted {
		return nil, errors.New("unterminated quoted text")
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}

// parsePosition parses "line:col".
func parsePosition(s string) (types.Position, error) {
	lineStr, colStr, ok := strings.Cut(s, ":")
	if !ok {
		return types.Position{}, fmt.Errorf("bad position %q (want line:col)", s)
	}
	line, err := parseInt(lineStr, "line")
	if err != nil {
		return types.Position{}, err
	}
	col, err := parseInt(colStr, "column")
	if err != nil {
		return types.Position{}, err
	}
	return types.Position{Line: line, Col: col}, nil
}

// parseRange parses "start:end" for show.
func parseRange(s string) (start, end int, err error) {
	startStr, endStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("bad range %q (want start:end)", s)
	}
	if start, err = parseInt(startStr, "start line"); err != nil {
		return 0, 0, err
	}
	if end, err = parseInt(endStr, "end line"); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseInt(s, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", what, s)
	}
	return n, nil
}

func wantArgs(args []string, min, max int, usage string) error {
	if len(args) < min || len(args) > max {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

// optional returns args[i], or "" when it is missing.
func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// Package find searches a document with regular expressions and substitutes matches.
package find

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bethropolis/docedit/internal/core/history"
	"github.com/bethropolis/docedit/internal/document"
	"github.com/bethropolis/docedit/internal/types"
	"github.com/bethropolis/docedit/internal/utils"
)

// Match is one occurrence on a single line. End is the column just past the match.
type Match struct {
	Start types.Position
	End   types.Position
	Text  string
}

func (m Match) String() string {
	return fmt.Sprintf("%s %q", m.Start, m.Text)
}

func compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: search pattern cannot be empty", types.ErrInvalidOperation)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid search pattern: %v", types.ErrInvalidOperation, err)
	}
	return re, nil
}

// All returns every non-overlapping match in document order.
func All(doc *document.Document, pattern string) ([]Match, error) {
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}
	var matches []Match
	for i, line := range doc.Lines() {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			matches = append(matches, newMatch(line, i+1, loc))
		}
	}
	return matches, nil
}

// Next returns the first match at or after from, searching forward without wrapping.
func Next(doc *document.Document, pattern string, from types.Position) (Match, bool, error) {
	re, err := compile(pattern)
	if err != nil {
		return Match{}, false, err
	}
	lines := doc.Lines()
	for lineIdx := max(from.Line, 1); lineIdx <= len(lines); lineIdx++ {
		line := lines[lineIdx-1]
		start := 0
		if lineIdx == from.Line && from.Col > 1 {
			if start = utils.RuneIndexToByteOffset(line, from.Col-1); start < 0 {
				continue // past the end of this line
			}
		}
		if loc := re.FindStringIndex(line[start:]); loc != nil {
			return newMatch(line, lineIdx, []int{start + loc[0], start + loc[1]}), true, nil
		}
	}
	return Match{}, false, nil
}

func newMatch(line string, lineNo int, loc []int) Match {
	return Match{
		Start: types.Position{Line: lineNo, Col: utils.ByteOffsetToRuneIndex(line, loc[0]) + 1},
		End:   types.Position{Line: lineNo, Col: utils.ByteOffsetToRuneIndex(line, loc[1]) + 1},
		Text:  line[loc[0]:loc[1]],
	}
}

// ParseSubstitute parses "/pattern/replacement/[g]".
func ParseSubstitute(cmdStr string) (pattern, replacement string, global bool, err error) {
	parts := strings.SplitN(cmdStr, "/", 4)
	if len(parts) < 3 || parts[0] != "" {
		err = fmt.Errorf("invalid format: use /pattern/replacement/[g]")
		return
	}
	pattern, replacement = parts[1], parts[2]
	if pattern == "" {
		err = fmt.Errorf("search pattern cannot be empty")
		return
	}
	if len(parts) > 3 {
		for _, flag := range parts[3] {
			if flag != 'g' {
				err = fmt.Errorf("unknown substitute flag %q", flag)
				return
			}
			global = true
		}
	}
	return
}

// Substitute replaces the first match on every line, or every match when global is set.
// The replacement may use $1-style group references. All replacements form one
// undo step; nothing is recorded when no line matches.
func Substitute(doc *document.Document, pattern, replacement string, global bool) (int, error) {
	re, err := compile(pattern)
	if err != nil {
		return 0, err
	}

	lines := doc.Lines()
	count := 0
	for i, line := range lines {
		if global {
			n := len(re.FindAllStringIndex(line, -1))
			if n > 0 {
				lines[i] = re.ReplaceAllString(line, replacement)
				count += n
			}
			continue
		}
		loc := re.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		expanded := re.ExpandString(nil, replacement, line, loc)
		lines[i] = line[:loc[0]] + string(expanded) + line[loc[1]:]
		count++
	}
	if count == 0 {
		return 0, nil
	}

	// Replacements may contain line breaks
	after := strings.Split(strings.Join(lines, "\n"), "\n")
	label := fmt.Sprintf("substitute /%s/%s/", pattern, replacement)
	if err := doc.Execute(history.NewSnapshot(doc.Buffer(), after, label)); err != nil {
		return 0, err
	}
	return count, nil
}

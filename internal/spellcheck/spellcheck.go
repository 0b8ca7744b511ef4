// Package spellcheck finds words missing from a dictionary in plain text and in
// the text content of markup elements.
package spellcheck

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/docedit/internal/core/structure"
	"github.com/bethropolis/docedit/internal/document"
)

// DefaultMinWordLength skips single letters such as "a" and "I".
const DefaultMinWordLength = 2

// Issue is an unknown word. Line and Col are 1-based, Col counts runes.
// ID names the element the word was found in, for markup documents.
type Issue struct {
	Word string
	Line int
	Col  int
	ID   string
}

func (i Issue) String() string {
	if i.ID != "" {
		return fmt.Sprintf("%s %d:%d %s", i.ID, i.Line, i.Col, i.Word)
	}
	return fmt.Sprintf("%d:%d %s", i.Line, i.Col, i.Word)
}

// Checker reports the unknown words of a text.
type Checker interface {
	Check(text string) []Issue
}

// Dictionary is a case-insensitive word list.
type Dictionary struct {
	words         map[string]struct{}
	minWordLength int
}

// NewDictionary creates a dictionary holding words.
func NewDictionary(words ...string) *Dictionary {
	d := &Dictionary{
		words:         make(map[string]struct{}, len(words)),
		minWordLength: DefaultMinWordLength,
	}
	for _, w := range words {
		d.Add(w)
	}
	return d
}

// ReadDictionary reads one word per line. Blank lines and lines starting with '#' are ignored.
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	d := NewDictionary()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	return d, nil
}

// LoadDictionary reads a word list file.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()
	return ReadDictionary(f)
}

func (d *Dictionary) Add(word string) {
	d.words[strings.ToLower(word)] = struct{}{}
}

func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

func (d *Dictionary) Len() int { return len(d.words) }

// SetMinWordLength sets the rune length below which words are not checked.
func (d *Dictionary) SetMinWordLength(n int) {
	if n < 1 {
		n = 1
	}
	d.minWordLength = n
}

// Check splits text into lines and words (Unicode word boundaries) and reports
// words the dictionary does not contain. Segments with digits or without letters
// are skipped.
func (d *Dictionary) Check(text string) []Issue {
	var issues []Issue
	for i, line := range strings.Split(text, "\n") {
		col := 1
		state := -1
		var word string
		for line != "" {
			word, line, state = uniseg.FirstWordInString(line, state)
			n := utf8.RuneCountInString(word)
			if d.checkable(word, n) && !d.known(word) {
				issues = append(issues, Issue{Word: word, Line: i + 1, Col: col})
			}
			col += n
		}
	}
	return issues
}

func (d *Dictionary) checkable(word string, runes int) bool {
	if runes < d.minWordLength {
		return false
	}
	letters := false
	for _, r := range word {
		if unicode.IsDigit(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters = true
		}
	}
	return letters
}

func (d *Dictionary) known(word string) bool {
	if d.Contains(word) {
		return true
	}
	// Possessives and quoted words: "Go's", "'twas'"
	trimmed := strings.Trim(word, "'’")
	if d.Contains(trimmed) {
		return true
	}
	for _, suffix := range []string{"'s", "’s"} {
		if base, ok := strings.CutSuffix(trimmed, suffix); ok && d.Contains(base) {
			return true
		}
	}
	return false
}

// CheckDocument checks every line of a document. Issue lines are document lines.
func CheckDocument(c Checker, doc *document.Document) []Issue {
	return c.Check(doc.Content())
}

// CheckElements checks the text content of each element of a markup document.
// Issue positions are relative to the element's text.
func CheckElements(c Checker, doc *document.Document) ([]Issue, error) {
	nodes, err := structure.TextNodes(doc)
	if err != nil {
		return nil, err
	}
	var issues []Issue
	for _, n := range nodes {
		for _, issue := range c.Check(n.Text) {
			issue.ID = n.ID
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

var _ Checker = (*Dictionary)(nil)

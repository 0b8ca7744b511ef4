// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"

	"github.com/bethropolis/docedit/internal/plugin"
)

var _ plugin.Plugin = (*WordCount)(nil)

// WordCount adds the wc command: line, word and byte counts of the document.
type WordCount struct {
	api plugin.API
}

func New() *WordCount {
	return &WordCount{}
}

func (p *WordCount) Name() string {
	return "wordcount"
}

func (p *WordCount) Initialize(api plugin.API) error {
	p.api = api
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	lines, words, bytes := Count(p.api.Content())
	p.api.Printf("Lines: %d, Words: %d, Bytes: %d", lines, words, bytes)
	return nil
}

// Count returns the number of lines, whitespace-separated words and bytes of content.
func Count(content string) (lines, words, bytes int) {
	if content != "" {
		lines = strings.Count(content, "\n") + 1
	}
	return lines, len(strings.Fields(content)), len(content)
}

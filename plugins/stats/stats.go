// Package stats tracks how long the current document has been open for editing
// in this session and how many changes were made to it.
package stats

import (
	"fmt"
	"time"

	"github.com/bethropolis/docedit/internal/event"
	"github.com/bethropolis/docedit/internal/plugin"
)

var _ plugin.Plugin = (*Stats)(nil)

type Stats struct {
	api plugin.API
	now func() time.Time

	openedAt time.Time
	changes  int
	saves    int
}

func New() *Stats {
	return &Stats{now: time.Now}
}

func (p *Stats) Name() string {
	return "stats"
}

func (p *Stats) Initialize(api plugin.API) error {
	p.api = api
	p.openedAt = p.now()
	api.SubscribeEvent(event.TypeDocumentLoaded, func(event.Event) bool {
		p.openedAt = p.now()
		p.changes, p.saves = 0, 0
		return false
	})
	api.SubscribeEvent(event.TypeDocumentChanged, func(event.Event) bool {
		p.changes++
		return false
	})
	api.SubscribeEvent(event.TypeDocumentSaved, func(event.Event) bool {
		p.saves++
		return false
	})
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

func (p *Stats) Shutdown() error {
	return nil
}

// Elapsed is the editing time of the current document, rounded to seconds.
func (p *Stats) Elapsed() time.Duration {
	return p.now().Sub(p.openedAt).Round(time.Second)
}

func (p *Stats) executeStats(args []string) error {
	name := p.api.FilePath()
	if name == "" {
		name = "(unnamed)"
	}
	p.api.Printf("%s: editing for %s, %d changes, %d saves", name, p.Elapsed(), p.changes, p.saves)
	return nil
}

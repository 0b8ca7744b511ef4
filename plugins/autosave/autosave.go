package autosave

import (
	"fmt"

	"github.com/bethropolis/docedit/internal/event"
	"github.com/bethropolis/docedit/internal/logger"
	"github.com/bethropolis/docedit/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled = false
	defaultEvery   = 20
)

// AutoSave writes a modified document to its file after every N changes.
// It is configured from [plugins.autosave]: enabled = true, every = 10.
type AutoSave struct {
	api plugin.API

	enabled bool
	every   int
	changes int
}

func New() *AutoSave {
	return &AutoSave{
		enabled: defaultEnabled,
		every:   defaultEvery,
	}
}

func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads the configuration and subscribes to document changes.
func (p *AutoSave) Initialize(api plugin.API) error {
	p.api = api
	pluginName := p.Name()

	if v, ok := api.PluginConfigValue(pluginName, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, v, p.enabled)
		}
	}
	if v, ok := api.PluginConfigValue(pluginName, "every"); ok {
		switch n := v.(type) {
		case int64:
			p.setEvery(int(n))
		case int:
			p.setEvery(n)
		default:
			logger.Warnf("%s: Invalid type for 'every' config (%T), using default (%d)", pluginName, v, p.every)
		}
	}

	logger.Infof("%s initialized. Enabled: %v, Every: %d changes", pluginName, p.enabled, p.every)
	if p.enabled {
		api.SubscribeEvent(event.TypeDocumentChanged, p.handleChange)
		api.SubscribeEvent(event.TypeDocumentSaved, p.handleSaved)
	}
	return nil
}

func (p *AutoSave) setEvery(n int) {
	if n <= 0 {
		logger.Warnf("%s: 'every' config must be positive (%d), using default (%d)", p.Name(), n, p.every)
		return
	}
	p.every = n
}

func (p *AutoSave) Shutdown() error {
	return nil
}

func (p *AutoSave) handleChange(e event.Event) bool {
	p.changes++
	if p.changes < p.every || !p.api.IsModified() || p.api.FilePath() == "" {
		return false
	}
	changes := p.changes // Save resets the count through DocumentSaved
	if err := p.api.Save(); err != nil {
		logger.Errorf("%s: %v", p.Name(), fmt.Errorf("saving %s: %w", p.api.FilePath(), err))
		return false
	}
	logger.DebugTagf("autosave", "%s: saved %s after %d changes", p.Name(), p.api.FilePath(), changes)
	return false
}

// handleSaved restarts the count after any save.
func (p *AutoSave) handleSaved(e event.Event) bool {
	p.changes = 0
	return false
}

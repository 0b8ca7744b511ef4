package app

import (
	"fmt"

	"github.com/bethropolis/docedit/internal/logger"
	"github.com/bethropolis/docedit/internal/plugin"
	"github.com/bethropolis/docedit/plugins/autosave"
	"github.com/bethropolis/docedit/plugins/stats"
	"github.com/bethropolis/docedit/plugins/wordcount"
)

// pluginConstructors lists the built-in plugins. Adding a plugin means adding its constructor here.
var pluginConstructors = []func() plugin.Plugin{
	func() plugin.Plugin { return wordcount.New() },
	func() plugin.Plugin { return autosave.New() },
	func() plugin.Plugin { return stats.New() },
}

// registerPlugins registers all known plugins with the manager.
func registerPlugins(pm *plugin.Manager) error {
	var finalErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr
			}
		}
	}
	return finalErr
}

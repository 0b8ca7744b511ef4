package app

import (
	"fmt"

	"github.com/bethropolis/docedit/internal/event"
	"github.com/bethropolis/docedit/internal/plugin"
)

var _ plugin.API = (*appPluginAPI)(nil)

// appPluginAPI gives plugins access to the app.
type appPluginAPI struct {
	app *App
}

func newPluginAPI(app *App) *appPluginAPI {
	return &appPluginAPI{app: app}
}

func (api *appPluginAPI) Content() string  { return api.app.doc.Content() }
func (api *appPluginAPI) LineCount() int   { return api.app.doc.LineCount() }
func (api *appPluginAPI) FilePath() string { return api.app.filePath }
func (api *appPluginAPI) Kind() string     { return string(api.app.doc.Kind()) }
func (api *appPluginAPI) IsModified() bool { return api.app.doc.IsModified() }

func (api *appPluginAPI) Save() error { return api.app.save("") }

func (api *appPluginAPI) Printf(format string, args ...interface{}) {
	api.app.printf(format, args...)
}

func (api *appPluginAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appPluginAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// RegisterCommand adds a plugin command. Built-in command names cannot be taken.
func (api *appPluginAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if _, exists := api.app.commands[name]; exists {
		return fmt.Errorf("command '%s' is a built-in command", name)
	}
	if _, exists := api.app.pluginCommands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	api.app.pluginCommands[name] = cmdFunc
	return nil
}

func (api *appPluginAPI) PluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := api.app.cfg.Plugins[pluginName][key]
	return v, ok
}

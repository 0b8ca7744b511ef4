// Package plugin defines the extension points of the application: plugins get a
// narrow API to the open document, the event bus and the command table.
package plugin

import "github.com/bethropolis/docedit/internal/event"

// CommandFunc is a command registered by a plugin. It receives the parsed
// arguments that followed the command name.
type CommandFunc func(args []string) error

// API is what plugins may use. Plugins only read the document; edits go
// through the built-in commands so they are recorded in the history.
type API interface {
	// Document access
	Content() string
	LineCount() int
	FilePath() string
	Kind() string
	IsModified() bool
	Save() error

	// Output to the user
	Printf(format string, args ...interface{})

	// Event bus
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// Commands
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// Configuration from the [plugins.<name>] table
	PluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin is implemented by every plugin.
type Plugin interface {
	Name() string

	// Initialize is called once after registration. Plugins subscribe to events
	// and register commands here.
	Initialize(api API) error

	// Shutdown is called once when the application exits.
	Shutdown() error
}

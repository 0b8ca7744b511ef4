// Package plugintest provides an in-memory plugin.API for plugin tests.
package plugintest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bethropolis/docedit/internal/event"
	"github.com/bethropolis/docedit/internal/plugin"
)

// API is a plugin.API backed by plain fields.
type API struct {
	Text     string
	Path     string
	DocKind  string
	Modified bool
	Saves    int
	SaveErr  error
	Config   map[string]map[string]interface{}
	Commands map[string]plugin.CommandFunc
	Events   *event.Manager
	Out      bytes.Buffer
}

func New(text string) *API {
	return &API{
		Text:     text,
		DocKind:  "text",
		Commands: make(map[string]plugin.CommandFunc),
		Events:   event.NewManager(),
	}
}

func (a *API) Content() string { return a.Text }

func (a *API) LineCount() int {
	if a.Text == "" {
		return 0
	}
	return strings.Count(a.Text, "\n") + 1
}

func (a *API) FilePath() string { return a.Path }
func (a *API) Kind() string     { return a.DocKind }
func (a *API) IsModified() bool { return a.Modified }

// Save records the save and announces it the way the app does.
func (a *API) Save() error {
	if a.SaveErr != nil {
		return a.SaveErr
	}
	a.Saves++
	a.Modified = false
	a.Events.Dispatch(event.TypeDocumentSaved, event.DocumentSavedData{FilePath: a.Path})
	return nil
}

func (a *API) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&a.Out, format, args...)
	a.Out.WriteByte('\n')
}

func (a *API) DispatchEvent(eventType event.Type, data interface{}) {
	a.Events.Dispatch(eventType, data)
}

func (a *API) SubscribeEvent(eventType event.Type, handler event.Handler) {
	a.Events.Subscribe(eventType, handler)
}

func (a *API) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if _, exists := a.Commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.Commands[name] = cmdFunc
	return nil
}

func (a *API) PluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := a.Config[pluginName][key]
	return v, ok
}

// Run calls a registered command.
func (a *API) Run(name string, args ...string) error {
	cmd, ok := a.Commands[name]
	if !ok {
		return fmt.Errorf("unknown command '%s'", name)
	}
	return cmd(args)
}

var _ plugin.API = (*API)(nil)

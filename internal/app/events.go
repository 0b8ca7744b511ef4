package app

import (
	"github.com/bethropolis/docedit/internal/event"
	"github.com/bethropolis/docedit/internal/logger"
)

// subscribeLogging logs every event at debug level under the "event" tag and
// failed commands at warn level.
func (a *App) subscribeLogging() {
	for _, t := range []event.Type{
		event.TypeDocumentLoaded,
		event.TypeDocumentSaved,
		event.TypeDocumentChanged,
		event.TypeCommandExecuted,
		event.TypeAppReady,
		event.TypeAppQuit,
	} {
		a.eventManager.Subscribe(t, a.logEvent)
	}
	a.eventManager.Subscribe(event.TypeCommandFailed, a.logCommandFailed)
}

func (a *App) logEvent(e event.Event) bool {
	logger.DebugTagf("event", "%s %+v", e.Type, e.Data)
	return false
}

func (a *App) logCommandFailed(e event.Event) bool {
	if data, ok := e.Data.(event.CommandData); ok {
		logger.Warnf("App: command %s %q failed: %v", data.Name, data.Args, data.Err)
	}
	return false
}

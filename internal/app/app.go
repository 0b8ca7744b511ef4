// Package app is the interactive shell around one document: it reads command
// lines, routes them to the text or markup editing operations and writes results.
package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/docedit/internal/config"
	"github.com/bethropolis/docedit/internal/core/structure"
	"github.com/bethropolis/docedit/internal/document"
	"github.com/bethropolis/docedit/internal/event"
	"github.com/bethropolis/docedit/internal/logger"
	"github.com/bethropolis/docedit/internal/plugin"
	"github.com/bethropolis/docedit/internal/spellcheck"
	"github.com/bethropolis/docedit/internal/tree"
)

// Options configures a new App.
type Options struct {
	FilePath string
	// Kind is "text" or "xml". Empty picks xml for .xml files and the configured default otherwise.
	Kind   string
	Config *config.Config
	// Checker replaces the dictionary named in the configuration.
	Checker spellcheck.Checker
	// Prompt is written before each command line. Empty writes none.
	Prompt string
}

// App holds one open document and the services around it.
type App struct {
	cfg      *config.Config
	doc      *document.Document
	filePath string
	prompt   string

	eventManager   *event.Manager
	pluginManager  *plugin.Manager
	commands       map[string]command
	pluginCommands map[string]plugin.CommandFunc
	checker        spellcheck.Checker

	out  io.Writer
	quit bool
}

// New loads (or creates) the document named in opts and initializes the plugins.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	kind, err := resolveKind(opts.Kind, opts.FilePath, cfg.Editor.DefaultKind)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:            cfg,
		filePath:       opts.FilePath,
		prompt:         opts.Prompt,
		eventManager:   event.NewManager(),
		pluginManager:  plugin.NewManager(),
		commands:       commandsFor(kind),
		pluginCommands: make(map[string]plugin.CommandFunc),
		checker:        opts.Checker,
		out:            io.Discard,
	}
	a.subscribeLogging()

	if err := a.load(kind); err != nil {
		return nil, err
	}

	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	if err := a.pluginManager.InitializePlugins(newPluginAPI(a)); err != nil {
		logger.Warnf("App: %v", err)
	}

	a.eventManager.Dispatch(event.TypeDocumentLoaded, event.DocumentLoadedData{
		FilePath: a.filePath,
		Kind:     string(kind),
		Lines:    a.doc.LineCount(),
	})
	return a, nil
}

func resolveKind(explicit, filePath, fallback string) (document.Kind, error) {
	switch {
	case explicit != "":
		fallback = explicit
	case strings.EqualFold(filepath.Ext(filePath), ".xml"):
		fallback = string(document.KindXML)
	}
	switch k := document.Kind(strings.ToLower(fallback)); k {
	case document.KindText, document.KindXML:
		return k, nil
	}
	return "", fmt.Errorf("unknown document kind %q (want text or xml)", fallback)
}

// load reads the file, or starts an empty document when it does not exist yet.
// New markup documents get a root element.
func (a *App) load(kind document.Kind) error {
	opts := []document.Option{document.WithHistoryLimit(a.cfg.Editor.HistoryLimit)}

	if a.filePath != "" {
		data, err := os.ReadFile(a.filePath)
		switch {
		case err == nil:
			a.doc = document.FromContent(kind, string(data), opts...)
			logger.Infof("App: loaded %s (%s, %d lines)", a.filePath, kind, a.doc.LineCount())
			if kind == document.KindXML {
				if _, err := tree.Decode(a.doc.Lines()); err != nil {
					logger.Warnf("App: %s is not a well-formed document: %v", a.filePath, err)
				}
			}
			return nil
		case !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("loading %s: %w", a.filePath, err)
		}
		logger.Infof("App: %s does not exist, starting a new %s document", a.filePath, kind)
	}

	a.doc = document.New(kind, opts...)
	if kind == document.KindXML {
		return structure.Init(a.doc)
	}
	return nil
}

// save writes the document to path, or to the file it was loaded from.
func (a *App) save(path string) error {
	if path == "" {
		path = a.filePath
	}
	if path == "" {
		return errors.New("no file name (use save <path>)")
	}

	content := a.doc.Content()
	if a.doc.Kind() == document.KindXML && content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	a.filePath = path
	a.doc.SetModified(false)
	a.eventManager.Dispatch(event.TypeDocumentSaved, event.DocumentSavedData{FilePath: path, Lines: a.doc.LineCount()})
	return nil
}

// Document returns the open document.
func (a *App) Document() *document.Document { return a.doc }

func (a *App) FilePath() string { return a.filePath }

// Run reads commands from in until quit or end of input, writing results to out.
// Command errors are reported on out and do not stop the loop.
func (a *App) Run(in io.Reader, out io.Writer) error {
	a.out = out
	defer a.pluginManager.ShutdownPlugins()

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	scanner := bufio.NewScanner(in)
	for !a.quit {
		if a.prompt != "" {
			fmt.Fprint(out, a.prompt)
		}
		if !scanner.Scan() {
			break
		}
		if err := a.Execute(scanner.Text()); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	a.eventManager.Dispatch(event.TypeAppQuit, nil)
	return scanner.Err()
}

// Execute runs one command line.
func (a *App) Execute(line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	name := strings.ToLower(args[0])
	args = args[1:]

	if cmd, ok := a.commands[name]; ok {
		err = cmd.run(a, args)
	} else if cmdFunc, ok := a.pluginCommands[name]; ok {
		err = cmdFunc(args)
	} else {
		err = fmt.Errorf("unknown command %q for %s documents (try help)", name, a.doc.Kind())
	}

	data := event.CommandData{Name: name, Args: args, Err: err}
	if err != nil {
		a.eventManager.Dispatch(event.TypeCommandFailed, data)
		return err
	}
	a.eventManager.Dispatch(event.TypeCommandExecuted, data)
	return nil
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
	fmt.Fprintln(a.out)
}

// changed announces an edit that went through the document history.
func (a *App) changed(description string) {
	a.eventManager.Dispatch(event.TypeDocumentChanged, event.DocumentChangedData{Description: description})
}

// spellChecker returns the configured checker, loading the dictionary on first use.
func (a *App) spellChecker() (spellcheck.Checker, error) {
	if a.checker != nil {
		return a.checker, nil
	}
	path := a.cfg.Spellcheck.Dictionary
	if path == "" {
		return nil, errors.New("no dictionary configured (set spellcheck.dictionary or use -dict)")
	}
	dict, err := spellcheck.LoadDictionary(path)
	if err != nil {
		return nil, err
	}
	dict.SetMinWordLength(a.cfg.Spellcheck.MinWordLength)
	logger.Debugf("App: loaded dictionary %s (%d words)", path, dict.Len())
	a.checker = dict
	return dict, nil
}

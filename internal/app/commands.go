package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/docedit/internal/core/find"
	"github.com/bethropolis/docedit/internal/core/structure"
	"github.com/bethropolis/docedit/internal/core/text"
	"github.com/bethropolis/docedit/internal/document"
	"github.com/bethropolis/docedit/internal/spellcheck"
)

type command struct {
	usage string
	run   func(a *App, args []string) error
}

var commonCommands = map[string]command{
	"undo":        {"undo", (*App).cmdUndo},
	"redo":        {"redo", (*App).cmdRedo},
	"show":        {"show [start:end]", (*App).cmdShow},
	"find":        {"find <pattern>", (*App).cmdFind},
	"spell-check": {"spell-check", (*App).cmdSpellcheck},
	"save":        {"save [path]", (*App).cmdSave},
	"exit":        {"exit", (*App).cmdQuit},
	"exit!":       {"exit!", (*App).cmdForceQuit},
	"help":        {"help", (*App).cmdHelp},
}

var textCommands = map[string]command{
	"append":     {`append "text"`, (*App).cmdAppend},
	"insert":     {`insert <line:col> "text"`, (*App).cmdInsert},
	"delete":     {"delete <line:col> <len>", (*App).cmdDelete},
	"replace":    {`replace <line:col> <len> "text"`, (*App).cmdReplace},
	"substitute": {"substitute /pattern/replacement/[g]", (*App).cmdSubstitute},
}

var xmlCommands = map[string]command{
	"insert-before": {`insert-before <tag> <newId> <targetId> ["text"]`, (*App).cmdInsertBefore},
	"append-child":  {`append-child <tag> <newId> <parentId> ["text"]`, (*App).cmdAppendChild},
	"edit-id":       {"edit-id <oldId> <newId>", (*App).cmdEditID},
	"edit-text":     {`edit-text <id> ["text"]`, (*App).cmdEditText},
	"delete":        {"delete <id>", (*App).cmdDeleteElement},
	"xml-tree":      {"xml-tree", (*App).cmdXMLTree},
}

// aliases map alternative spellings onto command names.
var aliases = map[string]string{
	"spellcheck": "spell-check",
	"quit":       "exit",
	"quit!":      "exit!",
	"s":          "substitute",
}

func commandsFor(kind document.Kind) map[string]command {
	cmds := make(map[string]command)
	for name, c := range commonCommands {
		cmds[name] = c
	}
	kindCmds := textCommands
	if kind == document.KindXML {
		kindCmds = xmlCommands
	}
	for name, c := range kindCmds {
		cmds[name] = c
	}
	for alias, name := range aliases {
		if c, ok := cmds[name]; ok {
			cmds[alias] = c
		}
	}
	return cmds
}

// --- text documents ---

func (a *App) cmdAppend(args []string) error {
	if err := wantArgs(args, 1, 1, `append "text"`); err != nil {
		return err
	}
	if err := text.Append(a.doc, args[0]); err != nil {
		return err
	}
	a.changed("append")
	return nil
}

func (a *App) cmdInsert(args []string) error {
	if err := wantArgs(args, 2, 2, `insert <line:col> "text"`); err != nil {
		return err
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	if err := text.Insert(a.doc, pos.Line, pos.Col, args[1]); err != nil {
		return err
	}
	a.changed("insert " + pos.String())
	return nil
}

func (a *App) cmdDelete(args []string) error {
	if err := wantArgs(args, 2, 2, "delete <line:col> <len>"); err != nil {
		return err
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	length, err := parseInt(args[1], "length")
	if err != nil {
		return err
	}
	if err := text.Delete(a.doc, pos.Line, pos.Col, length); err != nil {
		return err
	}
	a.changed("delete " + pos.String())
	return nil
}

func (a *App) cmdReplace(args []string) error {
	if err := wantArgs(args, 3, 3, `replace <line:col> <len> "text"`); err != nil {
		return err
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	length, err := parseInt(args[1], "length")
	if err != nil {
		return err
	}
	if err := text.Replace(a.doc, pos.Line, pos.Col, length, args[2]); err != nil {
		return err
	}
	a.changed("replace " + pos.String())
	return nil
}

func (a *App) cmdSubstitute(args []string) error {
	if err := wantArgs(args, 1, 1, "substitute /pattern/replacement/[g]"); err != nil {
		return err
	}
	pattern, replacement, global, err := find.ParseSubstitute(args[0])
	if err != nil {
		return err
	}
	n, err := find.Substitute(a.doc, pattern, replacement, global)
	if err != nil {
		return err
	}
	if n > 0 {
		a.changed("substitute " + args[0])
	}
	a.printf("%d replacements", n)
	return nil
}

// --- markup documents ---

func (a *App) cmdInsertBefore(args []string) error {
	if err := wantArgs(args, 3, 4, `insert-before <tag> <newId> <targetId> ["text"]`); err != nil {
		return err
	}
	if err := structure.InsertBefore(a.doc, args[0], args[1], args[2], optional(args, 3)); err != nil {
		return err
	}
	a.changed("insert-before " + args[1])
	return nil
}

func (a *App) cmdAppendChild(args []string) error {
	if err := wantArgs(args, 3, 4, `append-child <tag> <newId> <parentId> ["text"]`); err != nil {
		return err
	}
	if err := structure.AppendChild(a.doc, args[0], args[1], args[2], optional(args, 3)); err != nil {
		return err
	}
	a.changed("append-child " + args[1])
	return nil
}

func (a *App) cmdEditID(args []string) error {
	if err := wantArgs(args, 2, 2, "edit-id <oldId> <newId>"); err != nil {
		return err
	}
	if err := structure.EditID(a.doc, args[0], args[1]); err != nil {
		return err
	}
	a.changed("edit-id " + args[0])
	return nil
}

func (a *App) cmdEditText(args []string) error {
	if err := wantArgs(args, 1, 2, `edit-text <id> ["text"]`); err != nil {
		return err
	}
	if err := structure.EditText(a.doc, args[0], optional(args, 1)); err != nil {
		return err
	}
	a.changed("edit-text " + args[0])
	return nil
}

func (a *App) cmdDeleteElement(args []string) error {
	if err := wantArgs(args, 1, 1, "delete <id>"); err != nil {
		return err
	}
	if err := structure.Delete(a.doc, args[0]); err != nil {
		return err
	}
	a.changed("delete " + args[0])
	return nil
}

func (a *App) cmdXMLTree(args []string) error {
	out, err := structure.RenderTree(a.doc)
	if err != nil {
		return err
	}
	a.printf("%s", out)
	return nil
}

// --- both kinds ---

func (a *App) cmdUndo(args []string) error {
	ok, err := a.doc.Undo()
	if err != nil {
		return err
	}
	if !ok {
		a.printf("nothing to undo")
		return nil
	}
	a.changed("undo")
	return nil
}

func (a *App) cmdRedo(args []string) error {
	ok, err := a.doc.Redo()
	if err != nil {
		return err
	}
	if !ok {
		a.printf("nothing to redo")
		return nil
	}
	a.changed("redo")
	return nil
}

func (a *App) cmdShow(args []string) error {
	if err := wantArgs(args, 0, 1, "show [start:end]"); err != nil {
		return err
	}
	start, end := 0, 0
	if len(args) == 1 {
		var err error
		if start, end, err = parseRange(args[0]); err != nil {
			return err
		}
	}
	if out := a.doc.Show(start, end); out != "" {
		a.printf("%s", out)
	}
	return nil
}

func (a *App) cmdFind(args []string) error {
	if err := wantArgs(args, 1, 1, "find <pattern>"); err != nil {
		return err
	}
	matches, err := find.All(a.doc, args[0])
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		a.printf("no matches")
		return nil
	}
	for _, m := range matches {
		a.printf("%s", m)
	}
	return nil
}

func (a *App) cmdSpellcheck(args []string) error {
	checker, err := a.spellChecker()
	if err != nil {
		return err
	}

	var issues []spellcheck.Issue
	if a.doc.Kind() == document.KindXML {
		if issues, err = spellcheck.CheckElements(checker, a.doc); err != nil {
			return err
		}
	} else {
		issues = spellcheck.CheckDocument(checker, a.doc)
	}

	if len(issues) == 0 {
		a.printf("no spelling issues")
		return nil
	}
	for _, issue := range issues {
		a.printf("%s", issue)
	}
	return nil
}

func (a *App) cmdSave(args []string) error {
	if err := wantArgs(args, 0, 1, "save [path]"); err != nil {
		return err
	}
	if err := a.save(optional(args, 0)); err != nil {
		return err
	}
	a.printf("saved %s", a.filePath)
	return nil
}

func (a *App) cmdQuit(args []string) error {
	if a.doc.IsModified() {
		return fmt.Errorf("unsaved changes (save first, or exit! to discard them)")
	}
	a.quit = true
	return nil
}

func (a *App) cmdForceQuit(args []string) error {
	a.quit = true
	return nil
}

func (a *App) cmdHelp(args []string) error {
	var usages []string
	for name, c := range a.commands {
		if _, alias := aliases[name]; !alias {
			usages = append(usages, c.usage)
		}
	}
	for name := range a.pluginCommands {
		usages = append(usages, name)
	}
	sort.Strings(usages)
	a.printf("%s commands:\n  %s", a.doc.Kind(), strings.Join(usages, "\n  "))
	return nil
}

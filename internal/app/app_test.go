package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bethropolis/docedit/internal/config"
	"github.com/bethropolis/docedit/internal/document"
	"github.com/bethropolis/docedit/internal/spellcheck"
	"github.com/bethropolis/docedit/internal/types"
)

func newApp(t *testing.T, opts Options) (*App, *bytes.Buffer) {
	t.Helper()
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	var out bytes.Buffer
	a.out = &out
	return a, &out
}

// exec runs one command line and returns what it printed.
func exec(t *testing.T, a *App, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	if err := a.Execute(line); err != nil {
		t.Fatalf("%s: %v", line, err)
	}
	return out.String()
}

func TestTextCommands(t *testing.T) {
	a, out := newApp(t, Options{Kind: "text"})

	exec(t, a, out, `append "Hello World"`)
	exec(t, a, out, `replace 1:7 5 "Java"`)
	if got := exec(t, a, out, "show"); got != "1: Hello Java\n" {
		t.Fatalf("show = %q", got)
	}
	exec(t, a, out, "undo")
	if got := exec(t, a, out, "SHOW 1:1"); got != "1: Hello World\n" {
		t.Fatalf("show after undo = %q", got)
	}
	exec(t, a, out, "redo")
	exec(t, a, out, `insert 1:1 "say:\n"`)
	exec(t, a, out, "delete 2:6 5")
	if diff := cmp.Diff([]string{"say:", "Hello"}, a.Document().Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if got := exec(t, a, out, "show 2:0"); got != "1: say:\n2: Hello\n" {
		t.Fatalf("show with a zero bound = %q", got)
	}

	if err := a.Execute("delete 9:1 1"); !errors.Is(err, types.ErrOutOfRange) {
		t.Fatalf("delete out of range error = %v", err)
	}
	if err := a.Execute("delete 1:1 10"); !errors.Is(err, types.ErrLengthExceeded) {
		t.Fatalf("delete past line end error = %v", err)
	}
	if err := a.Execute("insert 1:x \"a\""); err == nil {
		t.Fatal("bad position accepted")
	}
	if err := a.Execute("append"); err == nil || !strings.Contains(err.Error(), "usage:") {
		t.Fatalf("append without text error = %v", err)
	}
	if err := a.Execute("xml-tree"); err == nil {
		t.Fatal("xml-tree accepted for a text document")
	}
}

func TestUndoRedoOnEmptyHistory(t *testing.T) {
	a, out := newApp(t, Options{Kind: "text"})
	if got := exec(t, a, out, "undo"); got != "nothing to undo\n" {
		t.Fatalf("undo = %q", got)
	}
	if got := exec(t, a, out, "redo"); got != "nothing to redo\n" {
		t.Fatalf("redo = %q", got)
	}
}

func TestFindAndSubstitute(t *testing.T) {
	a, out := newApp(t, Options{Kind: "text"})
	exec(t, a, out, `append "one fish\ntwo fish"`)

	if got := exec(t, a, out, "find fish"); got != "1:5 \"fish\"\n2:5 \"fish\"\n" {
		t.Fatalf("find = %q", got)
	}
	if got := exec(t, a, out, "find whale"); got != "no matches\n" {
		t.Fatalf("find without match = %q", got)
	}
	if got := exec(t, a, out, `s "/(\w+) fish/$1 cat/g"`); got != "2 replacements\n" {
		t.Fatalf("substitute = %q", got)
	}
	if diff := cmp.Diff([]string{"one cat", "two cat"}, a.Document().Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	exec(t, a, out, "undo")
	if diff := cmp.Diff([]string{"one fish", "two fish"}, a.Document().Lines()); diff != "" {
		t.Fatalf("undo mismatch (-want +got):\n%s", diff)
	}
	if err := a.Execute("substitute fish/cat/"); err == nil {
		t.Fatal("malformed substitute accepted")
	}
	if err := a.Execute("find ("); !errors.Is(err, types.ErrInvalidOperation) {
		t.Fatalf("find with bad pattern error = %v", err)
	}

	x, xout := newApp(t, Options{Kind: "xml"})
	if err := x.Execute("s /a/b/"); err == nil {
		t.Fatal("substitute accepted for an XML document")
	}
	if got := exec(t, x, xout, "find root"); !strings.Contains(got, `"root"`) {
		t.Fatalf("find in XML = %q", got)
	}
}

func TestXMLCommands(t *testing.T) {
	a, out := newApp(t, Options{Kind: "xml"})

	exec(t, a, out, `append-child book b1 root "Dune"`)
	exec(t, a, out, "insert-before book b0 b1")
	exec(t, a, out, `edit-text root "Shelf one"`)
	want := strings.Join([]string{
		`root [id="root"]`,
		`├── "Shelf one"`,
		`├── book [id="b0"]`,
		`└── book [id="b1"]`,
		`    └── "Dune"`,
	}, "\n") + "\n"
	if diff := cmp.Diff(want, exec(t, a, out, "xml-tree")); diff != "" {
		t.Fatalf("xml-tree mismatch (-want +got):\n%s", diff)
	}

	if err := a.Execute("delete root"); !errors.Is(err, types.ErrInvalidOperation) {
		t.Fatalf("delete root error = %v", err)
	}
	if err := a.Execute("append-child book b1 root"); !errors.Is(err, types.ErrDuplicateID) {
		t.Fatalf("duplicate id error = %v", err)
	}
	if err := a.Execute("edit-id nope x"); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("edit-id missing error = %v", err)
	}
	if err := a.Execute("edit-id b1 b1"); !errors.Is(err, types.ErrDuplicateID) {
		t.Fatalf("edit-id to the same id error = %v", err)
	}

	exec(t, a, out, "edit-id b0 b2")
	exec(t, a, out, "delete b1")
	exec(t, a, out, "undo")
	exec(t, a, out, "undo")
	want = strings.Join([]string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<root id="root">`,
		`    Shelf one`,
		`    <book id="b0" />`,
		`    <book id="b1">Dune</book>`,
		`</root>`,
	}, "\n")
	if got := a.Document().Content(); got != want {
		t.Fatalf("content after undo =\n%s\nwant\n%s", got, want)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()

	t.Run("text", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		a, out := newApp(t, Options{FilePath: path})
		if a.Document().Kind() != document.KindText || a.Document().LineCount() != 0 {
			t.Fatalf("new file: kind %s, %d lines", a.Document().Kind(), a.Document().LineCount())
		}
		exec(t, a, out, `append "first\nsecond"`)
		if got := exec(t, a, out, "save"); got != "saved "+path+"\n" {
			t.Fatalf("save = %q", got)
		}
		if a.Document().IsModified() {
			t.Fatal("document still modified after save")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile error: %v", err)
		}
		if string(data) != "first\nsecond" {
			t.Fatalf("file content = %q", data)
		}

		b, out := newApp(t, Options{FilePath: path})
		if got := exec(t, b, out, "show 2:2"); got != "2: second\n" {
			t.Fatalf("reloaded show = %q", got)
		}
	})

	t.Run("xml", func(t *testing.T) {
		path := filepath.Join(dir, "books.xml")
		a, out := newApp(t, Options{FilePath: path})
		if a.Document().Kind() != document.KindXML {
			t.Fatalf("kind = %s, want xml", a.Document().Kind())
		}
		exec(t, a, out, `append-child book b1 root "Dune"`)
		exec(t, a, out, "save")

		b, out := newApp(t, Options{FilePath: path})
		if diff := cmp.Diff(a.Document().Lines(), b.Document().Lines()[:a.Document().LineCount()]); diff != "" {
			t.Fatalf("reloaded content mismatch (-want +got):\n%s", diff)
		}
		exec(t, b, out, "append-child book b2 root")
		if got := exec(t, b, out, "xml-tree"); !strings.Contains(got, `book [id="b2"]`) {
			t.Fatalf("xml-tree after reload = %q", got)
		}
	})

	t.Run("no file name", func(t *testing.T) {
		a, _ := newApp(t, Options{Kind: "text"})
		if err := a.Execute("save"); err == nil {
			t.Fatal("save without a file name succeeded")
		}
		path := filepath.Join(dir, "named.txt")
		if err := a.Execute("save " + path); err != nil {
			t.Fatalf("save <path> error: %v", err)
		}
		if a.FilePath() != path {
			t.Fatalf("FilePath = %q, want %q", a.FilePath(), path)
		}
	})
}

func TestSpellCheckCommand(t *testing.T) {
	checker := spellcheck.NewDictionary("hello", "world")

	a, out := newApp(t, Options{Kind: "text", Checker: checker})
	exec(t, a, out, `append "hello wrold"`)
	if got := exec(t, a, out, "spell-check"); got != "1:7 wrold\n" {
		t.Fatalf("spell-check = %q", got)
	}

	x, out := newApp(t, Options{Kind: "xml", Checker: checker})
	exec(t, x, out, `append-child p p1 root "hello world"`)
	if got := exec(t, x, out, "spellcheck"); got != "no spelling issues\n" {
		t.Fatalf("spellcheck = %q", got)
	}

	n, _ := newApp(t, Options{Kind: "text"})
	if err := n.Execute("spell-check"); err == nil {
		t.Fatal("spell-check without a dictionary succeeded")
	}
}

func TestDictionaryFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("a\nbig\ncat\n"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	cfg := config.NewDefaultConfig()
	cfg.Spellcheck.Dictionary = path
	cfg.Spellcheck.MinWordLength = 3

	a, out := newApp(t, Options{Kind: "text", Config: cfg})
	exec(t, a, out, `append "a big dog is a cat"`)
	if got := exec(t, a, out, "spell-check"); got != "1:7 dog\n" {
		t.Fatalf("spell-check = %q", got)
	}
}

func TestPluginCommands(t *testing.T) {
	a, out := newApp(t, Options{Kind: "text"})
	exec(t, a, out, `append "two words"`)
	if got := exec(t, a, out, "wc"); got != "Lines: 1, Words: 2, Bytes: 9\n" {
		t.Fatalf("wc = %q", got)
	}
	if got := exec(t, a, out, "stats"); !strings.HasPrefix(got, "(unnamed): editing for ") || !strings.Contains(got, "1 changes, 0 saves") {
		t.Fatalf("stats = %q", got)
	}
	if got := exec(t, a, out, "help"); !strings.Contains(got, `append "text"`) || !strings.Contains(got, "wc") || strings.Contains(got, "xml-tree") {
		t.Fatalf("help = %q", got)
	}
}

func TestAutosavePlugin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auto.txt")
	cfg := config.NewDefaultConfig()
	cfg.Plugins = map[string]map[string]interface{}{
		"autosave": {"enabled": true, "every": int64(2)},
	}
	a, out := newApp(t, Options{FilePath: path, Config: cfg})
	exec(t, a, out, `append "one"`)
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("saved too early: %v", err)
	}
	exec(t, a, out, `append "two"`)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("autosave did not write the file: %v", err)
	}
	if string(data) != "one\ntwo" {
		t.Fatalf("file content = %q", data)
	}
}

func TestRunLoop(t *testing.T) {
	a, err := New(Options{Kind: "text", Prompt: "> "})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	in := strings.NewReader("append \"a\"\nbogus\n\nexit\nexit!\nappend \"never\"\n")
	var out bytes.Buffer
	if err := a.Run(in, &out); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	got := out.String()
	for _, want := range []string{`error: unknown command "bogus"`, "error: unsaved changes"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "> ") != 5 {
		t.Fatalf("prompt count = %d, want 5:\n%s", strings.Count(got, "> "), got)
	}
	if content := a.Document().Content(); content != "a" {
		t.Fatalf("content = %q, commands after exit! ran", content)
	}
}

func TestResolveKind(t *testing.T) {
	tests := []struct {
		explicit, path, fallback string
		want                     document.Kind
		wantErr                  bool
	}{
		{"", "notes.txt", "text", document.KindText, false},
		{"", "BOOKS.XML", "text", document.KindXML, false},
		{"text", "books.xml", "xml", document.KindText, false},
		{"", "", "xml", document.KindXML, false},
		{"pdf", "", "text", "", true},
	}
	for _, tt := range tests {
		got, err := resolveKind(tt.explicit, tt.path, tt.fallback)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("resolveKind(%q, %q, %q) = %q, %v", tt.explicit, tt.path, tt.fallback, got, err)
		}
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{`insert 1:1 "hello world"`, []string{"insert", "1:1", "hello world"}},
		{`append "a\nb\t\"c\"\\"`, []string{"append", "a\nb\t\"c\"\\"}},
		{`append ""`, []string{"append", ""}},
		{`edit-text  id   "x"  `, []string{"edit-text", "id", "x"}},
		{`append "keep \d"`, []string{"append", `keep \d`}},
	}
	for _, tt := range tests {
		got, err := splitArgs(tt.line)
		if err != nil {
			t.Errorf("splitArgs(%q) error: %v", tt.line, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("splitArgs(%q) mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
	if _, err := splitArgs(`append "open`); err == nil {
		t.Error("unterminated quote accepted")
	}
}

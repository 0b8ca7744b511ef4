package tree

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/bethropolis/docedit/internal/types"
)

var ignoreParent = cmpopts.IgnoreUnexported(Node{})

func sampleTree() *Node {
	root := NewNode("root", "root")
	book := NewNode("book", "b1")
	book.SetAttr("lang", "en")
	book.Text = "Go & <you>"
	shelf := NewNode("shelf", "s1")
	shelf.Text = "top"
	shelf.AppendChild(NewNode("note", "n1"))
	root.AppendChild(book)
	root.AppendChild(shelf)
	return root
}

func TestEncode(t *testing.T) {
	want := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<root id="root">`,
		`    <book id="b1" lang="en">Go &amp; &lt;you&gt;</book>`,
		`    <shelf id="s1">`,
		`        top`,
		`        <note id="n1" />`,
		`    </shelf>`,
		`</root>`,
	}
	if diff := cmp.Diff(want, Encode(sampleTree())); diff != "" {
		t.Fatalf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	tricky := NewNode("doc", "d")
	tricky.SetAttr("title", `say "hi"`+"\nnow")
	tricky.Text = "#not a comment"
	tricky.AppendChild(NewNode("p", "p1"))
	multi := NewNode("p", "p2")
	multi.Text = "one\ntwo"
	tricky.AppendChild(multi)

	for name, tree := range map[string]*Node{"sample": sampleTree(), "escapes": tricky, "lone root": NewNode("root", "root")} {
		t.Run(name, func(t *testing.T) {
			encoded := Encode(tree)
			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode error: %v\n%s", err, strings.Join(encoded, "\n"))
			}
			if diff := cmp.Diff(tree, decoded, ignoreParent); diff != "" {
				t.Fatalf("tree changed in round trip (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(encoded, Encode(decoded)); diff != "" {
				t.Fatalf("encoding is not canonical (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeLenient(t *testing.T) {
	lines := []string{
		`<?xml version="1.0"?>`,
		"# saved by hand",
		"",
		`<library id="lib" name="city">`,
		`<!-- shelves -->`,
		`<shelf data-id="no" id="s1"></shelf>`,
		`  <book id="b1">  Dune  </book>`,
		`<book id="b2"/>`,
		"</library>",
	}
	root, err := Decode(lines)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	want := NewNode("library", "lib")
	want.SetAttr("name", "city")
	shelf := NewNode("shelf", "s1")
	shelf.SetAttr("data-id", "no")
	want.AppendChild(shelf)
	b1 := NewNode("book", "b1")
	b1.Text = "Dune"
	want.AppendChild(b1)
	want.AppendChild(NewNode("book", "b2"))

	if diff := cmp.Diff(want, root, ignoreParent); diff != "" {
		t.Fatalf("Decode mismatch (-want +got):\n%s", diff)
	}
	for _, c := range root.Children {
		if c.Parent() != root {
			t.Fatalf("child %q has wrong parent", c.ID)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"empty", nil},
		{"declaration only", []string{Declaration}},
		{"comments only", []string{"# nothing", "<!-- here -->"}},
		{"two roots", []string{`<a id="1" />`, `<b id="2" />`}},
		{"duplicate id", []string{`<a id="1">`, `<b id="1" />`, `</a>`}},
		{"never closed", []string{`<a id="1">`, `<b id="2" />`}},
		{"stray end tag", []string{`<a id="1" />`, `</a>`}},
		{"mismatched end tag", []string{`<a id="1">`, `</b>`}},
		{"text outside root", []string{"hello", `<a id="1" />`}},
		{"element without id", []string{`<a id="1">`, `<b>`, `</a>`}},
		{"unterminated inline", []string{`<a id="1">text`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.lines)
			if !errors.Is(err, types.ErrMalformedInput) {
				t.Fatalf("Decode error = %v, want ErrMalformedInput", err)
			}
		})
	}
}

func TestRender(t *testing.T) {
	want := strings.Join([]string{
		`root [id="root"]`,
		`├── book [id="b1", lang="en"]`,
		`│   └── "Go & <you>"`,
		`└── shelf [id="s1"]`,
		`    ├── "top"`,
		`    └── note [id="n1"]`,
	}, "\n")
	if diff := cmp.Diff(want, Render(sampleTree())); diff != "" {
		t.Fatalf("Render mismatch (-want +got):\n%s", diff)
	}
	if got := Render(NewNode("root", "root")); got != `root [id="root"]` {
		t.Fatalf("Render(lone root) = %q", got)
	}
}

func TestTextNodes(t *testing.T) {
	want := []TextNode{
		{ID: "b1", Tag: "book", Text: "Go & <you>"},
		{ID: "s1", Tag: "shelf", Text: "top"},
	}
	if diff := cmp.Diff(want, TextNodes(sampleTree())); diff != "" {
		t.Fatalf("TextNodes mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeMutations(t *testing.T) {
	root := sampleTree()
	b1 := root.Find("b1")
	b0 := NewNode("book", "b0")
	if !root.InsertBefore(b0, b1) {
		t.Fatal("InsertBefore reported b1 missing")
	}
	if b0.Parent() != root || root.Children[0] != b0 || root.Children[1] != b1 {
		t.Fatalf("b0 not inserted before b1: %v", root.Children)
	}
	if root.InsertBefore(NewNode("x", "x"), root.Find("n1")) {
		t.Fatal("InsertBefore accepted a grandchild as reference")
	}

	shelf := root.Find("s1")
	if !root.RemoveChild(shelf) {
		t.Fatal("RemoveChild reported s1 missing")
	}
	if root.Find("n1") != nil {
		t.Fatal("subtree of removed element is still reachable")
	}
	if shelf.Parent() != nil || !shelf.IsRoot() {
		t.Fatal("removed element keeps its parent link")
	}
	if root.RemoveChild(shelf) {
		t.Fatal("RemoveChild removed an element twice")
	}

	b1.SetAttr("id", "b9")
	b1.SetAttr("lang", "fr")
	if v, _ := b1.Attr("lang"); b1.ID != "b9" || v != "fr" || len(b1.Attrs) != 1 {
		t.Fatalf("SetAttr: id=%q lang=%q attrs=%v", b1.ID, v, b1.Attrs)
	}
}

func TestValidName(t *testing.T) {
	for name, want := range map[string]bool{"book": true, "x:y": true, "_a-1.b": true, "": false, "1a": false, "a b": false, "<a>": false} {
		if got := ValidName(name); got != want {
			t.Errorf("ValidName(%q) = %v, want %v", name, got, want)
		}
	}
}

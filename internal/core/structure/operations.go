// Package structure edits a markup document through its element tree.
// Each command decodes the buffer, changes the tree, encodes it back and
// records the result as a single history step.
package structure

import (
	"fmt"
	"strings"

	"github.com/bethropolis/docedit/internal/core/history"
	"github.com/bethropolis/docedit/internal/document"
	"github.com/bethropolis/docedit/internal/tree"
	"github.com/bethropolis/docedit/internal/types"
)

const (
	RootTag = "root"
	RootID  = "root"
)

// Init seeds an empty document with a lone root element. The seed is not
// undoable and keeps the document's modified flag. Documents with content are
// left alone.
func Init(doc *document.Document) error {
	if strings.TrimSpace(doc.Content()) != "" {
		return nil
	}
	modified := doc.IsModified()
	seed := tree.Encode(tree.NewNode(RootTag, RootID))
	if err := doc.Execute(history.NoUndo(history.NewSnapshot(doc.Buffer(), seed, "init"))); err != nil {
		return err
	}
	doc.SetModified(modified)
	return nil
}

// InsertBefore adds a new element as the sibling immediately before targetID.
func InsertBefore(doc *document.Document, tag, newID, targetID, text string) error {
	root, err := load(doc)
	if err != nil {
		return err
	}
	target, err := find(root, targetID)
	if err != nil {
		return err
	}
	if target.IsRoot() {
		return fmt.Errorf("%w: cannot insert a sibling of the root element", types.ErrInvalidOperation)
	}
	node, err := newElement(root, tag, newID, text)
	if err != nil {
		return err
	}
	target.Parent().InsertBefore(node, target)
	return commit(doc, root, fmt.Sprintf("insert-before %s %s %s", tag, newID, targetID))
}

// AppendChild adds a new element as the last child of parentID.
func AppendChild(doc *document.Document, tag, newID, parentID, text string) error {
	root, err := load(doc)
	if err != nil {
		return err
	}
	parent, err := find(root, parentID)
	if err != nil {
		return err
	}
	node, err := newElement(root, tag, newID, text)
	if err != nil {
		return err
	}
	parent.AppendChild(node)
	return commit(doc, root, fmt.Sprintf("append-child %s %s %s", tag, newID, parentID))
}

// EditID renames an element. The root keeps its id.
func EditID(doc *document.Document, oldID, newID string) error {
	root, err := load(doc)
	if err != nil {
		return err
	}
	node, err := find(root, oldID)
	if err != nil {
		return err
	}
	if node.IsRoot() {
		return fmt.Errorf("%w: cannot rename the root element", types.ErrInvalidOperation)
	}
	if err := checkNewID(root, newID); err != nil {
		return err
	}
	node.ID = newID
	return commit(doc, root, fmt.Sprintf("edit-id %s %s", oldID, newID))
}

// EditText sets the text content of an element. Empty text removes it.
func EditText(doc *document.Document, id, text string) error {
	root, err := load(doc)
	if err != nil {
		return err
	}
	node, err := find(root, id)
	if err != nil {
		return err
	}
	node.Text = strings.TrimSpace(text)
	return commit(doc, root, fmt.Sprintf("edit-text %s", id))
}

// Delete removes an element and its subtree.
func Delete(doc *document.Document, id string) error {
	root, err := load(doc)
	if err != nil {
		return err
	}
	node, err := find(root, id)
	if err != nil {
		return err
	}
	if node.IsRoot() {
		return fmt.Errorf("%w: cannot delete the root element", types.ErrInvalidOperation)
	}
	node.Parent().RemoveChild(node)
	return commit(doc, root, fmt.Sprintf("delete %s", id))
}

// RenderTree draws the document's element tree. It does not change the document.
func RenderTree(doc *document.Document) (string, error) {
	root, err := load(doc)
	if err != nil {
		return "", err
	}
	return tree.Render(root), nil
}

// TextNodes lists the elements that carry text, in document order.
func TextNodes(doc *document.Document) ([]tree.TextNode, error) {
	root, err := load(doc)
	if err != nil {
		return nil, err
	}
	return tree.TextNodes(root), nil
}

func load(doc *document.Document) (*tree.Node, error) {
	return tree.Decode(doc.Lines())
}

// commit records the encoded tree as one undoable step.
func commit(doc *document.Document, root *tree.Node, label string) error {
	return doc.Execute(history.NewSnapshot(doc.Buffer(), tree.Encode(root), label))
}

func find(root *tree.Node, id string) (*tree.Node, error) {
	node := root.Find(id)
	if node == nil {
		return nil, fmt.Errorf("%w: no element with id %q", types.ErrNotFound, id)
	}
	return node, nil
}

func newElement(root *tree.Node, tag, id, text string) (*tree.Node, error) {
	if !tree.ValidName(tag) {
		return nil, fmt.Errorf("%w: invalid tag name %q", types.ErrInvalidOperation, tag)
	}
	if err := checkNewID(root, id); err != nil {
		return nil, err
	}
	node := tree.NewNode(tag, id)
	node.Text = strings.TrimSpace(text)
	return node, nil
}

func checkNewID(root *tree.Node, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", types.ErrInvalidOperation)
	}
	if root.Find(id) != nil {
		return fmt.Errorf("%w: id %q", types.ErrDuplicateID, id)
	}
	return nil
}

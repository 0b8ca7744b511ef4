// Package tree holds the element tree view of a markup document and the codec
// that maps it to and from indented, line-oriented text.
package tree

// Attr is one attribute of an element. The id attribute is kept in Node.ID, never here.
type Attr struct {
	Name  string
	Value string
}

// Node is an element. Children are owned by their parent; the parent link is a
// plain back-reference maintained by the mutation methods.
type Node struct {
	Tag      string
	ID       string
	Attrs    []Attr
	Text     string
	Children []*Node

	parent *Node
}

// NewNode creates a detached element.
func NewNode(tag, id string) *Node {
	return &Node{Tag: tag, ID: id}
}

// Parent returns the element containing n, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

func (n *Node) IsRoot() bool { return n.parent == nil }

// Attr returns the value of a non-id attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping the position of an existing one.
// Setting "id" renames the element.
func (n *Node) SetAttr(name, value string) {
	if name == "id" {
		n.ID = value
		return
	}
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// AppendChild adds child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	child.parent = n
	n.Children = append(n.Children, child)
}

// InsertBefore inserts child into n's children immediately before ref.
// It reports false if ref is not a child of n.
func (n *Node) InsertBefore(child, ref *Node) bool {
	i := n.indexOf(ref)
	if i < 0 {
		return false
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
	child.parent = n
	return true
}

// RemoveChild detaches child and its subtree from n.
// It reports false if child is not a child of n.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.indexOf(child)
	if i < 0 {
		return false
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	child.parent = nil
	return true
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Find returns the element with the given id, searching depth-first from n.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first, in document order.
// Returning false from fn skips the element's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// TextNode is an element that carries text content.
type TextNode struct {
	ID   string
	Tag  string
	Text string
}

// TextNodes lists the elements with text content, in document order.
func TextNodes(root *Node) []TextNode {
	var out []TextNode
	root.Walk(func(n *Node, _ int) bool {
		if n.Text != "" {
			out = append(out, TextNode{ID: n.ID, Tag: n.Tag, Text: n.Text})
		}
		return true
	})
	return out
}

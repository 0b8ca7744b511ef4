package tree

import (
	"strconv"
	"strings"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	pipeIndent = "│   "
	space      = "    "
)

// Render draws the tree with box-drawing connectors, one element per line.
// An element's text is shown as its first leaf, in double quotes.
func Render(root *Node) string {
	if root == nil {
		return ""
	}
	lines := []string{label(root)}
	lines = renderChildren(lines, root, "")
	return strings.Join(lines, "\n")
}

func renderChildren(lines []string, n *Node, prefix string) []string {
	total := len(n.Children)
	if n.Text != "" {
		total++
	}

	i := 0
	connector := func() (string, string) {
		i++
		if i == total {
			return branchLast, space
		}
		return branchMid, pipeIndent
	}

	if n.Text != "" {
		branch, _ := connector()
		lines = append(lines, prefix+branch+strconv.Quote(n.Text))
	}
	for _, c := range n.Children {
		branch, next := connector()
		lines = append(lines, prefix+branch+label(c))
		lines = renderChildren(lines, c, prefix+next)
	}
	return lines
}

func label(n *Node) string {
	var sb strings.Builder
	sb.WriteString(n.Tag)
	sb.WriteString(` [id="`)
	sb.WriteString(n.ID)
	sb.WriteString(`"`)
	for _, a := range n.Attrs {
		sb.WriteString(", ")
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(a.Value)
		sb.WriteString(`"`)
	}
	sb.WriteString("]")
	return sb.String()
}

package tree

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bethropolis/docedit/internal/types"
)

// Declaration is the first line of every encoded document.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// IndentUnit is the indentation emitted per depth level.
const IndentUnit = "    "

// NamePattern matches tag and attribute names of the dialect.
const NamePattern = `[A-Za-z_][A-Za-z0-9_.:-]*`

// The dialect is line oriented: one start tag per line, attributes in double quotes,
// and every element carries an id attribute.
var (
	nameRe     = regexp.MustCompile(`^` + NamePattern + `$`)
	startTagRe = regexp.MustCompile(`^<(` + NamePattern + `)(?:\s[^<>]*?)?\sid="([^"]*)"[^<>]*>`)
	endTagRe   = regexp.MustCompile(`^</(` + NamePattern + `)\s*>`)
	attrRe     = regexp.MustCompile(`(` + NamePattern + `)="([^"]*)"`)
)

var (
	escaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\n", "&#10;",
		"\r", "&#13;",
	)
	unescaper = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&#10;", "\n",
		"&#13;", "\r",
		"&#35;", "#",
		"&amp;", "&",
	)
)

// ValidName reports whether s can be used as a tag or attribute name.
func ValidName(s string) bool {
	return nameRe.MatchString(s)
}

// Decode builds an element tree from buffer lines. It skips a leading declaration,
// blank lines and comment lines ("#..." or "<!--..."). A text line inside an open
// element becomes that element's text.
func Decode(lines []string) (*Node, error) {
	var (
		root  *Node
		stack []*Node
		seen  = make(map[string]int)
	)

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "<!--") || strings.HasPrefix(line, "<?") {
			continue
		}

		// End tag
		if m := endTagRe.FindStringSubmatch(line); m != nil {
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: line %d: unexpected </%s>", types.ErrMalformedInput, lineNo, m[1])
			}
			if top := stack[len(stack)-1]; top.Tag != m[1] {
				return nil, fmt.Errorf("%w: line %d: </%s> closes <%s id=%q>", types.ErrMalformedInput, lineNo, m[1], top.Tag, top.ID)
			}
			stack = stack[:len(stack)-1]
			continue
		}

		// Text line
		if !strings.HasPrefix(line, "<") {
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: line %d: text outside the root element", types.ErrMalformedInput, lineNo)
			}
			top := stack[len(stack)-1]
			if top.Text != "" {
				top.Text += "\n"
			}
			top.Text += unescape(line)
			continue
		}

		// Start tag
		loc := startTagRe.FindStringSubmatchIndex(line)
		if loc == nil {
			return nil, fmt.Errorf("%w: line %d: not an element with an id: %s", types.ErrMalformedInput, lineNo, line)
		}
		tagText := line[loc[0]:loc[1]]
		node := NewNode(line[loc[2]:loc[3]], unescape(line[loc[4]:loc[5]]))
		for _, a := range attrRe.FindAllStringSubmatch(tagText[len(node.Tag)+1:], -1) {
			if a[1] != "id" {
				node.SetAttr(a[1], unescape(a[2]))
			}
		}
		if prev, dup := seen[node.ID]; dup {
			return nil, fmt.Errorf("%w: line %d: id %q already used on line %d", types.ErrMalformedInput, lineNo, node.ID, prev)
		}
		seen[node.ID] = lineNo

		switch {
		case len(stack) > 0:
			stack[len(stack)-1].AppendChild(node)
		case root == nil:
			root = node
		default:
			return nil, fmt.Errorf("%w: line %d: second top-level element <%s id=%q>", types.ErrMalformedInput, lineNo, node.Tag, node.ID)
		}

		if strings.HasSuffix(tagText, "/>") {
			continue // self-closing
		}

		rest := line[loc[1]:]
		if rest == "" {
			stack = append(stack, node)
			continue
		}
		// Inline text, closed on the same line: <tag id="x">text</tag>
		cut := strings.IndexByte(rest, '<')
		if cut < 0 || !endTagRe.MatchString(rest[cut:]) {
			return nil, fmt.Errorf("%w: line %d: unterminated inline content: %s", types.ErrMalformedInput, lineNo, line)
		}
		if closing := endTagRe.FindStringSubmatch(rest[cut:]); closing[1] != node.Tag {
			return nil, fmt.Errorf("%w: line %d: </%s> closes <%s id=%q>", types.ErrMalformedInput, lineNo, closing[1], node.Tag, node.ID)
		}
		node.Text = unescape(strings.TrimSpace(rest[:cut]))
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element found", types.ErrMalformedInput)
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, fmt.Errorf("%w: <%s id=%q> is never closed", types.ErrMalformedInput, top.Tag, top.ID)
	}
	return root, nil
}

// Encode renders the tree in canonical form: a declaration line, then one element
// per line indented by depth. Decoding the result and encoding again is byte-identical.
func Encode(root *Node) []string {
	lines := []string{Declaration}
	return encodeNode(lines, root, 0)
}

func encodeNode(lines []string, n *Node, depth int) []string {
	indent := strings.Repeat(IndentUnit, depth)

	var sb strings.Builder
	sb.WriteString(indent)
	sb.WriteString("<")
	sb.WriteString(n.Tag)
	sb.WriteString(` id="`)
	sb.WriteString(escaper.Replace(n.ID))
	sb.WriteString(`"`)
	for _, a := range n.Attrs {
		sb.WriteString(" ")
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(escaper.Replace(a.Value))
		sb.WriteString(`"`)
	}

	switch {
	case len(n.Children) == 0 && n.Text == "":
		sb.WriteString(" />")
		return append(lines, sb.String())
	case len(n.Children) == 0:
		sb.WriteString(">")
		sb.WriteString(escaper.Replace(n.Text))
		sb.WriteString("</" + n.Tag + ">")
		return append(lines, sb.String())
	}

	sb.WriteString(">")
	lines = append(lines, sb.String())
	if n.Text != "" {
		text := escaper.Replace(n.Text)
		if strings.HasPrefix(text, "#") {
			text = "&#35;" + text[1:] // would read back as a comment
		}
		lines = append(lines, indent+IndentUnit+text)
	}
	for _, c := range n.Children {
		lines = encodeNode(lines, c, depth+1)
	}
	return append(lines, indent+"</"+n.Tag+">")
}

func unescape(s string) string {
	return unescaper.Replace(s)
}

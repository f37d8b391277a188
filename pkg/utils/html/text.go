// ABOUTME: HTML text utilities for collecting visible text from parsed nodes
// ABOUTME: Skips non-rendered subtrees and normalizes whitespace the way a browser lays it out

package html

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockElements end a line of text when rendered
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Tr: true, atom.Ul: true,
}

// hiddenElements never render text
var hiddenElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Head:     true,
	atom.Iframe:   true,
}

// IsHidden reports whether n is an element whose subtree is not rendered
func IsHidden(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if hiddenElements[n.DataAtom] {
		return true
	}
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "hidden":
			return true
		case "aria-hidden":
			if strings.EqualFold(strings.TrimSpace(attr.Val), "true") {
				return true
			}
		}
	}
	return false
}

// VisibleText returns the rendered text of n and its descendants with
// whitespace normalized. Block elements start a new line. The tree is not modified.
func VisibleText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	collect(n, &b)
	return NormalizeWhitespace(b.String())
}

func collect(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}
	if IsHidden(n) {
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, b)
	}
	if block {
		b.WriteByte('\n')
	}
}

// NormalizeWhitespace collapses runs of spaces and tabs within a line, trims
// every line and drops blank lines
func NormalizeWhitespace(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// StripHTML parses a fragment and returns its visible text
func StripHTML(fragment string) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return NormalizeWhitespace(fragment)
	}
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if text := VisibleText(n); text != "" {
			parts = append(parts, text)
		}
	}
	return NormalizeWhitespace(strings.Join(parts, "\n"))
}

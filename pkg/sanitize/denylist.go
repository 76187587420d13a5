package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// Elements the lite pipeline refuses outright, subtrees included.
var deniedElements = map[string]bool{
	"script": true,
	"iframe": true,
	"object": true,
	"embed":  true,
	"form":   true,
}

// Strip removes script-capable markup from a parsed fragment in place:
// denied elements disappear with their subtrees, and every attribute whose
// name starts with "on" is dropped. It is the lite pipeline's fixed
// alternative to a configurable policy.
func Strip(nodes []*html.Node) []*html.Node {
	kept := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if strip(n) {
			kept = append(kept, n)
		}
	}
	return kept
}

// strip reports whether n survives, scrubbing its subtree as it walks.
func strip(n *html.Node) bool {
	if n.Type == html.ElementNode {
		if deniedElements[n.Data] {
			return false
		}
		n.Attr = scrubAttrs(n.Attr)
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if !strip(c) {
			n.RemoveChild(c)
		}
		c = next
	}
	return true
}

// scrubAttrs filters in place. Attribute names arrive lowercased from the
// parser, so the prefix check needs no folding.
func scrubAttrs(attrs []html.Attribute) []html.Attribute {
	kept := attrs[:0]
	for _, a := range attrs {
		if strings.HasPrefix(a.Key, "on") {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

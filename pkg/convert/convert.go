// Package convert maps parsed HTML fragments onto vdom element trees.
//
// Both markdown pipelines produce HTML and parse it with
// golang.org/x/net/html; this package walks the resulting nodes and builds
// the corresponding *vdom.VNode tree, applying per-tag overrides along the
// way. Conversion is purely structural: it never mutates its input, never
// errors, and converting the same tree twice yields equal output.
package convert

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vmark/pkg/vdom"
)

// Config controls the conversion.
type Config struct {
	// Components maps tag names to overrides. See Components for the
	// supported value types.
	Components Components
}

// ParseFragment parses src as an HTML fragment in body context and returns
// the top-level nodes.
func ParseFragment(src string) ([]*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	return html.ParseFragment(strings.NewReader(src), body)
}

// Convert converts a parsed fragment into a single fragment VNode whose
// children are the converted top-level nodes.
func Convert(nodes []*html.Node, cfg Config) *vdom.VNode {
	frag := &vdom.VNode{
		Kind:     vdom.KindFragment,
		Children: make([]*vdom.VNode, 0, len(nodes)),
	}
	for _, n := range nodes {
		if converted := ConvertNode(n, cfg); converted != nil {
			frag.Children = append(frag.Children, converted)
		}
	}
	return frag
}

// ConvertNode converts a single HTML node. Text nodes keep their decoded
// content unchanged; comments, doctypes, and anything else unknown are
// dropped by returning nil.
func ConvertNode(n *html.Node, cfg Config) *vdom.VNode {
	if n == nil {
		return nil
	}

	switch n.Type {
	case html.TextNode:
		return vdom.Text(n.Data)
	case html.ElementNode:
		return convertElement(n, cfg)
	case html.DocumentNode:
		frag := &vdom.VNode{Kind: vdom.KindFragment}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if converted := ConvertNode(c, cfg); converted != nil {
				frag.Children = append(frag.Children, converted)
			}
		}
		return frag
	default:
		return nil
	}
}

// convertElement converts an element node, consulting the override map
// exactly once for the element's tag.
func convertElement(n *html.Node, cfg Config) *vdom.VNode {
	props := translateAttrs(n.Attr)
	children := convertChildren(n, cfg)

	if override, ok := cfg.Components[n.Data]; ok {
		if node := applyOverride(override, n.Data, props, children); node != nil {
			return node
		}
		return nil
	}

	return &vdom.VNode{
		Kind:     vdom.KindElement,
		Tag:      n.Data,
		Props:    props,
		Children: children,
	}
}

// convertChildren converts an element's children in document order.
func convertChildren(n *html.Node, cfg Config) []*vdom.VNode {
	children := make([]*vdom.VNode, 0)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// script and style contents are raw text; escaping them at
		// render time would corrupt selectors and code.
		if c.Type == html.TextNode && isRawTextElement(n.Data) {
			children = append(children, vdom.Raw(c.Data))
			continue
		}
		if converted := ConvertNode(c, cfg); converted != nil {
			children = append(children, converted)
		}
	}
	return children
}

func isRawTextElement(tag string) bool {
	return tag == "script" || tag == "style"
}

// translateAttrs maps parsed HTML attributes onto vdom Props. Attribute
// keys arrive lowercased from the parser; DOM property spellings are
// normalized to their canonical HTML names, and boolean attributes with
// empty or self-referencing values become true.
func translateAttrs(attrs []html.Attribute) vdom.Props {
	props := make(vdom.Props, len(attrs))
	for _, a := range attrs {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}

		switch key {
		case "classname":
			key = "class"
		case "htmlfor":
			key = "for"
		}

		if isBooleanAttr(key) && (a.Val == "" || strings.EqualFold(a.Val, key)) {
			props[key] = true
			continue
		}

		props[key] = a.Val
	}
	return props
}

// booleanAttrs are attributes whose presence alone means true.
var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"formnovalidate":  true,
	"hidden":          true,
	"ismap":           true,
	"itemscope":       true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"nomodule":        true,
	"novalidate":      true,
	"open":            true,
	"playsinline":     true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

package transform

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// FilterStyles returns a transform that strips every inline style
// declaration whose property is not in the allow list. Elements whose
// style attribute ends up empty lose the attribute. Styles that fail to
// parse are dropped wholesale.
func FilterStyles(allowed ...string) Transform {
	allow := make(map[string]bool, len(allowed))
	for _, p := range allowed {
		allow[strings.ToLower(p)] = true
	}
	return Func(func(nodes []*html.Node) ([]*html.Node, error) {
		for _, n := range nodes {
			filterStyles(n, allow)
		}
		return nodes, nil
	})
}

func filterStyles(n *html.Node, allow map[string]bool) {
	if n.Type == html.ElementNode {
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			if a.Key == "style" {
				a.Val = filterDeclarations(a.Val, allow)
				if a.Val == "" {
					continue
				}
			}
			kept = append(kept, a)
		}
		n.Attr = kept
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		filterStyles(c, allow)
	}
}

func filterDeclarations(style string, allow map[string]bool) string {
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return ""
	}
	var kept []string
	for _, d := range decls {
		if allow[strings.ToLower(d.Property)] {
			kept = append(kept, d.String())
		}
	}
	return strings.Join(kept, " ")
}

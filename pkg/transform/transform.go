// Package transform rewrites parsed HTML fragments between markdown
// parsing and sanitization. Transforms run in the order they are given
// and may mutate the fragment in place or return a replacement.
package transform

import "golang.org/x/net/html"

// Transform rewrites a fragment. Implementations receive the output of the
// previous transform and return the input for the next one.
type Transform interface {
	Transform(nodes []*html.Node) ([]*html.Node, error)
}

// Func adapts a bare function to the Transform interface.
type Func func(nodes []*html.Node) ([]*html.Node, error)

func (f Func) Transform(nodes []*html.Node) ([]*html.Node, error) {
	return f(nodes)
}

// Apply runs transforms in order, feeding each one the previous output.
// The first error stops the chain and is returned as-is.
func Apply(nodes []*html.Node, transforms []Transform) ([]*html.Node, error) {
	for _, t := range transforms {
		var err error
		nodes, err = t.Transform(nodes)
		if err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

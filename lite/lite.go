// Package lite renders markdown into element trees with a fixed feature
// set and no plugin surface. It trades the full pipeline's configurability
// for a smaller dependency: gomarkdown with its common extensions, a
// denylist sanitizer instead of a policy, and the built-in task list
// rewrite. Wrapper, class, override map and the unsafe switch behave
// exactly as in the full pipeline.
package lite

import (
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/vango-dev/vmark/pkg/convert"
	"github.com/vango-dev/vmark/pkg/render"
	"github.com/vango-dev/vmark/pkg/sanitize"
	"github.com/vango-dev/vmark/pkg/vdom"
)

// Props configure a lite render. Tables and strikethrough are always on;
// there is no custom sanitization schema.
type Props struct {
	// Content is the markdown source.
	Content string

	// Wrapper is the tag of the element the output is wrapped in.
	// Empty means "div".
	Wrapper string

	// Class is applied to the wrapper element.
	Class string

	// Unsafe skips the denylist walk.
	Unsafe bool

	// Components substitutes rendering of specific tags.
	Components convert.Components
}

// Render converts markdown to an element tree.
func Render(props Props) (*vdom.VNode, error) {
	// gomarkdown parsers hold state; one per render.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(props.Content))
	out := markdown.Render(doc, mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags,
	}))

	nodes, err := convert.ParseFragment(string(out))
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		rewriteTaskItems(n)
	}
	if !props.Unsafe {
		nodes = sanitize.Strip(nodes)
	}

	tree := convert.Convert(nodes, convert.Config{Components: props.Components})
	return wrap(props, tree), nil
}

// RenderHTML renders markdown straight to an HTML string.
func RenderHTML(props Props) (string, error) {
	tree, err := Render(props)
	if err != nil {
		return "", err
	}
	return render.RenderToString(tree)
}

func wrap(props Props, tree *vdom.VNode) *vdom.VNode {
	tag := props.Wrapper
	if tag == "" {
		tag = "div"
	}
	wrapper := vdom.CustomElement(tag, tree.Children)
	if props.Class != "" {
		wrapper.Props["class"] = props.Class
	}
	return wrapper
}

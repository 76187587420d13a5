// Package vmark renders markdown into element trees.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/vmark"
//
// Usage:
//
//	tree, err := vmark.Render(vmark.Props{
//		Content: "# Hello\n\nSome *markdown*.",
//		Class:   "prose",
//	})
//
// Render parses the markdown with goldmark, applies tree transforms,
// sanitizes the result, and converts it to VNodes. The lite package offers
// a smaller gomarkdown-based pipeline with fixed behavior.
package vmark

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/vango-dev/vmark/pkg/convert"
	"github.com/vango-dev/vmark/pkg/render"
	"github.com/vango-dev/vmark/pkg/sanitize"
	"github.com/vango-dev/vmark/pkg/transform"
	"github.com/vango-dev/vmark/pkg/vdom"
)

// Version is the current vmark version.
const Version = "0.3.0"

// Re-exported core types, so simple callers only import this package.
type (
	// VNode is an element tree node.
	VNode = vdom.VNode

	// Components maps tag names to replacement renderers.
	Components = convert.Components

	// Transform rewrites the parsed fragment before sanitization.
	Transform = transform.Transform
)

// Props configure a markdown render. The zero value renders CommonMark
// with default sanitization into a bare div.
type Props struct {
	// Content is the markdown source.
	Content string

	// Wrapper is the tag of the element the output is wrapped in.
	// Empty means "div".
	Wrapper string

	// Class is applied to the wrapper element.
	Class string

	// Unsafe disables sanitization entirely. The caller accepts the
	// injection risk that comes with it.
	Unsafe bool

	// Policy overrides the default sanitization allow-list. Ignored
	// when Unsafe is set.
	Policy *bluemonday.Policy

	// Extensions extend the markdown grammar, in order. GFM tables,
	// strikethrough and task lists live in goldmark's extension.GFM.
	Extensions []goldmark.Extender

	// ParserOptions are passed through to the goldmark parser, e.g.
	// parser.WithAutoHeadingID.
	ParserOptions []parser.Option

	// Transforms rewrite the parsed fragment in order. They run before
	// sanitization, so markup they introduce is sanitized too.
	Transforms []transform.Transform

	// Components substitutes rendering of specific tags.
	Components convert.Components
}

// Render converts markdown to an element tree. Each call is a pure
// function of its props; use New for a memoized component.
//
// Raw HTML in the source is passed through the parser untouched and
// dealt with by the sanitizer, so that a single layer owns safety.
func Render(props Props) (*vdom.VNode, error) {
	md := goldmark.New(
		goldmark.WithExtensions(props.Extensions...),
		goldmark.WithParserOptions(props.ParserOptions...),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(props.Content), &buf); err != nil {
		return nil, err
	}

	nodes, err := convert.ParseFragment(buf.String())
	if err != nil {
		return nil, err
	}
	if nodes, err = transform.Apply(nodes, props.Transforms); err != nil {
		return nil, err
	}
	if !props.Unsafe {
		if nodes, err = sanitize.Clean(nodes, props.Policy); err != nil {
			return nil, err
		}
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

// ExtractTitle returns the text of the first level-one ATX heading in
// source, or fallback when there is none.
func ExtractTitle(source, fallback string) string {
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return fallback
}

// wrap puts the converted fragment inside the wrapper element.
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

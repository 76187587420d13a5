// Package highlight replaces fenced code blocks with syntax highlighted
// markup using chroma. It targets the pre > code.language-* shape that
// markdown renderers emit for fenced code with an info string; blocks with
// no recognized language are left untouched.
package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"

	"github.com/vango-dev/vmark/pkg/convert"
	"github.com/vango-dev/vmark/pkg/transform"
)

type config struct {
	style        string
	lineNumbers  bool
	inlineStyles bool
}

// Option configures the highlight transform.
type Option func(*config)

// WithStyle selects the chroma style by name. Unknown names fall back to
// chroma's default style.
func WithStyle(name string) Option {
	return func(c *config) { c.style = name }
}

// WithLineNumbers prefixes each line with its number.
func WithLineNumbers() Option {
	return func(c *config) { c.lineNumbers = true }
}

// WithInlineStyles emits style attributes instead of classes. Inline styles
// do not survive the default sanitization policy; use them with a custom
// policy or an unsafe pipeline.
func WithInlineStyles() Option {
	return func(c *config) { c.inlineStyles = true }
}

// New returns the highlight transform. By default it emits class-based
// markup, which pairs with a stylesheet from Stylesheet.
func New(opts ...Option) transform.Transform {
	cfg := config{style: "github"}
	for _, opt := range opts {
		opt(&cfg)
	}
	formatter := chromahtml.New(
		chromahtml.WithClasses(!cfg.inlineStyles),
		chromahtml.WithLineNumbers(cfg.lineNumbers),
	)
	style := styles.Get(cfg.style)

	return transform.Func(func(nodes []*html.Node) ([]*html.Node, error) {
		out := make([]*html.Node, 0, len(nodes))
		for _, n := range nodes {
			if lang, source, ok := fencedCode(n); ok {
				repl, err := render(formatter, style, lang, source)
				if err != nil {
					return nil, err
				}
				if repl != nil {
					out = append(out, repl...)
					continue
				}
			} else if err := rewriteChildren(n, formatter, style); err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	})
}

// Stylesheet returns the CSS for the named chroma style, for serving
// alongside class-based output.
func Stylesheet(style string) (string, error) {
	var buf bytes.Buffer
	f := chromahtml.New(chromahtml.WithClasses(true))
	if err := f.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteChildren(n *html.Node, formatter *chromahtml.Formatter, style *chroma.Style) error {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if lang, source, ok := fencedCode(c); ok {
			repl, err := render(formatter, style, lang, source)
			if err != nil {
				return err
			}
			if repl != nil {
				for _, r := range repl {
					n.InsertBefore(r, c)
				}
				n.RemoveChild(c)
			}
		} else if err := rewriteChildren(c, formatter, style); err != nil {
			return err
		}
		c = next
	}
	return nil
}

// render highlights source and parses the result back into nodes. A nil,
// nil return means the language has no lexer and the block should stay.
func render(formatter *chromahtml.Formatter, style *chroma.Style, lang, source string) ([]*html.Node, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil, nil
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return nil, err
	}
	return convert.ParseFragment(buf.String())
}

// fencedCode matches pre elements whose only element child is a code
// element carrying a language-* class.
func fencedCode(n *html.Node) (lang, source string, ok bool) {
	if n.Type != html.ElementNode || n.Data != "pre" {
		return "", "", false
	}
	var code *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
		case c.Type == html.ElementNode && c.Data == "code" && code == nil:
			code = c
		default:
			return "", "", false
		}
	}
	if code == nil {
		return "", "", false
	}
	for _, a := range code.Attr {
		if a.Key != "class" {
			continue
		}
		for _, cls := range strings.Fields(a.Val) {
			if l, found := strings.CutPrefix(cls, "language-"); found && l != "" {
				return l, textContent(code), true
			}
		}
	}
	return "", "", false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

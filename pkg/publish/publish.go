package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/vango-dev/vmark"
	"github.com/vango-dev/vmark/pkg/render"
	"github.com/vango-dev/vmark/pkg/transform"
	"github.com/vango-dev/vmark/pkg/transform/highlight"
)

// ErrNoMatches is returned when no files matched the include patterns.
var ErrNoMatches = errors.New("publish: no files matched")

// stylesheetKey is where the shared stylesheet is written in the output.
const stylesheetKey = "style.css"

// Store is the destination for published files. Keys are slash-separated
// paths relative to the publish root.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
}

// Options control what gets published and how markdown is rendered.
type Options struct {
	// Include patterns select the markdown files to render, relative to
	// the source directory. Default: ["**/*.md"].
	Include []string

	// Exclude patterns remove files from publishing entirely, both
	// markdown and assets.
	Exclude []string

	// CopyAssets publishes non-markdown files alongside the rendered
	// pages.
	CopyAssets bool

	// Wrapper is the tag of the element page content is wrapped in.
	// Default: "article".
	Wrapper string

	// Class is applied to the wrapper element.
	// Default: "markdown-body".
	Class string

	// Unsafe disables sanitization of the rendered markdown.
	Unsafe bool

	// Highlight enables syntax highlighting of fenced code blocks.
	Highlight bool

	// Theme is the chroma style used for highlighting.
	// Default: "github".
	Theme string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Include:    []string{"**/*.md"},
		CopyAssets: true,
		Wrapper:    "article",
		Class:      "markdown-body",
		Highlight:  true,
		Theme:      "github",
	}
}

// Stats summarizes a publish run.
type Stats struct {
	// Rendered is the number of markdown files rendered to HTML.
	Rendered int

	// Copied is the number of asset files copied through.
	Copied int

	// Bytes is the total number of bytes written.
	Bytes int64
}

// Publisher renders a markdown tree to static HTML and writes it through
// a Store.
type Publisher struct {
	store Store
	opts  Options
}

// New creates a Publisher. Zero-value option fields get defaults.
func New(store Store, opts Options) *Publisher {
	defaults := DefaultOptions()
	if len(opts.Include) == 0 {
		opts.Include = defaults.Include
	}
	if opts.Wrapper == "" {
		opts.Wrapper = defaults.Wrapper
	}
	if opts.Theme == "" {
		opts.Theme = defaults.Theme
	}
	return &Publisher{store: store, opts: opts}
}

// Publish walks srcDir, renders every markdown file matching the include
// patterns to an .html sibling key, and copies other files through. It
// returns ErrNoMatches when nothing was rendered.
func (p *Publisher) Publish(ctx context.Context, srcDir string) (*Stats, error) {
	stats := &Stats{}

	err := filepath.WalkDir(srcDir, func(fp string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// Hidden files and directories never publish
		if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, fp)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		if matchesAny(p.opts.Exclude, key) {
			return nil
		}

		isMarkdown := strings.EqualFold(filepath.Ext(key), ".md")
		switch {
		case isMarkdown && matchesAny(p.opts.Include, key):
			n, err := p.publishMarkdown(ctx, fp, key)
			if err != nil {
				return err
			}
			stats.Rendered++
			stats.Bytes += n
		case isMarkdown:
			// Markdown not selected for rendering is not an asset
		case p.opts.CopyAssets:
			n, err := p.publishAsset(ctx, fp, key)
			if err != nil {
				return err
			}
			stats.Copied++
			stats.Bytes += n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if stats.Rendered == 0 {
		return nil, ErrNoMatches
	}

	// One shared stylesheet for every rendered page
	css, err := p.stylesheet()
	if err != nil {
		return nil, err
	}
	if err := p.store.Put(ctx, stylesheetKey, "text/css; charset=utf-8", strings.NewReader(css)); err != nil {
		return nil, fmt.Errorf("publish %s: %w", stylesheetKey, err)
	}
	stats.Copied++
	stats.Bytes += int64(len(css))

	return stats, nil
}

// publishMarkdown renders one markdown file to a full page under the
// .html sibling key.
func (p *Publisher) publishMarkdown(ctx context.Context, fp, key string) (int64, error) {
	content, err := os.ReadFile(fp)
	if err != nil {
		return 0, err
	}

	tree, err := vmark.Render(p.renderProps(string(content)))
	if err != nil {
		return 0, fmt.Errorf("render %s: %w", key, err)
	}

	base := filepath.Base(fp)
	page := render.PageData{
		Body:        tree,
		Title:       vmark.ExtractTitle(string(content), strings.TrimSuffix(base, filepath.Ext(base))),
		StyleSheets: []string{relativeStylesheet(key)},
	}

	var buf bytes.Buffer
	if err := render.NewRenderer(render.RendererConfig{}).RenderPage(&buf, page); err != nil {
		return 0, fmt.Errorf("render %s: %w", key, err)
	}

	htmlKey := strings.TrimSuffix(key, filepath.Ext(key)) + ".html"
	if err := p.store.Put(ctx, htmlKey, "text/html; charset=utf-8", bytes.NewReader(buf.Bytes())); err != nil {
		return 0, fmt.Errorf("publish %s: %w", htmlKey, err)
	}
	return int64(buf.Len()), nil
}

// publishAsset copies one non-markdown file through unchanged.
func (p *Publisher) publishAsset(ctx context.Context, fp, key string) (int64, error) {
	f, err := os.Open(fp)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := p.store.Put(ctx, key, contentType, f); err != nil {
		return 0, fmt.Errorf("publish %s: %w", key, err)
	}
	return info.Size(), nil
}

func (p *Publisher) renderProps(content string) vmark.Props {
	props := vmark.Props{
		Content:    content,
		Wrapper:    p.opts.Wrapper,
		Class:      p.opts.Class,
		Unsafe:     p.opts.Unsafe,
		Extensions: []goldmark.Extender{extension.GFM},
	}
	if p.opts.Highlight {
		props.Transforms = []transform.Transform{
			highlight.New(highlight.WithStyle(p.opts.Theme)),
		}
	}
	return props
}

// stylesheet builds the CSS shared by all published pages.
func (p *Publisher) stylesheet() (string, error) {
	css := documentCSS
	if !p.opts.Highlight {
		return css, nil
	}
	chromaCSS, err := highlight.Stylesheet(p.opts.Theme)
	if err != nil {
		return "", err
	}
	return css + chromaCSS, nil
}

// matchesAny reports whether key matches any of the doublestar patterns.
func matchesAny(patterns []string, key string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, key); ok {
			return true
		}
	}
	return false
}

// relativeStylesheet returns the href from a page key to the shared
// stylesheet at the output root.
func relativeStylesheet(key string) string {
	return strings.Repeat("../", strings.Count(key, "/")) + stylesheetKey
}

// documentCSS is the base styling written to the shared stylesheet.
const documentCSS = `body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; line-height: 1.6; }
code { background: #f5f5f5; padding: 2px 6px; border-radius: 3px; }
pre { background: #f5f5f5; padding: 16px; border-radius: 5px; overflow-x: auto; }
pre code { background: none; padding: 0; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px 12px; }
th { background: #f8f8f8; }
blockquote { border-left: 4px solid #ddd; margin-left: 0; padding-left: 16px; color: #555; }
img { max-width: 100%; }
`

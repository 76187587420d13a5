package server

import (
	"bytes"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/vango-dev/vmark"
	"github.com/vango-dev/vmark/pkg/middleware"
	"github.com/vango-dev/vmark/pkg/render"
	"github.com/vango-dev/vmark/pkg/transform"
	"github.com/vango-dev/vmark/pkg/transform/highlight"
	"github.com/vango-dev/vmark/pkg/vdom"
)

// handleRequest dispatches everything the reserved endpoints did not take:
// directories get an index, markdown files get rendered, anything else is
// served as a static asset.
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path
	if urlPath == "/" {
		s.handleIndex(w, r, s.config.Root, "/")
		return
	}

	rel, ok := safeRelPath(urlPath)
	if !ok {
		http.NotFound(w, r)
		return
	}
	filePath := filepath.Join(s.config.Root, filepath.FromSlash(rel))

	if info, err := os.Stat(filePath); err == nil && info.IsDir() {
		// Directory paths end with / so relative links resolve
		if !strings.HasSuffix(urlPath, "/") {
			http.Redirect(w, r, urlPath+"/", http.StatusMovedPermanently)
			return
		}
		s.handleIndex(w, r, filePath, urlPath)
		return
	}

	switch filepath.Ext(filePath) {
	case ".md":
		s.handleMarkdown(w, r, filePath)
	case "":
		// Extension-less URLs resolve to their markdown sibling
		if _, err := os.Stat(filePath + ".md"); err == nil {
			s.handleMarkdown(w, r, filePath+".md")
			return
		}
		http.NotFound(w, r)
	default:
		s.serveStatic(w, r, filePath)
	}
}

// handleMarkdown renders a markdown file into a full HTML page.
func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request, filePath string) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	start := time.Now()
	_, span := middleware.StartStage(r.Context(), "render")
	tree, err := vmark.Render(s.renderProps(string(content)))
	span.End()
	if err != nil {
		middleware.RecordRender("full", time.Since(start), 0, err)
		s.logger.Error("render failed", "file", filePath, "error", err)
		http.Error(w, "Failed to render markdown", http.StatusInternalServerError)
		return
	}

	fallback := strings.TrimSuffix(filepath.Base(filePath), ".md")
	page := render.PageData{
		Body:        tree,
		Title:       vmark.ExtractTitle(string(content), fallback),
		StyleSheets: []string{stylesheetPath},
	}
	if s.reload != nil {
		page.Scripts = append(page.Scripts, render.ScriptTag{Inline: ReloadClientScript})
	}

	var buf bytes.Buffer
	if err := render.NewRenderer(render.RendererConfig{}).RenderPage(&buf, page); err != nil {
		middleware.RecordRender("full", time.Since(start), 0, err)
		s.logger.Error("page render failed", "file", filePath, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	middleware.RecordRender("full", time.Since(start), buf.Len(), nil)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// handleIndex renders a directory listing of markdown files and
// subdirectories as a page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, dirPath, urlPath string) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		s.logger.Error("read dir failed", "dir", dirPath, "error", err)
		http.Error(w, "Failed to read directory", http.StatusInternalServerError)
		return
	}

	var dirs, files []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			dirs = append(dirs, name)
		} else if strings.HasSuffix(strings.ToLower(name), ".md") {
			files = append(files, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	items := make([]*vdom.VNode, 0, len(dirs)+len(files))
	for _, d := range dirs {
		items = append(items, vdom.Li(
			vdom.A(vdom.Href(path.Join(urlPath, d)+"/"), d+"/"),
		))
	}
	for _, f := range files {
		items = append(items, vdom.Li(
			vdom.A(vdom.Href(path.Join(urlPath, f)), f),
		))
	}
	if len(items) == 0 {
		items = append(items, vdom.Li(vdom.Em("No markdown files found")))
	}

	title := "Index of " + urlPath
	body := vdom.Article(
		vdom.Class(s.config.Render.Class),
		vdom.H1(title),
		vdom.Ul(items),
	)

	page := render.PageData{
		Body:        body,
		Title:       title,
		StyleSheets: []string{stylesheetPath},
	}
	if s.reload != nil {
		page.Scripts = append(page.Scripts, render.ScriptTag{Inline: ReloadClientScript})
	}

	var buf bytes.Buffer
	if err := render.NewRenderer(render.RendererConfig{}).RenderPage(&buf, page); err != nil {
		s.logger.Error("index render failed", "dir", dirPath, "error", err)
		http.Error(w, "Failed to render index", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// handleStylesheet serves the page CSS: base document styles plus the
// chroma classes for the configured theme.
func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(baseCSS))

	if !s.config.Render.Highlight {
		return
	}
	css, err := highlight.Stylesheet(s.config.Render.Theme)
	if err != nil {
		s.logger.Warn("stylesheet generation failed", "theme", s.config.Render.Theme, "error", err)
		return
	}
	w.Write([]byte(css))
}

// renderProps builds the render configuration for one request.
func (s *Server) renderProps(content string) vmark.Props {
	props := vmark.Props{
		Content:    content,
		Wrapper:    s.config.Render.Wrapper,
		Class:      s.config.Render.Class,
		Unsafe:     s.config.Render.Unsafe,
		Extensions: []goldmark.Extender{extension.GFM},
	}
	if s.config.Render.Highlight {
		props.Transforms = []transform.Transform{
			highlight.New(highlight.WithStyle(s.config.Render.Theme)),
		}
	}
	return props
}

// baseCSS is the document styling served with every page.
const baseCSS = `body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; line-height: 1.6; }
code { background: #f5f5f5; padding: 2px 6px; border-radius: 3px; }
pre { background: #f5f5f5; padding: 16px; border-radius: 5px; overflow-x: auto; }
pre code { background: none; padding: 0; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px 12px; }
th { background: #f8f8f8; }
blockquote { border-left: 4px solid #ddd; margin-left: 0; padding-left: 16px; color: #555; }
img { max-width: 100%; }
`

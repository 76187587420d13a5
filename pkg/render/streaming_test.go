package render

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vango-dev/vmark/pkg/vdom"
)

func TestStreamingRendererRenderPage(t *testing.T) {
	w := httptest.NewRecorder()

	sr := NewStreamingRenderer(w, RendererConfig{})

	page := PageData{
		Body:  vdom.Div(vdom.Class("markdown-body"), vdom.P(vdom.Text("Streamed Content"))),
		Title: "Streaming Test",
	}

	err := sr.RenderPage(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := w.Body.String()

	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Errorf("should start with DOCTYPE")
	}
	if !strings.Contains(html, "<title>Streaming Test</title>") {
		t.Errorf("should contain title")
	}
	if !strings.Contains(html, "<p>Streamed Content</p>") {
		t.Errorf("should contain body content")
	}
}

func TestStreamingRendererFlushes(t *testing.T) {
	var buf bytes.Buffer
	fw := &FlushableWriter{Writer: &buf}

	sr := &StreamingRenderer{
		Renderer: NewRenderer(RendererConfig{}),
		flusher:  fw,
		w:        fw,
	}

	page := PageData{
		Body:  vdom.Div(vdom.Text("Content")),
		Title: "Flush Test",
	}

	err := sr.RenderPage(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Head, body content, and final flush
	if fw.FlushCount < 3 {
		t.Errorf("expected at least 3 flushes, got %d", fw.FlushCount)
	}
}

func TestStreamingRendererNilFlusher(t *testing.T) {
	var buf bytes.Buffer

	sr := &StreamingRenderer{
		Renderer: NewRenderer(RendererConfig{}),
		flusher:  nil,
		w:        &buf,
	}

	page := PageData{
		Body:  vdom.Div(vdom.Text("No Flush")),
		Title: "No Flush Test",
	}

	// Should not panic even without Flusher
	err := sr.RenderPage(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, "<div>No Flush</div>") {
		t.Errorf("should render content, got %q", html)
	}
}

func TestStreamingRendererLargeDocument(t *testing.T) {
	w := httptest.NewRecorder()

	sr := NewStreamingRenderer(w, RendererConfig{})

	// A long changelog-style list
	var items []any
	for i := 0; i < 100; i++ {
		items = append(items, vdom.Li(vdom.Textf("Release note %d", i)))
	}

	page := PageData{
		Body:  vdom.Ul(items...),
		Title: "Changelog",
	}

	err := sr.RenderPage(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := w.Body.String()

	if !strings.Contains(html, "<li>Release note 0</li>") {
		t.Errorf("should contain first item")
	}
	if !strings.Contains(html, "<li>Release note 99</li>") {
		t.Errorf("should contain last item")
	}
}

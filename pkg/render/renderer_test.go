package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/vmark/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Text("Hello, World!")
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Text("<script>alert('xss')</script>")
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("markdown-body"),
		vdom.H1(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
	)
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `<div class="markdown-body">`) {
		t.Errorf("should contain div with class, got %q", html)
	}
	if !strings.Contains(html, `<h1>Title</h1>`) {
		t.Errorf("should contain h1, got %q", html)
	}
	if !strings.Contains(html, `<p>Content</p>`) {
		t.Errorf("should contain p, got %q", html)
	}
}

func TestRenderVoidElements(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "input",
			node: vdom.Input(vdom.Type("checkbox"), vdom.Name("task")),
			want: `<input name="task" type="checkbox">`,
		},
		{
			name: "br",
			node: vdom.Br(),
			want: `<br>`,
		},
		{
			name: "img",
			node: vdom.Img(vdom.Src("/image.png"), vdom.Alt("test")),
			want: `<img alt="test" src="/image.png">`,
		},
		{
			name: "hr",
			node: vdom.Hr(),
			want: `<hr>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := renderer.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if html != tt.want {
				t.Errorf("got %q, want %q", html, tt.want)
			}
			// Verify no closing tag
			if strings.Contains(html, "</"+tt.name+">") {
				t.Errorf("void element should not have closing tag, got %q", html)
			}
		})
	}
}

func TestRenderBooleanAttributes(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Input(
		vdom.Type("checkbox"),
		vdom.Checked(),
		vdom.Disabled(),
	)
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, " checked") {
		t.Errorf("should contain checked, got %q", html)
	}
	if !strings.Contains(html, " disabled") {
		t.Errorf("should contain disabled, got %q", html)
	}
	if strings.Contains(html, `checked="true"`) {
		t.Errorf("boolean attrs should not have values, got %q", html)
	}
	if strings.Contains(html, `disabled="true"`) {
		t.Errorf("boolean attrs should not have values, got %q", html)
	}
}

func TestRenderFalseBooleanOmitted(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Input(vdom.Type("checkbox"), vdom.Attr{Key: "checked", Value: false})
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "checked") {
		t.Errorf("false boolean attr should be omitted, got %q", html)
	}
}

func TestRenderFragment(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Fragment(
		vdom.Div(vdom.Text("One")),
		vdom.Div(vdom.Text("Two")),
	)
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "<div>One</div><div>Two</div>"
	if html != expected {
		t.Errorf("got %q, want %q", html, expected)
	}
}

func TestRenderRaw(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Raw("<strong>Bold</strong>")
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<strong>Bold</strong>" {
		t.Errorf("raw HTML should not be escaped, got %q", html)
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true, Indent: "  "})

	node := vdom.Div(
		vdom.H1(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
	)
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "\n") {
		t.Errorf("pretty output should contain newlines, got %q", html)
	}
	if !strings.Contains(html, "  <h1>") {
		t.Errorf("pretty output should have indentation, got %q", html)
	}
}

func TestRenderPrettyPreservesPre(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})

	node := vdom.Pre(vdom.Code(vdom.Text("x := 1\ny := 2")))
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<pre><code>x := 1\ny := 2</code></pre>") {
		t.Errorf("pre content should not gain indentation, got %q", html)
	}
}

func TestRenderNilNode(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(nil)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "" {
		t.Errorf("nil node should produce empty string, got %q", html)
	}
}

func TestRenderNestedFragments(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Fragment(
		vdom.Fragment(
			vdom.Span(vdom.Text("A")),
			vdom.Span(vdom.Text("B")),
		),
		vdom.Span(vdom.Text("C")),
	)
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "<span>A</span><span>B</span><span>C</span>"
	if html != expected {
		t.Errorf("got %q, want %q", html, expected)
	}
}

func TestRenderToWriter(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	var buf bytes.Buffer
	node := vdom.Div(vdom.Text("Hello"))

	err := renderer.RenderToWriter(&buf, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf.String() != "<div>Hello</div>" {
		t.Errorf("got %q, want %q", buf.String(), "<div>Hello</div>")
	}
}

func TestRenderPackageLevelHelpers(t *testing.T) {
	html, err := RenderToString(vdom.P(vdom.Text("hi")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<p>hi</p>" {
		t.Errorf("got %q, want %q", html, "<p>hi</p>")
	}

	var buf bytes.Buffer
	if err := RenderToWriter(&buf, vdom.P(vdom.Text("hi"))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "<p>hi</p>" {
		t.Errorf("got %q, want %q", buf.String(), "<p>hi</p>")
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Input(vdom.Value(`test" onclick="alert('xss')`))
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `&quot;`) {
		t.Errorf("quotes should be escaped, got %q", html)
	}
	if !strings.Contains(html, `value="test&quot;`) {
		t.Errorf("should have properly escaped value attribute, got %q", html)
	}
}

func TestRenderCanonicalAttributeNames(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := &vdom.VNode{
		Kind: vdom.KindElement,
		Tag:  "label",
		Props: vdom.Props{
			"className": "hint",
			"htmlFor":   "task-1",
		},
	}
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `class="hint"`) {
		t.Errorf("className should render as class, got %q", html)
	}
	if !strings.Contains(html, `for="task-1"`) {
		t.Errorf("htmlFor should render as for, got %q", html)
	}
}

func TestRenderEmptyElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div()
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<div></div>" {
		t.Errorf("got %q, want %q", html, "<div></div>")
	}
}

func TestRenderDataAttributes(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Data("line", "12"), vdom.Data("source", "readme"))
	html, err := renderer.RenderToString(node)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `data-line="12"`) {
		t.Errorf("should contain data-line, got %q", html)
	}
	if !strings.Contains(html, `data-source="readme"`) {
		t.Errorf("should contain data-source, got %q", html)
	}
}

package sanitize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/vango-dev/vmark/pkg/convert"
)

func clean(t *testing.T, src string, policy *bluemonday.Policy) string {
	t.Helper()
	nodes, err := convert.ParseFragment(src)
	if err != nil {
		t.Fatalf("ParseFragment(%q) error: %v", src, err)
	}
	cleaned, err := Clean(nodes, policy)
	if err != nil {
		t.Fatalf("Clean(%q) error: %v", src, err)
	}
	return renderNodes(t, cleaned)
}

func renderNodes(t *testing.T, nodes []*html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			t.Fatalf("render: %v", err)
		}
	}
	return buf.String()
}

func TestCleanDropsScriptCapableMarkup(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		forbidden string
	}{
		{"script element", `<p>hi</p><script>alert(1)</script>`, "<script"},
		{"event handler", `<a href="/x" onclick="steal()">x</a>`, "onclick"},
		{"javascript url", `<a href="javascript:alert(1)">x</a>`, "javascript:"},
		{"iframe", `<iframe src="https://evil.example"></iframe>`, "<iframe"},
		{"style attribute", `<p style="background:url(x)">x</p>`, "style="},
		{"form", `<form action="/steal"><input name="q"></form>`, "<form"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clean(t, tt.input, nil)
			if strings.Contains(got, tt.forbidden) {
				t.Errorf("Clean(%q) = %q, should not contain %q", tt.input, got, tt.forbidden)
			}
		})
	}
}

func TestCleanKeepsMarkdownOutput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"paragraph", "<p>hello</p>", "<p>hello</p>"},
		{
			"task list checkbox",
			`<ul><li><input checked="" disabled="" type="checkbox"> done</li></ul>`,
			`type="checkbox"`,
		},
		{
			"checked state",
			`<ul><li><input checked="" disabled="" type="checkbox"> done</li></ul>`,
			"checked",
		},
		{
			"cell alignment",
			`<table><thead><tr><th align="center">x</th></tr></thead></table>`,
			`align="center"`,
		},
		{
			"code language class",
			`<pre><code class="language-go">fmt.Println()</code></pre>`,
			`class="language-go"`,
		},
		{"heading anchor", `<h2 id="usage">Usage</h2>`, `id="usage"`},
		{"strikethrough", `<p><del>old</del> <ins>new</ins></p>`, "<del>old</del>"},
		{
			"details",
			`<details open=""><summary>More</summary><p>body</p></details>`,
			"<summary>More</summary>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clean(t, tt.input, nil)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Clean(%q) = %q, want it to contain %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanRejectsBogusAlignment(t *testing.T) {
	got := clean(t, `<table><tbody><tr><td align="evil">x</td></tr></tbody></table>`, nil)
	if strings.Contains(got, "align=") {
		t.Errorf("Clean = %q, alignment value outside left/center/right should be dropped", got)
	}
	if !strings.Contains(got, "<td>x</td>") {
		t.Errorf("Clean = %q, cell itself should survive", got)
	}
}

func TestCleanCustomPolicy(t *testing.T) {
	got := clean(t, `<p><b>bold</b> move</p>`, bluemonday.StrictPolicy())
	if got != "bold move" {
		t.Errorf("Clean with strict policy = %q, want %q", got, "bold move")
	}
}

func TestCleanEmptyFragment(t *testing.T) {
	got, err := Clean(nil, nil)
	if err != nil {
		t.Fatalf("Clean(nil) error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Clean(nil) returned %d nodes, want 0", len(got))
	}
}

package sanitize

import (
	"bytes"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/vango-dev/vmark/pkg/convert"
)

// Attribute value patterns accepted by the default policy.
var (
	checkboxType = regexp.MustCompile(`^checkbox$`)
	cellAlign    = regexp.MustCompile(`(?i)^(left|center|right)$`)
	classTokens  = regexp.MustCompile(`^[\p{L}\p{N}\s_-]+$`)
	anchorID     = regexp.MustCompile(`^[\p{L}\p{N}\-_:.]+$`)
)

var defaultPolicy = buildDefaultPolicy()

// Default returns the policy applied when no custom policy is configured.
//
// It is bluemonday's UGC policy extended so GitHub Flavored Markdown output
// survives: task list checkboxes, table cell alignment, fenced code language
// classes, and generated heading anchors. The returned policy is shared; do
// not modify it.
func Default() *bluemonday.Policy { return defaultPolicy }

func buildDefaultPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Task list items render as disabled checkboxes.
	p.AllowAttrs("type").Matching(checkboxType).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	// Column alignment from pipe table headers.
	p.AllowAttrs("align").Matching(cellAlign).OnElements("th", "td")

	// Fenced code info strings and syntax highlighting spans.
	p.AllowAttrs("class").Matching(classTokens).OnElements("code", "pre", "span", "div")

	// Generated heading anchors.
	p.AllowAttrs("id").Matching(anchorID).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	p.AllowElements("del", "ins", "details", "summary")
	p.AllowAttrs("open").OnElements("details")

	return p
}

// Clean sanitizes a parsed fragment with the given policy. A nil policy
// means Default. The fragment is serialized, run through the policy, and
// reparsed, so the policy sees exactly the markup that would be rendered.
func Clean(nodes []*html.Node, policy *bluemonday.Policy) ([]*html.Node, error) {
	if policy == nil {
		policy = defaultPolicy
	}
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, err
		}
	}
	return convert.ParseFragment(policy.SanitizeReader(&buf).String())
}

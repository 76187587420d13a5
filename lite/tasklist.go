package lite

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewriteTaskItems turns GitHub style task list prefixes into checkbox
// inputs. The lite parser has no task list extension, so "[ ]" and "[x]"
// arrive as literal list item text.
func rewriteTaskItems(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "li" {
		rewriteTaskItem(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteTaskItems(c)
	}
}

func rewriteTaskItem(li *html.Node) {
	text := leadingText(li)
	if text == nil {
		return
	}
	var checked bool
	switch {
	case strings.HasPrefix(text.Data, "[ ] "):
	case strings.HasPrefix(text.Data, "[x] "), strings.HasPrefix(text.Data, "[X] "):
		checked = true
	default:
		return
	}
	// Keep the space after the marker so the label stays separated.
	text.Data = text.Data[3:]
	text.Parent.InsertBefore(checkbox(checked), text)
}

// leadingText finds the text node a list item's content starts with,
// looking through the paragraph that loose lists wrap items in.
func leadingText(li *html.Node) *html.Node {
	c := li.FirstChild
	if c != nil && c.Type == html.ElementNode && c.Data == "p" {
		c = c.FirstChild
	}
	if c != nil && c.Type == html.TextNode {
		return c
	}
	return nil
}

func checkbox(checked bool) *html.Node {
	input := &html.Node{
		Type:     html.ElementNode,
		Data:     "input",
		DataAtom: atom.Input,
		Attr: []html.Attribute{
			{Key: "disabled"},
			{Key: "type", Val: "checkbox"},
		},
	}
	if checked {
		input.Attr = append([]html.Attribute{{Key: "checked"}}, input.Attr...)
	}
	return input
}

// Package vtest provides testing helpers for rendered markdown trees.
//
// The vtest package reduces boilerplate when asserting on rendered output
// by providing render assertions and CSS selector queries.
//
// # Quick Start
//
//	func TestCallout(t *testing.T) {
//	    tree, err := vmark.Render(vmark.Props{Content: "> note"})
//	    if err != nil {
//	        t.Fatalf("unexpected error: %v", err)
//	    }
//	    vtest.ExpectContains(t, tree, "note")
//	}
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, tree, "Welcome")
//	vtest.ExpectNotContains(t, tree, "<script")
//	vtest.ExpectElement(t, tree, "blockquote")
//	vtest.ExpectAttribute(t, tree, "class", "prose")
//
// # Selector Queries
//
// Query rendered output with CSS selectors, e.g. to prove an override
// replaced every occurrence of a tag:
//
//	if n := vtest.Query(t, tree, "em"); n != nil {
//	    t.Error("em elements should all be replaced")
//	}
//	items := vtest.QueryAll(t, tree, "ul > li")
//	text := vtest.Text(items[0])
package vtest

// Package vdom provides the element tree that vmark's markdown pipelines
// produce.
//
// A VNode is an in-memory representation of an HTML element, text run, raw
// HTML span, or fragment. Trees built by the converters are fully
// materialized: every node is concrete, and text nodes carry their decoded
// content without escaping (escaping happens at render time).
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// fragments, and raw HTML. Props holds attributes. Attr is used to build
// Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("markdown-body"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// Override renderers registered with the markdown components receive
// translated props and converted children and return trees built with this
// API.
package vdom

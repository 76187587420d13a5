// Package render serializes VNode trees to HTML.
//
// The render package converts the element trees built by the markdown
// pipelines into HTML strings or streams, handling all aspects of
// producing valid, secure output including:
//
//   - HTML5 compliant element rendering
//   - Proper text and attribute escaping (XSS prevention)
//   - Void element handling (input, br, img, etc.)
//   - Boolean attribute handling (disabled, checked, etc.)
//   - Full page rendering with DOCTYPE, head, body
//
// # Basic Usage
//
// To render a VNode tree to a string:
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// To stream HTML to a writer:
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	err := renderer.RenderToWriter(w, node)
//
// # Full Page Rendering
//
// To render a complete HTML document, as the preview server and the
// export command do:
//
//	page := render.PageData{
//	    Body:  bodyNode,
//	    Title: "README",
//	}
//	err := renderer.RenderPage(w, page)
//
// # Streaming
//
// For large documents, use StreamingRenderer to flush content
// incrementally:
//
//	sr := render.NewStreamingRenderer(w, config)
//	err := sr.RenderPage(page)
//
// # Security
//
// All text content is escaped here, and only here: converted trees carry
// decoded text. Raw HTML can be inserted using KindRaw nodes, but only
// sanitized or explicitly trusted content should reach them.
package render

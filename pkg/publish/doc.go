// Package publish renders a markdown tree to static HTML.
//
// Publishing walks a source directory, renders every markdown file that
// matches the include patterns through the full pipeline, and writes the
// result through a Store. Each page gets an .html key next to its source
// (docs/guide.md publishes as docs/guide.html), non-markdown files copy
// through unchanged, and a single shared stylesheet lands at the output
// root.
//
// # Stores
//
// Two Store backends ship with the package:
//
//   - DiskStore writes into a local directory
//   - S3Store uploads to an S3 bucket through aws-sdk-go-v2
//
// Implement Store to publish anywhere else; a key is a clean relative
// slash path and each Put carries the content type.
//
// # Usage
//
//	p := publish.New(publish.NewDiskStore("dist"), publish.DefaultOptions())
//	stats, err := p.Publish(ctx, "./docs")
//	if errors.Is(err, publish.ErrNoMatches) {
//	    // nothing to publish
//	}
//
// Output is relocatable: pages reference the stylesheet relatively, so a
// published tree works from any mount point or bucket prefix.
package publish

// Package server provides the markdown preview server.
//
// The server renders markdown files from a root directory on demand,
// serves everything else as static assets, and pushes live reload
// messages to connected browsers when files on disk change.
//
// # Request Handling
//
// Every request path is sanitized and resolved against the root:
//
//   - "/" and directory paths render an index of markdown files
//   - paths ending in .md are rendered to a full HTML page
//   - extension-less paths resolve to their .md sibling when one exists
//   - anything else is served as a static file
//
// Rendering goes through the full pipeline (GitHub Flavored Markdown,
// sanitization, syntax highlighting) with options taken from the server
// configuration.
//
// # Live Reload
//
// When enabled, a Watcher monitors the root tree through fsnotify and a
// ReloadHub broadcasts to browsers over WebSocket. CSS changes swap
// stylesheets in place; everything else triggers a full page reload. The
// client script is injected into each rendered page.
//
// # Example Usage
//
//	srv, err := server.New(&server.Config{
//	    Root: "./docs",
//	    Port: 3000,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until SIGINT or SIGTERM and then shuts down gracefully. For
// embedding in a larger application, Server implements http.Handler.
package server

package server

import (
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// RenderOptions control how the preview server renders markdown files.
type RenderOptions struct {
	// Wrapper is the tag of the element page content is wrapped in.
	// Default: "article".
	Wrapper string

	// Class is applied to the wrapper element.
	// Default: "markdown-body".
	Class string

	// Unsafe disables sanitization of the rendered markdown.
	Unsafe bool

	// Highlight enables syntax highlighting of fenced code blocks.
	Highlight bool

	// Theme is the chroma style used for highlighting.
	// Default: "github".
	Theme string
}

// Config holds configuration for the preview server.
type Config struct {
	// Root is the directory of markdown files to serve.
	// Default: ".".
	Root string

	// Host is the host to bind to.
	// Default: "localhost".
	Host string

	// Port is the port to listen on.
	// Default: 3000.
	Port int

	// LiveReload enables the file watcher and reload-on-save.
	LiveReload bool

	// Metrics mounts Prometheus middleware and a /metrics endpoint.
	Metrics bool

	// Render controls markdown rendering.
	Render RenderOptions

	// WatchIgnore contains doublestar patterns excluded from watching,
	// matched against paths relative to Root.
	WatchIgnore []string

	// Debounce is how long the watcher coalesces bursts of file events
	// before broadcasting a reload.
	// Default: 100ms.
	Debounce time.Duration

	// CheckOrigin is called to validate the reload WebSocket origin.
	// Default: same-origin.
	CheckOrigin func(r *http.Request) bool

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading of request headers.
	// Default: 10 seconds.
	ReadHeaderTimeout time.Duration

	// IdleTimeout is the keep-alive idle limit.
	// Default: 2 minutes.
	IdleTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
//
// SECURITY: CheckOrigin enforces same-origin by default so other sites
// cannot attach to the reload socket.
func DefaultConfig() *Config {
	return &Config{
		Root:       ".",
		Host:       "localhost",
		Port:       3000,
		LiveReload: true,
		Render: RenderOptions{
			Wrapper:   "article",
			Class:     "markdown-body",
			Highlight: true,
			Theme:     "github",
		},
		Debounce:          100 * time.Millisecond,
		CheckOrigin:       SameOriginCheck,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// Address returns the listen address.
func (c *Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// URL returns the base URL of the preview server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// SameOriginCheck validates that the WebSocket request origin matches the
// host. This is the secure default for CheckOrigin.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (same-origin request or a non-browser client)
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vmark/internal/config"
	vmarkerrors "github.com/vango-dev/vmark/internal/errors"
	"github.com/vango-dev/vmark/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		host         string
		port         int
		noLiveReload bool
		metrics      bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Start the markdown preview server",
		Long: `Start the preview server for a directory of markdown files.

The server renders markdown on every request, so edits show up on
refresh, and with live reload enabled connected browsers refresh
themselves when files change.

Settings come from vmark.json in the served directory when present;
flags override it.

Examples:
  vmark serve
  vmark serve ./docs --port=8080
  vmark serve --no-livereload --metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runServe(dir, host, port, noLiveReload, metrics)
		},
	}

	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from vmark.json)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from vmark.json)")
	cmd.Flags().BoolVar(&noLiveReload, "no-livereload", false, "Disable the file watcher and reload socket")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics at /metrics")

	return cmd
}

func runServe(dir, host string, port int, noLiveReload, metrics bool) error {
	// Check the directory exists
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		errorMsg("Directory not found: %s", dir)
		info("Pass the directory that holds your markdown files.")
		return vmarkerrors.New("E202").WithDetail("Got " + dir).Wrap(err)
	}

	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if host != "" {
		cfg.Server.Host = host
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if noLiveReload {
		cfg.Server.LiveReload = false
	}
	if metrics {
		cfg.Server.Metrics = true
	}

	srv, err := server.New(&server.Config{
		Root:       dir,
		Host:       cfg.Server.Host,
		Port:       cfg.Server.Port,
		LiveReload: cfg.Server.LiveReload,
		Metrics:    cfg.Server.Metrics,
		Render: server.RenderOptions{
			Wrapper:   cfg.Render.Wrapper,
			Class:     cfg.Render.Class,
			Unsafe:    cfg.Render.Unsafe,
			Highlight: cfg.Render.Highlight,
			Theme:     cfg.Render.Theme,
		},
		WatchIgnore: cfg.Watch.Ignore,
		Debounce:    cfg.DebounceInterval(),
	})
	if err != nil {
		return err
	}

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	info("Serving %s at %s", dir, cfg.URL())
	if cfg.Server.LiveReload {
		info("Live reload enabled")
	}
	if cfg.Server.Metrics {
		info("Metrics at %s/metrics", cfg.URL())
	}
	info("Press Ctrl+C to stop")
	fmt.Println()

	return srv.Run()
}

// loadConfig reads vmark.json from dir, falling back to defaults when the
// file does not exist.
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return config.New(), nil
	}
	return nil, err
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vmarkerrors "github.com/vango-dev/vmark/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬  ┬┌┬┐┌─┐┬─┐┬┌─
  └┐┌┘│││├─┤├┬┘├┴┐
   └┘ ┴ ┴┴ ┴┴└─┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "vmark",
		Short: "Render markdown into sanitized HTML",
		Long: `vmark renders markdown into sanitized HTML.

Markdown goes through a configurable pipeline: parse, tree transforms
(syntax highlighting, style resolution), sanitize, convert. The same
pipeline powers one-shot rendering, a live-reloading preview server,
and static export to disk or S3.

  • GitHub Flavored Markdown
  • Allow-list sanitization on by default
  • Syntax highlighting via chroma
  • Preview server with live reload
  • Static export to a directory or an S3 bucket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands
	rootCmd.AddCommand(
		renderCmd(),
		serveCmd(),
		exportCmd(),
		versionCmd(),
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		vmarkerrors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the vmark ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}

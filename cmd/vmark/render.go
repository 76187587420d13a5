package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/vango-dev/vmark"
	"github.com/vango-dev/vmark/internal/errors"
	"github.com/vango-dev/vmark/lite"
	"github.com/vango-dev/vmark/pkg/render"
	"github.com/vango-dev/vmark/pkg/transform"
	"github.com/vango-dev/vmark/pkg/transform/highlight"
	"github.com/vango-dev/vmark/pkg/vdom"
)

type renderParams struct {
	file      string
	wrapper   string
	class     string
	unsafe    bool
	lite      bool
	highlight bool
	theme     string
	fullPage  bool
	output    string
}

func renderCmd() *cobra.Command {
	params := renderParams{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown to HTML",
		Long: `Render one markdown file to HTML.

Reads the file argument, or stdin when no file is given. By default the
output is an HTML fragment wrapped in the configured element; --full-page
emits a complete document with a title taken from the first heading.

The --lite flag switches to the lite pipeline: a fixed feature set with
no transform hooks, so it cannot be combined with --highlight.

Examples:
  vmark render README.md
  cat README.md | vmark render --wrapper=section
  vmark render README.md --highlight --full-page -o readme.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				params.file = args[0]
			}
			return runRender(params)
		},
	}

	cmd.Flags().StringVar(&params.wrapper, "wrapper", "article", "Wrapper element tag")
	cmd.Flags().StringVar(&params.class, "class", "markdown-body", "Class applied to the wrapper")
	cmd.Flags().BoolVar(&params.unsafe, "unsafe", false, "Skip sanitization of the output")
	cmd.Flags().BoolVar(&params.lite, "lite", false, "Use the lite pipeline (fixed feature set)")
	cmd.Flags().BoolVar(&params.highlight, "highlight", false, "Highlight fenced code blocks")
	cmd.Flags().StringVar(&params.theme, "theme", "github", "Chroma style for --highlight")
	cmd.Flags().BoolVar(&params.fullPage, "full-page", false, "Emit a complete HTML document")
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func runRender(params renderParams) error {
	if params.lite && params.highlight {
		return errors.New("E402").
			WithDetail("--highlight runs as a tree transform, which the lite pipeline does not support").
			WithSuggestion("Drop --lite, or highlight in a separate step.")
	}

	content, err := readSource(params.file)
	if err != nil {
		return err
	}

	tree, err := renderTree(params, content)
	if err != nil {
		return err
	}

	var out string
	if params.fullPage {
		out, err = renderFullPage(params, content, tree)
	} else {
		out, err = render.RenderToString(tree)
	}
	if err != nil {
		return err
	}

	if params.output == "" {
		_, err := io.WriteString(os.Stdout, out+"\n")
		return err
	}
	if err := os.WriteFile(params.output, []byte(out+"\n"), 0o644); err != nil {
		return err
	}
	success("Wrote %s", params.output)
	return nil
}

// readSource reads the markdown input from a file or stdin.
func readSource(file string) (string, error) {
	if file == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", errors.New("E401").
			WithDetail("Got " + file).
			WithSuggestion("Check the path, or pipe markdown on stdin.").
			Wrap(err)
	}
	return string(data), nil
}

// renderTree runs the selected pipeline.
func renderTree(params renderParams, content string) (*vdom.VNode, error) {
	if params.lite {
		return lite.Render(lite.Props{
			Content: content,
			Wrapper: params.wrapper,
			Class:   params.class,
			Unsafe:  params.unsafe,
		})
	}

	props := vmark.Props{
		Content:    content,
		Wrapper:    params.wrapper,
		Class:      params.class,
		Unsafe:     params.unsafe,
		Extensions: []goldmark.Extender{extension.GFM},
	}
	if params.highlight {
		props.Transforms = []transform.Transform{
			highlight.New(highlight.WithStyle(params.theme)),
		}
	}
	return vmark.Render(props)
}

// renderFullPage wraps the tree in a complete HTML document.
func renderFullPage(params renderParams, content string, tree *vdom.VNode) (string, error) {
	fallback := "Markdown"
	if params.file != "" {
		base := filepath.Base(params.file)
		fallback = strings.TrimSuffix(base, filepath.Ext(base))
	}

	page := render.PageData{
		Body:  tree,
		Title: vmark.ExtractTitle(content, fallback),
	}
	if params.highlight {
		css, err := highlight.Stylesheet(params.theme)
		if err != nil {
			return "", err
		}
		page.Styles = []string{css}
	}

	var buf bytes.Buffer
	if err := render.NewRenderer(render.RendererConfig{}).RenderPage(&buf, page); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vmark/internal/config"
	vmarkerrors "github.com/vango-dev/vmark/internal/errors"
	"github.com/vango-dev/vmark/pkg/publish"
)

func exportCmd() *cobra.Command {
	var (
		out      string
		s3Bucket string
		s3Prefix string
		s3Region string
		include  []string
		exclude  []string
	)

	cmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "Render a markdown tree to static HTML",
		Long: `Render every markdown file in a directory to static HTML.

Pages publish next to their sources (docs/guide.md becomes
docs/guide.html), assets copy through, and a shared stylesheet lands at
the output root. The destination is a local directory, or an S3 bucket
when --s3-bucket is set.

S3 credentials come from the usual AWS sources (environment, shared
config, instance role).

Settings come from vmark.json in the source directory when present;
flags override it.

Examples:
  vmark export ./docs
  vmark export ./docs --out=public
  vmark export ./docs --s3-bucket=my-site --s3-prefix=docs
  vmark export --include='guides/**/*.md' --exclude='**/draft-*'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runExport(dir, out, s3Bucket, s3Prefix, s3Region, include, exclude)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (default from vmark.json)")
	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "Publish to this S3 bucket instead of disk")
	cmd.Flags().StringVar(&s3Prefix, "s3-prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&s3Region, "s3-region", "", "Bucket region (default from AWS config)")
	cmd.Flags().StringSliceVar(&include, "include", nil, "Patterns of markdown files to render")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Patterns to skip entirely")

	return cmd
}

func runExport(dir, out, s3Bucket, s3Prefix, s3Region string, include, exclude []string) error {
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if out != "" {
		cfg.Publish.Out = out
	}
	if s3Bucket != "" {
		cfg.Publish.S3Bucket = s3Bucket
	}
	if s3Prefix != "" {
		cfg.Publish.S3Prefix = s3Prefix
	}
	if s3Region != "" {
		cfg.Publish.S3Region = s3Region
	}
	if len(include) > 0 {
		cfg.Publish.Include = include
	}
	if len(exclude) > 0 {
		cfg.Publish.Exclude = exclude
	}

	toS3 := cfg.Publish.S3Bucket != ""
	if !toS3 && cfg.Publish.S3Prefix != "" {
		warn("--s3-prefix has no effect without --s3-bucket")
	}

	// Handle signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var store publish.Store
	var dest string
	if toS3 {
		store, err = newS3Store(ctx, cfg)
		if err != nil {
			return err
		}
		dest = "s3://" + cfg.Publish.S3Bucket
		if cfg.Publish.S3Prefix != "" {
			dest += "/" + strings.Trim(cfg.Publish.S3Prefix, "/")
		}
	} else {
		if out != "" {
			dest = out
		} else {
			dest = cfg.OutPath()
		}
		store = publish.NewDiskStore(dest)
	}

	opts := publish.Options{
		Include:    cfg.Publish.Include,
		Exclude:    cfg.Publish.Exclude,
		CopyAssets: true,
		Wrapper:    cfg.Render.Wrapper,
		Class:      cfg.Render.Class,
		Unsafe:     cfg.Render.Unsafe,
		Highlight:  cfg.Render.Highlight,
		Theme:      cfg.Render.Theme,
	}

	fmt.Println("  Exporting...")
	fmt.Println()

	stats, err := publish.New(store, opts).Publish(ctx, dir)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			return err
		case errors.Is(err, publish.ErrNoMatches):
			return vmarkerrors.New("E303").
				WithDetail("Include patterns: " + strings.Join(opts.Include, ", ")).
				WithSuggestion("Check the source directory and the include patterns.").
				Wrap(err)
		case toS3:
			return vmarkerrors.New("E302").
				WithDetail("Bucket " + cfg.Publish.S3Bucket).
				Wrap(err)
		default:
			return vmarkerrors.New("E301").
				WithDetail("Got " + dest).
				Wrap(err)
		}
	}

	success("Rendered %d pages, copied %d files (%s)", stats.Rendered, stats.Copied, formatBytes(stats.Bytes))
	info("Destination: %s", dest)
	return nil
}

// newS3Store builds the S3 publish store from the AWS default config
// chain.
func newS3Store(ctx context.Context, cfg *config.Config) (publish.Store, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Publish.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Publish.S3Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, vmarkerrors.New("E302").
			WithDetail("AWS configuration could not be loaded").
			Wrap(err)
	}
	return publish.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Publish.S3Bucket, cfg.Publish.S3Prefix), nil
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/apkgraph/apkgraph/pkg/deps"
	"github.com/apkgraph/apkgraph/pkg/deps/apkcmd"
	"github.com/apkgraph/apkgraph/pkg/deps/apkindex"
	pkgio "github.com/apkgraph/apkgraph/pkg/io"
)

// resolveOpts holds the command-line flags for the resolve command.
// These options select the dependency source and control crawl limits.
type resolveOpts struct {
	index    string // APKINDEX file path (static source)
	live     bool   // query apk directly instead of an index file
	maxDepth int    // maximum dependency tree depth
	maxNodes int    // maximum total packages to expand
	noCache  bool   // bypass the lookup cache (live source only)
	output   string // output file path (stdout if empty)
}

// resolveOptions converts resolveOpts into deps.Options for the resolver.
// Transitive lookup failures are surfaced as warnings through the logger.
func (o *resolveOpts) resolveOptions(ctx context.Context) deps.Options {
	logger := loggerFromContext(ctx)
	return deps.Options{
		MaxDepth: o.maxDepth,
		MaxNodes: o.maxNodes,
		Logger:   func(msg string, args ...any) { logger.Warnf(msg, args...) },
	}
}

// newResolveCmd creates the resolve command.
// It computes the transitive dependency graph of a package from either a
// static APKINDEX file (--index) or live apk queries (--live) and writes the
// graph as JSON.
//
// Default options:
//   - maxDepth: 50 levels of transitive dependencies
//   - maxNodes: 5000 packages maximum
func newResolveCmd() *cobra.Command {
	opts := resolveOpts{maxDepth: deps.DefaultMaxDepth, maxNodes: deps.DefaultMaxNodes}

	cmd := &cobra.Command{
		Use:   "resolve <package>",
		Short: "Resolve the transitive dependency graph of a package",
		Long: `Resolve the transitive dependency graph of a package.

The source is either a static APKINDEX file or the local apk tool.

Examples:
  apkgraph resolve --index APKINDEX curl            # Static index file
  apkgraph resolve --live curl                      # Live apk queries
  apkgraph resolve --index APKINDEX curl -o c.json  # Write to file`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			src, closeSrc, err := newSource(c.Context(), &opts)
			if err != nil {
				return err
			}
			defer closeSrc()
			return runResolve(c.Context(), src, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.index, "index", "i", "", "APKINDEX file to resolve against")
	cmd.Flags().BoolVar(&opts.live, "live", false, "query apk directly instead of an index file")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", opts.maxDepth, "maximum dependency depth")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", opts.maxNodes, "maximum packages to expand")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the lookup cache")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// newSource builds the dependency source selected by flags and config.
// The returned close function releases cache resources for the live source;
// for the static source it is a no-op.
func newSource(ctx context.Context, opts *resolveOpts) (deps.Source, func() error, error) {
	cfg := configFromContext(ctx)
	noop := func() error { return nil }

	if opts.live {
		if opts.index != "" {
			return nil, nil, fmt.Errorf("--index and --live are mutually exclusive")
		}
		c, err := newCache(ctx, opts.noCache)
		if err != nil {
			return nil, nil, err
		}
		toolOpts := []apkcmd.Option{apkcmd.WithCache(c, 0)}
		if len(cfg.Apk.Command) > 0 {
			toolOpts = append(toolOpts, apkcmd.WithCommand(cfg.Apk.Command))
		}
		return apkcmd.New(toolOpts...), c.Close, nil
	}

	path := opts.index
	if path == "" {
		path = cfg.Index.Path
	}
	if path == "" {
		return nil, nil, fmt.Errorf("no source: pass --index FILE or --live (or set index.path in the config)")
	}
	idx, err := apkindex.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return idx, noop, nil
}

// runResolve resolves pkg against src and writes the resulting graph as JSON
// to opts.output (or stdout). A partial result still succeeds; the failed
// packages are reported as warnings.
func runResolve(ctx context.Context, src deps.Source, pkg string, opts *resolveOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Resolving %s", pkg)

	prog := newProgress(logger)
	res, err := deps.Resolve(ctx, src, pkg, opts.resolveOptions(ctx))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d packages with %d dependencies", res.Graph.NodeCount(), res.Graph.EdgeCount()))

	if res.Partial {
		printWarning("Incomplete graph: %d package(s) could not be looked up", len(res.Failed))
		for _, name := range res.Failed {
			printDetail("%s", name)
		}
	}
	if res.Truncated {
		printWarning("Graph truncated by crawl limits; raise --max-depth/--max-nodes for the full closure")
	}

	if err := writeGraph(ctx, res, opts.output); err != nil {
		return err
	}
	if opts.output != "" {
		printStats(res.Graph.NodeCount(), res.Graph.EdgeCount(), res.Partial)
		printNextStep("Render it", fmt.Sprintf("apkgraph render %s -f svg", opts.output))
	}
	return nil
}

// writeGraph serializes the resolved graph as JSON to the specified path
// (or stdout if empty).
func writeGraph(ctx context.Context, res *deps.Result, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := pkgio.WriteJSON(res.Graph, out); err != nil {
		return err
	}
	if path != "" {
		loggerFromContext(ctx).Infof("Wrote graph to %s", path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

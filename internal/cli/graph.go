package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apkgraph/apkgraph/pkg/deps"
	"github.com/apkgraph/apkgraph/pkg/deps/apkindex"
	"github.com/apkgraph/apkgraph/pkg/render/plantuml"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	index    string // APKINDEX file path
	pkg      string // root package name
	renderer string // path to plantuml.jar
	output   string // output PNG path
	maxDepth int    // maximum dependency tree depth
	maxNodes int    // maximum total packages to expand
}

// newGraphCmd creates the graph command, the one-shot pipeline from APKINDEX
// to rendered PNG: resolve the package, emit PlantUML markup, invoke the
// external renderer, and move the artifact into place.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{maxDepth: deps.DefaultMaxDepth, maxNodes: deps.DefaultMaxNodes}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Resolve a package and render its dependency graph to PNG",
		Long: `Resolve a package and render its dependency graph to PNG in one step.

The external PlantUML renderer (java -jar plantuml.jar) produces the image.
Use the resolve and render commands separately for other formats.

Example:
  apkgraph graph -i APKINDEX -p curl -r plantuml.jar -o curl.png`,
		RunE: func(c *cobra.Command, args []string) error {
			return runGraph(c.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.index, "index", "i", "", "APKINDEX file to resolve against")
	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "package to graph")
	cmd.Flags().StringVarP(&opts.renderer, "renderer", "r", "", "path to plantuml.jar")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG file")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", opts.maxDepth, "maximum dependency depth")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", opts.maxNodes, "maximum packages to expand")
	_ = cmd.MarkFlagRequired("package")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// runGraph resolves opts.pkg against the index, renders the PlantUML markup
// through the external renderer, and reports the written file.
func runGraph(ctx context.Context, opts *graphOpts) error {
	cfg := configFromContext(ctx)
	logger := loggerFromContext(ctx)

	indexPath := opts.index
	if indexPath == "" {
		indexPath = cfg.Index.Path
	}
	if indexPath == "" {
		return fmt.Errorf("no index: pass --index FILE (or set index.path in the config)")
	}
	jarPath := opts.renderer
	if jarPath == "" {
		jarPath = cfg.PlantUML.Jar
	}
	if jarPath == "" {
		return fmt.Errorf("no renderer: pass --renderer plantuml.jar (or set plantuml.jar in the config)")
	}

	idx, err := apkindex.Load(indexPath)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, err := deps.Resolve(ctx, idx, opts.pkg, deps.Options{
		MaxDepth: opts.maxDepth,
		MaxNodes: opts.maxNodes,
		Logger:   func(msg string, args ...any) { logger.Warnf(msg, args...) },
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d packages with %d dependencies", res.Graph.NodeCount(), res.Graph.EdgeCount()))

	if res.Partial {
		printWarning("Incomplete graph: %s", strings.Join(res.Failed, ", "))
	}
	if res.Truncated {
		printWarning("Graph truncated by crawl limits; raise --max-depth/--max-nodes for the full closure")
	}

	markup := plantuml.ToPlantUML(res.Graph)

	var runnerOpts []plantuml.Option
	if cfg.PlantUML.Java != "" {
		runnerOpts = append(runnerOpts, plantuml.WithJava(cfg.PlantUML.Java))
	}
	runner := plantuml.NewRunner(jarPath, runnerOpts...)

	spin := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.pkg))
	spin.Start()
	err = runner.Render(ctx, markup, opts.output)
	if err != nil {
		if spin.Cancelled() {
			spin.Stop()
			return err
		}
		spin.StopWithError(fmt.Sprintf("Rendering failed: %v", err))
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("Rendered %s", opts.pkg))

	printFile(opts.output)
	printStats(res.Graph.NodeCount(), res.Graph.EdgeCount(), res.Partial)
	return nil
}

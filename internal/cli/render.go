package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apkgraph/apkgraph/pkg/graph"
	pkgio "github.com/apkgraph/apkgraph/pkg/io"
	"github.com/apkgraph/apkgraph/pkg/render/nodelink"
	"github.com/apkgraph/apkgraph/pkg/render/plantuml"
)

const (
	formatPUML = "puml" // PlantUML markup
	formatDOT  = "dot"  // Graphviz DOT markup
	formatSVG  = "svg"  // rendered SVG (in-process graphviz)
	formatPNG  = "png"  // rendered PNG (in-process graphviz)
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: puml, dot, svg, png
	detailed bool     // include node metadata in DOT labels
}

// newRenderCmd creates the render command for generating visualizations from
// a previously resolved graph file.
//
// PlantUML and DOT are emitted as text; SVG and PNG are rendered in-process
// via graphviz. For the external PlantUML pipeline, see the graph command.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a dependency graph file",
		Long: `Render a resolved dependency graph to one or more formats.

Examples:
  apkgraph render curl.json                      # PlantUML to stdout
  apkgraph render curl.json -f svg -o curl.svg   # In-process SVG
  apkgraph render curl.json -f puml,dot,png      # Multiple formats`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): puml (default), dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include node metadata in DOT labels")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["puml"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatPUML}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatPUML: true, formatDOT: true, formatSVG: true, formatPNG: true}

// validateFormats checks that all requested formats are valid.
// It returns an error if any format is not in validFormats.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'puml', 'dot', 'svg', or 'png')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.puml, .svg, etc.), it strips that extension.
// This is used when generating multiple files (e.g., curl.puml, curl.svg).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the graph from input and renders it to the requested formats.
// A single format writes to opts.output (or stdout); multiple formats derive
// file names from the base path.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	g, err := pkgio.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d packages, %d dependencies", g.NodeCount(), g.EdgeCount())

	if len(opts.formats) == 1 {
		return renderSingle(ctx, g, opts.formats[0], opts.output, opts)
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if err := renderSingle(ctx, g, format, path, opts); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
	}
	return nil
}

// renderSingle renders one format and writes it to path (or stdout if empty).
func renderSingle(ctx context.Context, g *graph.Graph, format, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	data, err := renderGraph(g, format, opts)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}

	if path != "" {
		logger.Infof("Generated %s", path)
	}
	return nil
}

// renderGraph dispatches to the appropriate renderer based on format.
func renderGraph(g *graph.Graph, format string, opts *renderOpts) ([]byte, error) {
	switch format {
	case formatPUML:
		return []byte(plantuml.ToPlantUML(g)), nil
	case formatDOT:
		return []byte(nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed})), nil
	case formatSVG:
		return nodelink.RenderSVG(nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed}))
	case formatPNG:
		return nodelink.RenderPNG(nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed}))
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

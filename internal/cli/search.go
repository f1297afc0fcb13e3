package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/apkgraph/apkgraph/pkg/deps"
	"github.com/apkgraph/apkgraph/pkg/deps/apkindex"
)

// searchOpts holds the command-line flags for the search command.
type searchOpts struct {
	index       string // APKINDEX file path
	interactive bool   // launch the interactive picker
}

// newSearchCmd creates the search command for finding packages in an index.
// Without --interactive it lists matches; with it, an interactive picker lets
// the user select a package and resolves it immediately.
func newSearchCmd() *cobra.Command {
	var opts searchOpts

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search packages in an APKINDEX",
		Long: `Search packages in an APKINDEX by substring.

Examples:
  apkgraph search --index APKINDEX ssl        # List matches
  apkgraph search --index APKINDEX -I ssl     # Pick one and resolve it
  apkgraph search --index APKINDEX            # List every package`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			term := ""
			if len(args) > 0 {
				term = args[0]
			}
			return runSearch(c.Context(), term, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.index, "index", "i", "", "APKINDEX file to search")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "I", false, "pick a package interactively and resolve it")

	return cmd
}

// runSearch lists or interactively picks packages matching term.
func runSearch(ctx context.Context, term string, opts *searchOpts) error {
	cfg := configFromContext(ctx)

	path := opts.index
	if path == "" {
		path = cfg.Index.Path
	}
	if path == "" {
		return fmt.Errorf("no index: pass --index FILE (or set index.path in the config)")
	}

	idx, err := apkindex.Load(path)
	if err != nil {
		return err
	}

	matches := idx.Search(term)
	if len(matches) == 0 {
		printInfo("No packages matching %q", term)
		return nil
	}

	if !opts.interactive {
		for _, name := range matches {
			specs, _ := idx.Lookup(ctx, name)
			fmt.Printf("%s %s\n", styleValue.Render(name), styleDim.Render(fmt.Sprintf("(%d direct)", len(specs))))
		}
		printDetail("%d package(s)", len(matches))
		return nil
	}

	model := newPackageListModel(idx, matches)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	picked := final.(packageListModel).selected
	if picked == "" {
		return nil // dismissed without choosing
	}

	return resolvePicked(ctx, idx, picked)
}

// resolvePicked resolves the selected package and prints a summary.
func resolvePicked(ctx context.Context, idx *apkindex.Index, pkg string) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	res, err := deps.Resolve(ctx, idx, pkg, deps.Options{
		Logger: func(msg string, args ...any) { logger.Warnf(msg, args...) },
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %s", pkg))

	printSuccess("%s", styleHighlight.Render(pkg))
	printStats(res.Graph.NodeCount(), res.Graph.EdgeCount(), res.Partial)
	printNextStep("Save the graph", fmt.Sprintf("apkgraph resolve --index <file> %s -o %s.json", pkg, pkg))
	return nil
}

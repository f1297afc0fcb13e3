package deps

import (
	"context"

	"github.com/apkgraph/apkgraph/pkg/errors"
	"github.com/apkgraph/apkgraph/pkg/graph"
)

// Result holds the outcome of one resolution run.
type Result struct {
	// Graph contains the root plus every transitively reachable package,
	// with one edge per direct dependency pair.
	Graph *graph.Graph

	// Root is the canonical identifier of the requested package.
	Root string

	// Partial reports whether any transitive lookup failed and was degraded
	// to a leaf. Failed lists the affected packages in discovery order.
	Partial bool
	Failed  []string

	// Truncated reports whether the MaxDepth or MaxNodes limit stopped the
	// traversal before the closure was complete. Packages past the limit
	// stay in the graph as unexpanded leaves.
	Truncated bool
}

// Resolve computes the transitive dependency closure of root against src.
//
// The traversal is depth-first over an explicit work stack. Each package is
// expanded at most once: a visited set short-circuits cycles and diamond
// dependencies. Dependencies are recorded in the order the Source returns
// them, and duplicate specifiers that normalize to the same identifier
// contribute a single edge, so the output is deterministic for a given
// source.
//
// A lookup failure for root itself aborts with PACKAGE_NOT_FOUND. Lookup
// failures for transitively discovered packages degrade to "no further
// dependencies": the package remains in the graph as a leaf, a warning goes
// to opts.Logger, and Result.Partial is set.
//
// Packages discovered at depth MaxDepth, or once MaxNodes packages are in
// the graph, are likewise kept as unexpanded leaves; the first such cut
// logs a warning and sets Result.Truncated.
func Resolve(ctx context.Context, src Source, root string, opts Options) (*Result, error) {
	opts = opts.WithDefaults()
	root = Normalize(root)
	if root == "" {
		return nil, errors.New(errors.ErrCodeInvalidPackage, "package name cannot be empty")
	}

	rootDeps, err := src.Lookup(ctx, root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePackageNotFound, err, "package %q", root)
	}

	res := &Result{
		Graph: graph.New(graph.Metadata{"root": root}),
		Root:  root,
	}
	res.Graph.AddNode(graph.Node{ID: root})

	type frame struct {
		name  string
		depth int
	}

	visited := map[string]bool{root: true}
	stack := []frame{}

	expand := func(f frame, specs []string) {
		next := f.depth + 1
		for _, dep := range NormalizeAll(specs) {
			res.Graph.AddEdge(graph.Edge{From: f.name, To: dep})
			if visited[dep] {
				continue
			}
			visited[dep] = true
			if next < opts.MaxDepth && res.Graph.NodeCount() <= opts.MaxNodes {
				stack = append(stack, frame{name: dep, depth: next})
				continue
			}
			if !res.Truncated {
				opts.Logger("resolution limit reached, leaving %s unexpanded", dep)
			}
			res.Truncated = true
		}
	}

	expand(frame{name: root}, rootDeps)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeLookupFailed, err, "resolution cancelled")
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		specs, err := src.Lookup(ctx, f.name)
		if err != nil {
			// Incomplete data, not a failed run: the package stays as a leaf.
			opts.Logger("lookup failed, treating %s as leaf: %v", f.name, err)
			res.Partial = true
			res.Failed = append(res.Failed, f.name)
			continue
		}
		expand(f, specs)
	}

	if res.Partial {
		res.Graph.Meta()["partial"] = true
	}
	if res.Truncated {
		res.Graph.Meta()["truncated"] = true
	}
	return res, nil
}

// Package plantuml exports dependency graphs as PlantUML markup and drives
// an external PlantUML renderer to turn the markup into a PNG image.
//
// The markup side is pure: [ToPlantUML] walks the graph's nodes and edges in
// insertion order and produces deterministic text. The process side is
// isolated in [Runner], which owns the temp-file discipline around the
// renderer: write the description to a scratch directory, invoke the
// renderer, locate the produced image by extension, relocate it to the
// requested path, and clean up the scratch space on every exit path.
package plantuml

import (
	"fmt"
	"strings"

	"github.com/apkgraph/apkgraph/pkg/graph"
)

// ToPlantUML converts a graph to PlantUML markup.
//
// Every edge becomes a directed connection between quoted node anchors. The
// root package (graph metadata key "root") always gets a self-referencing
// anchor edge first, so a root with zero dependencies still renders as a
// visible node rather than an empty diagram.
func ToPlantUML(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("@startuml\n")
	b.WriteString("skinparam linetype ortho\n")

	root, _ := g.Meta()["root"].(string)
	if root != "" {
		fmt.Fprintf(&b, "%q --> %q\n", root, root)
	}

	for _, e := range g.Edges() {
		if e.From == root && e.To == root {
			continue // anchor already written
		}
		fmt.Fprintf(&b, "%q --> %q\n", e.From, e.To)
	}

	b.WriteString("@enduml\n")
	return b.String()
}

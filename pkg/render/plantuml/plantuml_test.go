package plantuml

import (
	"strings"
	"testing"

	"github.com/apkgraph/apkgraph/pkg/graph"
)

func buildGraph() *graph.Graph {
	g := graph.New(graph.Metadata{"root": "a"})
	g.AddNode(graph.Node{ID: "a"})
	g.AddEdge(graph.Edge{From: "a", To: "b"})
	g.AddEdge(graph.Edge{From: "b", To: "c"})
	return g
}

func TestToPlantUML(t *testing.T) {
	out := ToPlantUML(buildGraph())

	want := "@startuml\n" +
		"skinparam linetype ortho\n" +
		"\"a\" --> \"a\"\n" +
		"\"a\" --> \"b\"\n" +
		"\"b\" --> \"c\"\n" +
		"@enduml\n"
	if out != want {
		t.Errorf("ToPlantUML() =\n%s\nwant:\n%s", out, want)
	}
}

func TestToPlantUMLZeroDependencyRoot(t *testing.T) {
	g := graph.New(graph.Metadata{"root": "solo"})
	g.AddNode(graph.Node{ID: "solo"})

	out := ToPlantUML(g)
	if !strings.Contains(out, "\"solo\" --> \"solo\"") {
		t.Errorf("root anchor missing:\n%s", out)
	}
}

func TestToPlantUMLAnchorNotDuplicated(t *testing.T) {
	// A root with a declared self-dependency still gets exactly one anchor.
	g := graph.New(graph.Metadata{"root": "a"})
	g.AddEdge(graph.Edge{From: "a", To: "a"})
	g.AddEdge(graph.Edge{From: "a", To: "b"})

	out := ToPlantUML(g)
	if got := strings.Count(out, "\"a\" --> \"a\""); got != 1 {
		t.Errorf("anchor written %d times, want 1:\n%s", got, out)
	}
}

func TestToPlantUMLDeterministic(t *testing.T) {
	if ToPlantUML(buildGraph()) != ToPlantUML(buildGraph()) {
		t.Error("markup is not stable across runs")
	}
}

func TestToPlantUMLNoRootMeta(t *testing.T) {
	g := graph.New(nil)
	g.AddEdge(graph.Edge{From: "x", To: "y"})

	out := ToPlantUML(g)
	if !strings.Contains(out, "\"x\" --> \"y\"") {
		t.Errorf("edge missing:\n%s", out)
	}
	if strings.Contains(out, "\"x\" --> \"x\"") {
		t.Errorf("unexpected anchor without root metadata:\n%s", out)
	}
}

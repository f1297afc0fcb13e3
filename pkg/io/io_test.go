package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/apkgraph/apkgraph/pkg/graph"
)

func buildGraph() *graph.Graph {
	g := graph.New(graph.Metadata{"root": "a"})
	g.AddNode(graph.Node{ID: "a", Meta: graph.Metadata{"version": "1.0"}})
	g.AddEdge(graph.Edge{From: "a", To: "b"})
	g.AddEdge(graph.Edge{From: "a", To: "c"})
	g.AddEdge(graph.Edge{From: "b", To: "c"})
	return g
}

func TestRoundTrip(t *testing.T) {
	g := buildGraph()

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if !reflect.DeepEqual(got.NodeIDs(), g.NodeIDs()) {
		t.Errorf("nodes = %v, want %v", got.NodeIDs(), g.NodeIDs())
	}
	if !reflect.DeepEqual(got.Edges(), g.Edges()) {
		t.Errorf("edges = %v, want %v", got.Edges(), g.Edges())
	}
	if got.Meta()["root"] != "a" {
		t.Errorf("meta root = %v, want a", got.Meta()["root"])
	}
	n, ok := got.Node("a")
	if !ok || n.Meta["version"] != "1.0" {
		t.Error("node metadata lost in round trip")
	}
}

func TestWriteJSONDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	if err := WriteJSON(buildGraph(), &first); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(buildGraph(), &second); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("serialization is not byte-stable across runs")
	}
}

func TestReadJSONCreatesEdgeEndpoints(t *testing.T) {
	in := `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"b"}]}`
	g, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if !g.Contains("b") {
		t.Error("edge target should be created as a node")
	}
}

func TestReadJSONRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"invalid json":   `{"nodes":`,
		"empty node id":  `{"nodes":[{"id":""}],"edges":[]}`,
		"empty edge end": `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":""}]}`,
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := ExportJSON(buildGraph(), path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	g, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 3 {
		t.Errorf("got %d nodes %d edges, want 3 and 3", g.NodeCount(), g.EdgeCount())
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

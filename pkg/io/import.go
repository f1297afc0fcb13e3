package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apkgraph/apkgraph/pkg/graph"
)

// ReadJSON decodes a JSON graph from r.
//
// Each node must have an "id" field; "meta" is an optional object with
// arbitrary key-value pairs. Each edge must have "from" and "to" fields.
// Edge endpoints that don't appear in the node list are created as bare
// nodes, matching the graph's own edge semantics.
//
// The returned graph is independent of r and can be modified safely after
// ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data jsonGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := graph.New(data.Meta)
	for _, n := range data.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node with empty id")
		}
		g.AddNode(graph.Node{ID: n.ID, Meta: n.Meta})
	}
	for _, e := range data.Edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("edge %s->%s: missing endpoint", e.From, e.To)
		}
		g.AddEdge(graph.Edge{From: e.From, To: e.To})
	}

	return g, nil
}

// ImportJSON reads the JSON file at path and returns the decoded graph.
// Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

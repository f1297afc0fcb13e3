package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apkgraph/apkgraph/pkg/graph"
)

type jsonGraph struct {
	Meta  graph.Metadata `json:"meta,omitempty"`
	Nodes []jsonNode     `json:"nodes"`
	Edges []jsonEdge     `json:"edges"`
}

type jsonNode struct {
	ID   string         `json:"id"`
	Meta graph.Metadata `json:"meta,omitempty"`
}

type jsonEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes a graph as JSON and writes it to w.
// The output preserves node and edge insertion order and can be re-imported
// with [ReadJSON] for round-trip processing.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := jsonGraph{
		Nodes: make([]jsonNode, 0, g.NodeCount()),
		Edges: make([]jsonEdge, 0, g.EdgeCount()),
	}
	if len(g.Meta()) > 0 {
		out.Meta = g.Meta()
	}

	for _, n := range g.Nodes() {
		nd := jsonNode{ID: n.ID}
		if len(n.Meta) > 0 {
			nd.Meta = n.Meta
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, jsonEdge{From: e.From, To: e.To})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

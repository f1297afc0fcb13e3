// Package graph provides the directed dependency graph produced by
// resolution and consumed by the exporters.
//
// # Overview
//
// apkgraph represents the "depends on" relation as a directed graph whose
// nodes are canonical package identifiers and whose edges are direct
// dependency pairs discovered during traversal. Unlike a strict DAG, cycles
// are valid content here: Alpine package data routinely contains mutual
// dependencies, and the resolver (not this package) is responsible for
// terminating on them.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [Graph.AddNode], and edges
// with [Graph.AddEdge]. Both operations have set semantics - re-inserting an
// existing node or edge is a no-op:
//
//	g := graph.New(nil)
//	g.AddNode(graph.Node{ID: "busybox"})
//	g.AddEdge(graph.Edge{From: "busybox", To: "musl"})
//	g.AddEdge(graph.Edge{From: "busybox", To: "musl"}) // no-op
//
// Query the structure with [Graph.Children], [Graph.Parents],
// [Graph.Contains], and related methods.
//
// # Determinism
//
// Nodes and edges iterate in insertion order. Because the resolver visits
// packages in first-seen order, two runs over the same input produce graphs
// that serialize byte-identically. Exporters rely on this and must not
// re-sort unless they do so stably.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package graph

package graph

import "slices"

// Metadata stores arbitrary key-value pairs attached to nodes or the graph.
// It is commonly used to store package metadata (version, origin index) or
// resolution details. Metadata maps are never nil - they are automatically
// initialized to empty maps when needed.
type Metadata map[string]any

// Node represents a package in the dependency graph.
//
// The zero value is not usable - ID must be set before adding to a Graph.
type Node struct {
	ID   string   // Canonical package identifier (also used as display label)
	Meta Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Edge represents a directed "depends on" connection between two packages.
type Edge struct {
	From string // Source node ID (the dependent)
	To   string // Target node ID (the dependency)
}

// Graph is a directed graph over package identifiers with set semantics on
// nodes and edges: adding an existing node or edge is a no-op, not an error.
// Cycles are valid graph content; only traversal needs cycle protection,
// which the resolver handles separately.
//
// Nodes and edges iterate in insertion order, so a graph built from a
// deterministic traversal serializes identically across runs.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	order    []string
	nodes    map[string]*Node
	edges    []Edge
	edgeSet  map[Edge]struct{}
	outgoing map[string][]string // nodeID -> children IDs
	incoming map[string][]string // nodeID -> parent IDs
	meta     Metadata
}

// New creates an empty Graph with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
// Graph-level metadata is typically used to store the root package name and
// resolution details.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes:    make(map[string]*Node),
		edgeSet:  make(map[Edge]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
// The returned map is never nil and can be safely modified.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode inserts a node into the graph. Inserting a node whose ID already
// exists is a no-op and the existing node (including its metadata) is kept.
// Nodes with an empty ID are ignored.
func (g *Graph) AddNode(n Node) {
	if n.ID == "" {
		return
	}
	if _, exists := g.nodes[n.ID]; exists {
		return
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
}

// AddEdge inserts a directed edge. Endpoints that are not yet present are
// added as bare nodes, so callers can record edges in discovery order without
// pre-registering nodes. Inserting an edge between the same ordered pair
// twice is a no-op: a dependency declared with several version constraints
// still contributes a single edge.
func (g *Graph) AddEdge(e Edge) {
	if e.From == "" || e.To == "" {
		return
	}
	if _, dup := g.edgeSet[e]; dup {
		return
	}
	g.AddNode(Node{ID: e.From})
	g.AddNode(Node{ID: e.To})
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
}

// Contains reports whether a node with the given ID exists.
func (g *Graph) Contains(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether the directed edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edgeSet[Edge{From: from, To: to}]
	return ok
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual node in the graph, so
// metadata modifications affect the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
// The returned slice contains pointers to the actual node structs, so
// modifications affect the graph.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
// Modifications to the returned slice do not affect the graph.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the IDs of nodes this node has edges to (dependencies),
// in edge insertion order. Returns nil if the node has no children or does
// not exist. The returned slice should not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node (dependents),
// in edge insertion order. Returns nil if the node has no parents or does
// not exist. The returned slice should not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns nodes with no incoming edges, in insertion order.
// For a resolved dependency graph this is normally just the root (the root
// anchor edge is a self-loop, which counts as both incoming and outgoing,
// so the anchored root does not appear here).
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, g.nodes[id])
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, in insertion order.
// These are leaf packages with no further dependencies.
func (g *Graph) Sinks() []*Node {
	var sinks []*Node
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, g.nodes[id])
		}
	}
	return sinks
}

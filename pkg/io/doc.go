// Package io serializes dependency graphs to and from JSON.
//
// The JSON form is the hand-off artifact between the resolve and render
// commands:
//
//	{
//	  "meta": {"root": "busybox"},
//	  "nodes": [{"id": "busybox"}, {"id": "musl"}],
//	  "edges": [{"from": "busybox", "to": "musl"}]
//	}
//
// Nodes and edges are written in graph insertion order, which for a resolved
// graph is traversal discovery order, so the same resolution always produces
// byte-identical output.
package io

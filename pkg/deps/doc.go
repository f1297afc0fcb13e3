// Package deps implements transitive dependency resolution for Alpine
// packages.
//
// # Overview
//
// Resolution starts from a root package name and repeatedly asks a
// [Source] for the immediate dependencies of each newly discovered package,
// producing a [graph.Graph] of the full reachable set. The traversal is an
// explicit work-stack depth-first search with a visited set, so it
// terminates on cyclic dependency data and never reprocesses a package.
//
// Two Source implementations ship with apkgraph:
//
//   - [apkindex.Index]: a static APKINDEX file parsed up front
//   - [apkcmd.Tool]: live queries against the apk command-line tool
//
// # Error policy
//
// A failed lookup for the root package aborts resolution with
// PACKAGE_NOT_FOUND. A failed lookup for a transitively discovered package
// degrades to "no further dependencies": the package stays in the graph as a
// leaf, a warning is logged, and [Result.Partial] is set so callers can
// distinguish fully resolved graphs from partially resolved ones.
//
// # Determinism
//
// For a given Source, resolution is deterministic: packages are expanded in
// a fixed order and dependencies are recorded in the order the Source
// returned them, so repeated runs serialize identically.
package deps

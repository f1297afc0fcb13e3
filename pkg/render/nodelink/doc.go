// Package nodelink renders dependency graphs as classic node-link diagrams
// via Graphviz.
//
// This is the in-process alternative to the external PlantUML pipeline:
// [ToDOT] produces deterministic DOT text from a graph, and [RenderSVG] /
// [RenderPNG] rasterize it through the embedded Graphviz engine without
// shelling out to a JVM.
package nodelink

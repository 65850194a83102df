// Package schreier renders coset tables as Schreier graph diagrams.
//
// # Overview
//
// The Schreier graph of an enumeration has one node per coset and one
// labeled edge per coset and generator: an edge c -> c·g labeled g. It is
// the visual form of the right action recorded in the coset table, and for
// the trivial subgroup it is the Cayley graph of the group.
//
// # Usage
//
// Convert a snapshot to DOT format, then render:
//
//	dot := schreier.ToDOT(snap, schreier.Options{})
//	svg, err := schreier.RenderSVG(dot)
//	png, err := schreier.RenderPNG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered in-process via [RenderSVG] or [RenderPNG]
//   - Saved and processed with external Graphviz tools
//
// Only the edges for the abstract generators are drawn; the inverse columns
// of the table duplicate them with the arrows reversed. The identity coset
// is drawn with a double border.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package schreier

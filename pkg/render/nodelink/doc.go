// Package nodelink renders an overlap graph as a node-link diagram.
//
// Each item is a box and each overlap an arrow. Nodes and edges of the
// longest chain are filled and drawn bold, and chain nodes carry their
// position as an xlabel, so the merged string can be read off the picture.
//
//	dot := nodelink.ToDOT(g, best, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Large graphs get dense quickly: n items sharing one overlap key produce
// n*(n-1) edges. [Options.OnlyPath] keeps just the chain.
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]; no external binaries are needed.
package nodelink

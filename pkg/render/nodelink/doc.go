// Package nodelink renders a resolved package graph as a node-link diagram.
//
// Every package appears once as a box, with one arrow per declared
// dependency. Unlike the deps tree, shared packages are not repeated,
// which makes diamonds and cycles visible at a glance.
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] output can also be saved and processed with external Graphviz
// tools. [RenderSVG] uses [github.com/goccy/go-graphviz], which runs
// Graphviz in-process.
package nodelink

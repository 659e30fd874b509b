// Package render draws balanced lines as Graphviz diagrams.
//
// [ToDOT] produces DOT source with one cluster per station. Tasks appear as
// boxes labelled with their id and duration, precedence relations as arrows
// and each cluster carries its load breakdown:
//
//	dot := render.ToDOT(problem, solution, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// Without a solution the plain precedence graph is drawn, which is useful
// for inspecting an instance before solving it.
//
// SVG output uses [github.com/goccy/go-graphviz] in process, so no external
// Graphviz installation is needed.
package render

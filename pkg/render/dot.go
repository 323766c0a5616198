// Package render exports dependency graphs as Graphviz DOT and SVG.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/runstack/runstack/pkg/depgraph"
)

// ToDOT converts the declared dependencies to Graphviz DOT. Edges point
// from each prerequisite to its dependents, top to bottom, so rendering
// reads in execution order. Units without prerequisites are highlighted as
// entry points.
//
// Units are emitted sorted and prerequisite lists in declared order, so the
// output is deterministic for a given map.
func ToDOT(m depgraph.Map) string {
	g := depgraph.Build(m)

	var buf bytes.Buffer
	buf.WriteString("digraph units {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, unit := range g.Units() {
		if g.InDegree(unit) == 0 {
			fmt.Fprintf(&buf, "  %q [fillcolor=lightgrey];\n", unit)
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", unit)
	}

	buf.WriteString("\n")
	for _, unit := range g.Units() {
		for _, dep := range m[unit] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", dep, unit)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

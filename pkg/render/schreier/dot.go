package schreier

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/igarnier/cosetta/pkg/coset"
	"github.com/igarnier/cosetta/pkg/group"
)

// Edge colors cycle through this palette by generator index.
var palette = []string{"#1f77b4", "#d62728", "#2ca02c", "#9467bd", "#ff7f0e", "#8c564b"}

// Options configures Schreier graph rendering.
type Options struct {
	// Labels adds the generator name to every edge. When false, edges are
	// distinguished by color only.
	Labels bool
}

// ToDOT converts an enumeration snapshot to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(s *coset.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph schreier {\n")
	if s.Name != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", s.Name)
		buf.WriteString("  labelloc=t;\n")
	}
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("\n")

	// Coset 0 is the subgroup itself.
	buf.WriteString("  \"0\" [shape=doublecircle];\n")
	for c := 1; c < s.Index; c++ {
		fmt.Fprintf(&buf, "  \"%d\";\n", c)
	}

	buf.WriteString("\n")
	for i, name := range s.Generators {
		g := group.Gen(2 * i)
		color := palette[i%len(palette)]
		for c := range s.Index {
			attrs := fmt.Sprintf("color=%q", color)
			if opts.Labels {
				attrs = fmt.Sprintf("label=%q, fontcolor=%q, %s", name, color, attrs)
			}
			fmt.Fprintf(&buf, "  \"%d\" -> \"%d\" [%s];\n", c, s.Act(c, g), attrs)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Package render turns parsed dependency trees into Graphviz output for
// inspection and debugging.
package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/depclose/depclose/pkg/npmtree"
)

// Options configures dependency graph rendering.
type Options struct {
	// Detailed includes store paths in node labels.
	// When false, only name and version are shown.
	Detailed bool
}

// ToDOT converts workspace entries to Graphviz DOT format. Nodes are keyed
// by name@version so the same package reached through many parents renders
// once; edges follow the dependency mapping. The resulting DOT string can be
// rendered with [RenderSVG].
func ToDOT(entries []npmtree.Entry, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	w := &dotWriter{buf: &buf, opts: opts, visited: make(map[string]bool)}
	for _, e := range entries {
		root := e.Name
		if root == "" {
			root = "workspace"
		}
		fmt.Fprintf(&buf, "  %q [fillcolor=lightgrey];\n", root)
		w.walk(root, e.Dependencies)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf     *bytes.Buffer
	opts    Options
	visited map[string]bool
}

func (w *dotWriter) walk(parent string, deps map[string]npmtree.Node) {
	for _, name := range slices.Sorted(maps.Keys(deps)) {
		node := deps[name]
		id := nodeID(name, node)
		fmt.Fprintf(w.buf, "  %q -> %q;\n", parent, id)

		// Expand each package once; repeat visits only add the edge.
		key := id
		if node.Path != "" {
			key = node.Path
		}
		if w.visited[key] {
			continue
		}
		w.visited[key] = true

		fmt.Fprintf(w.buf, "  %q [label=%q];\n", id, w.label(name, node))
		w.walk(id, node.Dependencies)
	}
}

func nodeID(name string, node npmtree.Node) string {
	if node.Version == "" {
		return name
	}
	return name + "@" + node.Version
}

func (w *dotWriter) label(name string, node npmtree.Node) string {
	label := nodeID(name, node)
	if w.opts.Detailed && node.Path != "" {
		label += "\n" + node.Path
	}
	return label
}

// RenderSVG renders a DOT string to SVG bytes.
func RenderSVG(dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

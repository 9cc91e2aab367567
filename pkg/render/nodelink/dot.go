package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mcxross/sui/pkg/depgraph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the registry name and package ID to node labels.
	Detailed bool
}

type link struct {
	from, to, name string
}

// ToDOT converts the graph reachable from root to Graphviz DOT format.
// Nodes and edges are emitted sorted by package ID, so equal graphs give
// equal output. An edge is labeled when the declared dependency name
// differs from the package name.
func ToDOT(root *depgraph.PackageNode, opts Options) string {
	nodes := map[string]*depgraph.PackageNode{}
	var links []link

	var visit func(n *depgraph.PackageNode)
	visit = func(n *depgraph.PackageNode) {
		if _, ok := nodes[n.ID]; ok {
			return
		}
		nodes[n.ID] = n
		for name, dep := range n.Deps {
			links = append(links, link{from: n.ID, to: dep.ID, name: name})
			visit(dep)
		}
	}
	visit(root)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		n := nodes[id]
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
		if n == root {
			attrs = append(attrs, "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	slices.SortFunc(links, func(a, b link) int {
		return cmp.Or(strings.Compare(a.from, b.from), strings.Compare(a.to, b.to), strings.Compare(a.name, b.name))
	})
	for _, l := range links {
		if l.name != nodes[l.to].DisplayName {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", l.from, l.to, l.name)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", l.from, l.to)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *depgraph.PackageNode, detailed bool) string {
	if !detailed {
		return n.DisplayName
	}
	parts := []string{n.DisplayName}
	if n.RegistryName != "" && n.RegistryName != n.DisplayName {
		parts = append(parts, n.RegistryName)
	}
	if n.ID != n.DisplayName {
		parts = append(parts, "id: "+n.ID)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root <svg> tag with one whose
// viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

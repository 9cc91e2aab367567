// Package depgraph flattens a resolved package graph into the ordered
// lines of the deps view.
//
// A package reachable through more than one path is expanded only at its
// first discovery in depth-first order and marked shared everywhere else.
// The same check stops back-edges, so cyclic graphs terminate.
package depgraph

import (
	"cmp"
	"slices"
	"strings"
)

// PackageNode is a resolved package. Deps maps the name under which a
// dependency is declared to the dependency's node; nodes may be shared by
// several parents and may form cycles.
type PackageNode struct {
	ID           string
	DisplayName  string
	RegistryName string
	Deps         map[string]*PackageNode
}

// Entry is one line of the deps view.
type Entry struct {
	Depth    int
	Last     bool // last sibling at its depth
	Name     string
	Registry string // set when it differs from Name
	ID       string // set when it differs from Name
	Shared   bool

	// Placeholder marks the "(no dependencies)" line.
	Placeholder bool
}

// NoDependencies is the label of the placeholder entry.
const NoDependencies = "(no dependencies)"

// Label returns the unstyled text of e.
func (e Entry) Label() string {
	if e.Placeholder {
		return NoDependencies
	}
	var b strings.Builder
	b.WriteString(e.Name)
	if e.Registry != "" {
		b.WriteString(" (" + e.Registry + ")")
	}
	if e.ID != "" {
		b.WriteString(" [" + e.ID + "]")
	}
	if e.Shared {
		b.WriteString(" (shared)")
	}
	return b.String()
}

// Walk returns the deps view of root in depth-first order. Children are
// visited sorted by declared name, then by package ID.
func Walk(root *PackageNode) []Entry {
	if len(root.Deps) == 0 {
		return []Entry{{Last: true, Placeholder: true}}
	}

	visited := map[string]struct{}{root.ID: {}}
	var entries []Entry

	var visit func(n *PackageNode, depth int)
	visit = func(n *PackageNode, depth int) {
		edges := sortedEdges(n.Deps)
		for i, edge := range edges {
			dep := edge.node
			_, shared := visited[dep.ID]
			if !shared {
				visited[dep.ID] = struct{}{}
			}
			entries = append(entries, newEntry(dep, depth, i == len(edges)-1, shared))
			if !shared {
				visit(dep, depth+1)
			}
		}
	}
	visit(root, 0)

	return entries
}

type edge struct {
	name string
	node *PackageNode
}

func sortedEdges(deps map[string]*PackageNode) []edge {
	edges := make([]edge, 0, len(deps))
	for name, node := range deps {
		edges = append(edges, edge{name: name, node: node})
	}
	slices.SortFunc(edges, func(a, b edge) int {
		return cmp.Or(strings.Compare(a.name, b.name), strings.Compare(a.node.ID, b.node.ID))
	})
	return edges
}

func newEntry(n *PackageNode, depth int, last, shared bool) Entry {
	e := Entry{
		Depth:  depth,
		Last:   last,
		Name:   n.DisplayName,
		Shared: shared,
	}
	if n.RegistryName != "" && n.RegistryName != n.DisplayName {
		e.Registry = n.RegistryName
	}
	if n.ID != n.DisplayName {
		e.ID = n.ID
	}
	return e
}

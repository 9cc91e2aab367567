package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/lithammer/dedent"

	"github.com/mcxross/sui/pkg/depgraph"
)

func diamond() *depgraph.PackageNode {
	shared := &depgraph.PackageNode{ID: "shared", DisplayName: "shared", RegistryName: "@org/shared"}
	left := &depgraph.PackageNode{ID: "left", DisplayName: "left", Deps: map[string]*depgraph.PackageNode{"shared": shared}}
	right := &depgraph.PackageNode{ID: "right", DisplayName: "right", Deps: map[string]*depgraph.PackageNode{"common": shared}}
	root := &depgraph.PackageNode{ID: "app", DisplayName: "app", Deps: map[string]*depgraph.PackageNode{"left": left, "right": right}}
	// cycle back to the root
	shared.Deps = map[string]*depgraph.PackageNode{"app": root}
	return root
}

func TestToDOT(t *testing.T) {
	got := ToDOT(diamond(), Options{})
	want := strings.TrimPrefix(dedent.Dedent(`
		digraph G {
		  rankdir=TB;
		  bgcolor="transparent";
		  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
		  ranksep=0.5;
		  nodesep=0.3;

		  "app" [label="app", penwidth=2];
		  "left" [label="left"];
		  "right" [label="right"];
		  "shared" [label="shared"];

		  "app" -> "left";
		  "app" -> "right";
		  "left" -> "shared";
		  "right" -> "shared" [label="common"];
		  "shared" -> "app";
		}
	`), "\n")
	if got != want {
		t.Errorf("ToDOT() =\n%s\nwant\n%s", got, want)
	}
}

func TestToDOTDetailed(t *testing.T) {
	n := &depgraph.PackageNode{ID: "util_1", DisplayName: "util", RegistryName: "@org/util"}
	got := ToDOT(n, Options{Detailed: true})
	if !strings.Contains(got, `label="util\n@org/util\nid: util_1"`) {
		t.Errorf("detailed label missing:\n%s", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.25 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.25 200.00" width="100" height="200"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(diamond(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "shared") {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}

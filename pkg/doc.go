// Package pkg provides the libraries behind move-tree, a terminal viewer
// for Move packages.
//
// # Overview
//
// move-tree discovers Move packages under a path and prints one tree per
// package: either the public API (modules and their public functions) or
// the transitive dependencies declared in Move.toml. The pkg directory is
// organized by stage:
//
//  1. [manifest] - Move.toml parsing and package discovery
//  2. [compile] - Compiler collaborator, environment fallback, snapshot cache
//  3. [bytecode], [modules] - Compiled module tables and signature formatting
//  4. [resolve], [depgraph] - Dependency graph and its display walk
//  5. [tree], [render/nodelink] - Terminal trees and Graphviz diagrams
//
// # Architecture
//
// The modules view:
//
//	Move.toml
//	    ↓
//	[manifest] package (environments)
//	    ↓
//	[compile] package (first environment that builds)
//	    ↓
//	[modules] package (public functions, formatted signatures)
//	    ↓
//	[tree] package
//
// The deps view:
//
//	Move.toml
//	    ↓
//	[resolve] package (local deps followed, git/registry deps as leaves)
//	    ↓
//	[depgraph] package (DFS entries, shared markers)
//	    ↓
//	[tree] or [render/nodelink]
//
// # Quick Start
//
// Render the public API of one package:
//
//	m, _ := manifest.Load(dir)
//	c := &compile.ExecCompiler{Command: compile.DefaultCommand, Format: compile.FormatJSON}
//	p, _ := compile.CompileAny(ctx, c, dir, m.EnvironmentList(), nil)
//
//	r := tree.New(os.Stdout, tree.Plain{}, tree.ASCII)
//	r.Header(p.Name, "")
//	r.Modules(modules.Collect(p))
//
// Render its dependencies:
//
//	node, _ := (&resolve.LocalResolver{}).Resolve(ctx, dir)
//	tree.New(os.Stdout, tree.Plain{}, tree.Unicode).Deps(depgraph.Walk(node))
//
// # Supporting Packages
//
// [cache] - Snapshot storage (filesystem, Redis, or none) with TTLs.
//
// [config] - TOML configuration file with defaults and validation.
//
// [errors] - Coded errors shared by every package and the CLI.
//
// [observability] - Hooks for driver, compiler and cache events.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./...                          # All tests
//	go test -short ./...                   # Skip Graphviz rendering
//	MOVE_TREE_TEST_REDIS=localhost:6379 go test ./pkg/cache/
//
// [manifest]: https://pkg.go.dev/github.com/mcxross/sui/pkg/manifest
// [compile]: https://pkg.go.dev/github.com/mcxross/sui/pkg/compile
// [bytecode]: https://pkg.go.dev/github.com/mcxross/sui/pkg/bytecode
// [modules]: https://pkg.go.dev/github.com/mcxross/sui/pkg/modules
// [resolve]: https://pkg.go.dev/github.com/mcxross/sui/pkg/resolve
// [depgraph]: https://pkg.go.dev/github.com/mcxross/sui/pkg/depgraph
// [tree]: https://pkg.go.dev/github.com/mcxross/sui/pkg/tree
// [render/nodelink]: https://pkg.go.dev/github.com/mcxross/sui/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/mcxross/sui/pkg/cache
// [config]: https://pkg.go.dev/github.com/mcxross/sui/pkg/config
// [errors]: https://pkg.go.dev/github.com/mcxross/sui/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mcxross/sui/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/mcxross/sui/pkg/buildinfo
package pkg

package cli

import (
	"cmp"
	"context"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mcxross/sui/pkg/compile"
	"github.com/mcxross/sui/pkg/depgraph"
	"github.com/mcxross/sui/pkg/errors"
	"github.com/mcxross/sui/pkg/manifest"
	"github.com/mcxross/sui/pkg/modules"
	"github.com/mcxross/sui/pkg/render/nodelink"
	"github.com/mcxross/sui/pkg/resolve"
)

// modulesCommand creates the modules view command.
func (c *CLI) modulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "modules [path]",
		Short:             "List modules and public functions of each package",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePackageDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runModules(cmd, pathArg(args))
		},
	}
}

// depsCommand creates the deps view command.
func (c *CLI) depsCommand() *cobra.Command {
	var (
		dev      bool
		format   string
		detailed bool
	)
	cmd := &cobra.Command{
		Use:   "deps [path]",
		Short: "List the transitive dependencies of each package",
		Long: `List the transitive dependencies of each package.

Local dependencies are followed through their own Move.toml. Git and
registry dependencies are shown as leaves. A package reached a second
time is marked (shared) and not expanded again.

With --format dot or svg each package's graph is printed as a Graphviz
node-link diagram instead, one node per package.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePackageDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}
			if !slices.Contains([]string{formatTree, formatDOT, formatSVG}, format) {
				return errors.New(errors.ErrCodeInvalidInput, "invalid format %q (want tree, dot, svg)", format)
			}
			resolver := &resolve.LocalResolver{IncludeDev: dev, Logger: c.Logger.Debugf}
			return c.drive(cmd.Context(), cfg, pathArg(args), "deps", depsView(resolver, format, detailed))
		},
	}
	cmd.Flags().BoolVar(&dev, "dev", false, "include [dev-dependencies] of each root")
	cmd.Flags().StringVarP(&format, "format", "f", formatTree, "output format: tree, dot, svg")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label graph nodes with registry names and IDs (dot, svg)")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatTree, formatDOT, formatSVG}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func (c *CLI) runModules(cmd *cobra.Command, path string) error {
	cfg, err := c.settings(cmd)
	if err != nil {
		return err
	}
	compiler, closeCompiler := c.newCompiler(cmd.Context(), cfg)
	defer closeCompiler()
	return c.drive(cmd.Context(), cfg, path, "modules", c.modulesView(compiler))
}

// modulesView compiles a root, trying each of its environments, and
// renders its modules.
func (c *CLI) modulesView(compiler compile.Compiler) view {
	return func(ctx context.Context, root, rel string, out output) error {
		m, err := manifest.Load(root)
		if err != nil {
			return errors.Wrap(errors.ErrCodeCompile, err, "failed to compile Move package at %s", root)
		}
		pkg, err := compile.CompileAny(ctx, compiler, root, m.EnvironmentList(), c.Logger.Debugf)
		if err != nil {
			return errors.Wrap(errors.ErrCodeCompile, err, "failed to compile Move package at %s", root)
		}

		r := out.tree()
		r.Header(cmp.Or(pkg.Name, m.Package.Name), rel)
		r.Modules(modules.Collect(pkg))
		return r.Err()
	}
}

// Output formats of the deps view.
const (
	formatTree = "tree"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// depsView resolves a root and renders its dependency tree, or its
// node-link diagram for the dot and svg formats.
func depsView(resolver resolve.Resolver, format string, detailed bool) view {
	return func(ctx context.Context, root, rel string, out output) error {
		node, err := resolver.Resolve(ctx, root)
		if err != nil {
			return errors.Wrap(errors.ErrCodeResolve, err, "failed to resolve dependencies of Move package at %s", root)
		}

		switch format {
		case formatDOT:
			_, err = io.WriteString(out.w, nodelink.ToDOT(node, nodelink.Options{Detailed: detailed}))
			return err
		case formatSVG:
			svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(node, nodelink.Options{Detailed: detailed}))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "render dependency graph of %s", root)
			}
			_, err = out.w.Write(append(svg, '\n'))
			return err
		}

		r := out.tree()
		r.Header(node.DisplayName, rel)
		r.Deps(depgraph.Walk(node))
		return r.Err()
	}
}

// Package compile turns a Move package root into a [bytecode.Package].
//
// The compiler itself is an external collaborator: [ExecCompiler] runs a
// configured command that prints a package snapshot, [CachedCompiler]
// stores snapshots between runs, and [CompileAny] retries across the
// environments a manifest declares.
package compile

import (
	"context"
	"time"

	"github.com/mcxross/sui/pkg/bytecode"
	"github.com/mcxross/sui/pkg/errors"
	"github.com/mcxross/sui/pkg/manifest"
	"github.com/mcxross/sui/pkg/observability"
)

// Compiler builds the package at root for one environment.
type Compiler interface {
	Compile(ctx context.Context, root string, env manifest.Environment) (*bytecode.Package, error)
}

// CompilerFunc adapts a function to the Compiler interface.
type CompilerFunc func(ctx context.Context, root string, env manifest.Environment) (*bytecode.Package, error)

// Compile implements Compiler.
func (f CompilerFunc) Compile(ctx context.Context, root string, env manifest.Environment) (*bytecode.Package, error) {
	return f(ctx, root, env)
}

// ErrNoEnvironments is returned by CompileAny when it has nothing to try.
var ErrNoEnvironments = errors.New(errors.ErrCodeNoEnvironments, "no environments to compile for")

// CompileAny compiles root for each environment in order and returns the
// first success. When every attempt fails the last failure is returned,
// naming its environment. Cancellation stops the loop immediately.
func CompileAny(ctx context.Context, c Compiler, root string, envs []manifest.Environment, logf func(string, ...any)) (*bytecode.Package, error) {
	if len(envs) == 0 {
		return nil, ErrNoEnvironments
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	var last error
	for _, env := range envs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logf("compiling %s for %s (%s)", root, env.Name, env.ChainID)
		hooks := observability.Compile()
		hooks.OnCompileStart(ctx, root, env.Name)
		start := time.Now()
		pkg, err := c.Compile(ctx, root, env)
		hooks.OnCompileComplete(ctx, root, env.Name, time.Since(start), err)
		if err == nil {
			return pkg, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logf("environment %s failed: %v", env.Name, err)
		last = errors.Wrap(errors.ErrCodeCompile, err, "environment %s", env.Name)
	}
	return nil, last
}

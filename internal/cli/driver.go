package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcxross/sui/pkg/config"
	"github.com/mcxross/sui/pkg/errors"
	"github.com/mcxross/sui/pkg/manifest"
	"github.com/mcxross/sui/pkg/observability"
	"github.com/mcxross/sui/pkg/tree"
)

// view renders one package root into out. rel is the root's path
// relative to the scanned path, empty for the scanned path itself.
type view func(ctx context.Context, root, rel string, out output) error

// output is where a view writes one root.
type output struct {
	w       io.Writer
	styler  tree.Styler
	charset tree.Charset
}

// tree returns a tree renderer writing to the output.
func (o output) tree() *tree.Renderer {
	return tree.New(o.w, o.styler, o.charset)
}

// drive discovers the package roots under path and renders each with v.
// name identifies the view to the driver hooks.
//
// Roots are processed concurrently, each into its own buffer, and the
// buffers are written in discovery order separated by a blank line. The
// first failing root ends the output: roots before it are printed, and its
// error is returned.
func (c *CLI) drive(ctx context.Context, cfg config.Config, path, name string, v view) error {
	roots, err := manifest.Discover(path)
	if err != nil {
		return err
	}
	base, err := scanBase(path)
	if err != nil {
		return err
	}
	if c.flags.pick {
		if roots, err = c.pickRoot(ctx, base, roots); err != nil {
			return err
		}
	}
	c.Logger.Debugf("Found %d package(s) under %s", len(roots), path)
	total := newProgress(c.Logger)

	charset, ok := tree.CharsetByName(cfg.Charset)
	if !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid charset %q", cfg.Charset)
	}
	styler := newStyler(colorEnabled(cfg.Color, c.Out))

	stats := &runStats{}
	defer stats.install()()

	bufs := make([]bytes.Buffer, len(roots))
	errs := make([]error, len(roots))

	var spin *spinner
	if c.showSpinner() {
		spin = newSpinner(ctx, c.Err, fmt.Sprintf("Processing %d package(s)", len(roots)))
		spin.Start()
	}
	var finished atomic.Int32

	var g errgroup.Group
	g.SetLimit(jobs(cfg.Jobs))
	for i, root := range roots {
		g.Go(func() error {
			// Errors are kept per root so one failure does not cancel
			// the others.
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			hooks := observability.Driver()
			hooks.OnRootStart(ctx, name, root)
			start := time.Now()
			errs[i] = v(ctx, root, relPath(base, root), output{w: &bufs[i], styler: styler, charset: charset})
			hooks.OnRootComplete(ctx, name, root, time.Since(start), errs[i])
			if errs[i] == nil {
				c.Logger.Debugf("Rendered %s (%s)", root, time.Since(start).Round(time.Millisecond))
			}
			spin.SetMessage(fmt.Sprintf("Processed %d/%d package(s)", finished.Add(1), len(roots)))
			return nil
		})
	}
	_ = g.Wait()
	spin.Stop()
	stats.log(c.Logger)

	for i := range roots {
		if errs[i] != nil {
			return errs[i]
		}
		if i > 0 {
			if _, err := c.Out.Write([]byte("\n")); err != nil {
				return err
			}
		}
		if _, err := bufs[i].WriteTo(c.Out); err != nil {
			return err
		}
	}
	total.done(fmt.Sprintf("Rendered %d package(s)", len(roots)))
	return nil
}

// showSpinner reports whether progress is drawn: only on an interactive
// stderr and not while debug logs are being written there.
func (c *CLI) showSpinner() bool {
	return isTerminal(c.Err) && c.Logger.GetLevel() > log.DebugLevel
}

// scanBase returns the absolute directory relative paths are computed
// from: path itself, or its parent when path is a file.
func scanBase(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}

// relPath returns root relative to base, or "" when root is base or lies
// outside it.
func relPath(base, root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return rel
}

func jobs(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

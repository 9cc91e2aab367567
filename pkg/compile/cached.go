package compile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mcxross/sui/pkg/bytecode"
	"github.com/mcxross/sui/pkg/cache"
	"github.com/mcxross/sui/pkg/errors"
	"github.com/mcxross/sui/pkg/manifest"
	"github.com/mcxross/sui/pkg/observability"
)

// snapshotKeyType labels cache events from CachedCompiler.
const snapshotKeyType = "snapshot"

// CachedCompiler serves snapshots from a cache keyed by the package
// sources, falling back to Inner on a miss.
type CachedCompiler struct {
	Inner Compiler
	Cache cache.Cache
	// TTL of new entries; zero means cache.DefaultTTL.
	TTL time.Duration
	// Command is mixed into the key so that changing the compiler
	// invalidates old snapshots.
	Command []string
	// Logger receives debug messages (optional).
	Logger func(string, ...any)
}

// Compile implements Compiler. Cache failures are logged and otherwise
// ignored.
func (c *CachedCompiler) Compile(ctx context.Context, root string, env manifest.Environment) (*bytecode.Package, error) {
	fp, err := Fingerprint(root)
	if err != nil {
		return nil, err
	}
	key := cache.SnapshotKey(fp, env.Name+"@"+env.ChainID, c.Command)

	if data, ok, err := c.Cache.Get(ctx, key); err != nil {
		c.logf("cache get %s: %v", root, err)
	} else if ok {
		var pkg bytecode.Package
		if err := msgpack.Unmarshal(data, &pkg); err == nil && pkg.Validate() == nil {
			c.logf("cache hit %s (%s)", root, env.Name)
			observability.Cache().OnCacheHit(ctx, snapshotKeyType)
			return &pkg, nil
		}
		c.logf("cache entry for %s is unreadable, recompiling", root)
		if err := c.Cache.Delete(ctx, key); err != nil {
			c.logf("cache delete %s: %v", root, err)
		}
		observability.Cache().OnCacheMiss(ctx, snapshotKeyType)
	} else {
		c.logf("cache miss %s (%s)", root, env.Name)
		observability.Cache().OnCacheMiss(ctx, snapshotKeyType)
	}

	pkg, err := c.Inner.Compile(ctx, root, env)
	if err != nil {
		return nil, err
	}

	data, err := msgpack.Marshal(pkg)
	if err != nil {
		c.logf("encode snapshot of %s: %v", root, err)
		return pkg, nil
	}
	ttl := c.TTL
	if ttl == 0 {
		ttl = cache.DefaultTTL
	}
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		c.logf("cache set %s: %v", root, err)
		return pkg, nil
	}
	observability.Cache().OnCacheSet(ctx, snapshotKeyType, len(data))
	return pkg, nil
}

func (c *CachedCompiler) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger(format, args...)
	}
}

// Fingerprint hashes Move.toml and every .move source under root, in
// path order, followed by the same for each package in root's local
// dependency closure, ordered by directory. Directories skipped by
// discovery are skipped here too. A local dependency whose manifest cannot
// be read contributes a marker instead, so the compiler runs and reports
// the failure.
func Fingerprint(root string) (string, error) {
	h := sha256.New()
	if err := hashSources(h, root, "."); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "fingerprint %s", root)
	}
	for _, dir := range localDeps(root) {
		label, err := filepath.Rel(root, dir)
		if err != nil {
			label = dir
		}
		label = filepath.ToSlash(label)
		if _, err := os.Stat(filepath.Join(dir, manifest.FileName)); err != nil {
			_, _ = io.WriteString(h, "missing:"+label)
			_, _ = h.Write([]byte{0})
			continue
		}
		if err := hashSources(h, dir, label); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "fingerprint %s", dir)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// localDeps returns the directories reachable from root through local
// dependencies, excluding root, sorted and absolute when root is.
// Unreadable manifests end the walk along their branch.
func localDeps(root string) []string {
	root = filepath.Clean(root)
	seen := map[string]bool{root: true}
	var dirs []string
	queue := []string{root}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]
		m, err := manifest.Load(dir)
		if err != nil {
			continue
		}
		for _, d := range m.Dependencies {
			if d.Source() != manifest.SourceLocal {
				continue
			}
			next := d.Local
			if !filepath.IsAbs(next) {
				next = filepath.Join(dir, next)
			}
			next = filepath.Clean(next)
			if seen[next] {
				continue
			}
			seen[next] = true
			dirs = append(dirs, next)
			queue = append(queue, next)
		}
	}
	slices.Sort(dirs)
	return dirs
}

// hashSources writes label, then each source file under dir with its
// slash-separated relative path, into h.
func hashSources(h io.Writer, dir, label string) error {
	_, _ = io.WriteString(h, "package:"+label)
	_, _ = h.Write([]byte{0})
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && manifest.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if d.Name() != manifest.FileName && filepath.Ext(path) != ".move" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, _ = io.WriteString(h, filepath.ToSlash(rel))
		_, _ = h.Write([]byte{0})
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(h, f); err != nil {
			return err
		}
		_, _ = h.Write([]byte{0})
		return nil
	})
}

package cli

import (
	"context"
	"slices"

	"github.com/mcxross/sui/pkg/cache"
	"github.com/mcxross/sui/pkg/compile"
	"github.com/mcxross/sui/pkg/config"
)

// newCompiler builds the configured compiler, wrapped in the snapshot
// cache when enabled. The returned func releases the cache.
func (c *CLI) newCompiler(ctx context.Context, cfg config.Config) (compile.Compiler, func()) {
	exec := &compile.ExecCompiler{
		Command: cfg.Compiler.Command,
		Format:  cfg.Compiler.Format,
		Logger:  c.Logger.Debugf,
	}
	if !cfg.Cache.Enabled {
		return exec, func() {}
	}

	store := c.openCache(ctx, cfg)
	command := cfg.Compiler.Command
	if len(command) == 0 {
		command = compile.DefaultCommand
	}
	return &compile.CachedCompiler{
		Inner:   exec,
		Cache:   store,
		TTL:     cfg.Cache.TTL.Duration,
		Command: append(slices.Clone(command), "format="+cfg.Compiler.Format),
		Logger:  c.Logger.Debugf,
	}, func() { _ = store.Close() }
}

// openCache returns the configured cache backend. Failures are logged and
// caching is disabled rather than failing the run.
func (c *CLI) openCache(ctx context.Context, cfg config.Config) cache.Cache {
	if cfg.Cache.RedisAddr != "" {
		store, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			c.Logger.Warn("Redis cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return store
	}

	dir, err := cacheDir(cfg)
	if err != nil {
		c.Logger.Warn("No cache directory, caching disabled", "err", err)
		return cache.NewNullCache()
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("Cache directory unusable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return store
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcxross/sui/pkg/cache"
	"github.com/mcxross/sui/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the compiled snapshot cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}

			var store cache.Cache
			where := cfg.Cache.RedisAddr
			if where != "" {
				store, err = cache.NewRedisCache(cmd.Context(), where)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidConfig, err, "open cache")
				}
			} else {
				where, err = cacheDir(cfg)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidPath, err, "get cache dir")
				}
				if _, err := os.Stat(where); os.IsNotExist(err) {
					printInfo(c.Out, "Cache is empty")
					return nil
				}
				if store, err = cache.NewFileCache(where); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidPath, err, "open cache")
				}
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return errors.New(errors.ErrCodeInternal, "cache backend cannot be cleared")
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "clear cache")
			}

			printSuccess(c.Out, "Cleared %d cached entries", count)
			printDetail(c.Out, "Location: %s", where)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}
			if cfg.Cache.RedisAddr != "" {
				_, err = fmt.Fprintln(c.Out, "redis://"+cfg.Cache.RedisAddr)
				return err
			}
			dir, err := cacheDir(cfg)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "get cache dir")
			}
			_, err = fmt.Fprintln(c.Out, dir)
			return err
		},
	}
}

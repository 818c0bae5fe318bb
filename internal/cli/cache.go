package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/cache"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached layouts, outputs and imports",
		Long: `Clear cached entries.

By default everything is removed. --kind limits clearing to scenes (laid-out
documents), artifacts (rendered outputs) or imports (UCSC query results).
When a Redis cache is configured its entries are cleared instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, ok := cache.ParseNamespace(kind)
			if !ok {
				return errors.New(errors.ErrCodeInvalidInput, "unknown cache kind %q (want scene, artifact, import or all)", kind)
			}
			return c.runCacheClear(cmd.Context(), ns)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "all", "entries to clear: scene, artifact, import or all")
	return cmd
}

func (c *CLI) runCacheClear(ctx context.Context, ns cache.Namespace) error {
	store, where, err := c.clearableCache(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.(cache.Clearer).Clear(ctx, ns)
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	what := "cached entries"
	if ns != cache.NamespaceAll {
		what = fmt.Sprintf("cached %s entries", ns)
	}
	printSuccess("Cleared %d %s", count, what)
	printDetail("Location: %s", where)
	return nil
}

// clearableCache opens the configured backend even when caching is
// disabled for rendering, so stale entries can still be removed.
func (c *CLI) clearableCache(ctx context.Context) (cache.Cache, string, error) {
	if url := c.cfg.Cache.RedisURL; url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, "", err
		}
		return rc, "redis", nil
	}
	dir, err := c.cacheRoot()
	if err != nil {
		return nil, "", fmt.Errorf("get cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, "", err
	}
	return fc, dir, nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheRoot()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// cacheRoot returns the configured cache directory or the XDG default.
func (c *CLI) cacheRoot() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

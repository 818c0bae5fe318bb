package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/internal/config"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/buildinfo"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/cache"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "giv"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the loaded configuration.
func (c *CLI) Config() config.Config {
	return c.cfg
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "giv lays out genomic features as stacked tracks",
		Long: `giv reads feature documents (frames of panel groups, tracks, groups and glyphs),
packs overlapping features into rows and renders the result as SVG, PNG, PDF or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/giv/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "formats", cfg.Render.Formats, "style", cfg.Render.Style)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	r.TTL = c.cfg.Cache.TTL.Duration
	return r, nil
}

// newCache picks Redis when configured, else the file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if url := c.cfg.Cache.RedisURL; url != "" {
		return cache.NewRedisCache(ctx, url)
	}
	dir, err := c.cacheRoot()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/giv/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions returns the configured defaults with the command's flags
// applied on top.
func (c *CLI) pipelineOptions(cmd *cobra.Command, f *layoutFlags) pipeline.Options {
	opts := c.cfg.PipelineOptions()
	opts.Logger = c.Logger
	if f != nil {
		f.apply(cmd, &opts)
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// layoutFlags are the document overrides shared by render, layout, view and
// validate. Only flags the user set replace configured values.
type layoutFlags struct {
	style    string
	strict   bool
	scale    float64
	hgap     float64
	vgap     float64
	trackGap float64
	panelGap float64
}

func (f *layoutFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.style, "style", pipeline.DefaultStyle, "glyph style preset: default, compact, unlabeled")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on any diagnostic")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "pixels per base (default: document scale)")
	cmd.Flags().Float64Var(&f.hgap, "hgap", 0, "horizontal gap between glyphs in a row")
	cmd.Flags().Float64Var(&f.vgap, "vgap", 0, "vertical gap between rows")
	cmd.Flags().Float64Var(&f.trackGap, "track-gap", 0, "gap between tracks")
	cmd.Flags().Float64Var(&f.panelGap, "panel-gap", 0, "gap between panel groups")
}

func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("style") {
		opts.Style = f.style
	}
	if changed("strict") {
		opts.Strict = f.strict
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("hgap") {
		opts.HGap = pipeline.Float(f.hgap)
	}
	if changed("vgap") {
		opts.VGap = pipeline.Float(f.vgap)
	}
	if changed("track-gap") {
		opts.TrackGap = pipeline.Float(f.trackGap)
	}
	if changed("panel-gap") {
		opts.PanelGap = pipeline.Float(f.panelGap)
	}
}

package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/cache"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/givxml"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/mosaic"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/scene"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides cache.TTLArtifact for scenes and artifacts when set.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
// The document is always parsed so diagnostics are reported on cache hits
// too. A strict-mode failure returns the partial parse result with the error.
func (r *Runner) Execute(ctx context.Context, doc []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		DocHash:   cache.Hash(doc),
		Artifacts: make(map[string][]byte),
	}
	hooks := observability.Pipeline()

	// Stage 1: Parse
	parseStart := time.Now()
	hooks.OnParseStart(ctx, result.DocHash)
	parsed, err := Parse(ctx, doc, opts)
	result.Parse = parsed
	result.Stats.ParseTime = time.Since(parseStart)
	glyphs, diags := 0, 0
	if parsed != nil {
		diags = len(parsed.Diagnostics)
		if parsed.Frame != nil {
			glyphs = countGlyphs(parsed.Frame)
		}
	}
	hooks.OnParseComplete(ctx, result.DocHash, glyphs, diags, result.Stats.ParseTime, err)
	if err != nil {
		return result, err
	}
	result.Stats.Diagnostics = diags

	r.Logger.Info("parsed document",
		"extent", parsed.Extent,
		"glyphs", glyphs,
		"diagnostics", diags,
		"duration", result.Stats.ParseTime)

	ApplyOverrides(parsed.Frame, opts)

	// Stage 2: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, len(parsed.Frame.Tracks()))
	sc, stats, sceneHit := r.SceneWithCacheInfo(ctx, result.DocHash, parsed.Frame, opts)
	result.Scene = sc
	result.Stats.Stats = stats
	result.SceneHit = sceneHit
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, stats.Rows, result.Stats.LayoutTime, nil)

	r.Logger.Info("computed layout",
		"tracks", stats.Tracks,
		"rows", stats.Rows,
		"width", sc.Width,
		"height", sc.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.DocHash, parsed, sc, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return result, err
	}
	result.Artifacts = artifacts
	result.CacheHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// cachedScene is what the layout stage stores.
type cachedScene struct {
	Scene *scene.Scene `json:"scene"`
	Stats frame.Stats  `json:"stats"`
}

// SceneWithCacheInfo lays out f, or loads a scene cached for the same
// document and layout options.
func (r *Runner) SceneWithCacheInfo(ctx context.Context, docHash string, f *frame.Frame, opts Options) (*scene.Scene, frame.Stats, bool) {
	key := r.Keyer.SceneKey(docHash, opts.SceneKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached cachedScene
			if err := json.Unmarshal(data, &cached); err == nil && cached.Scene != nil {
				observability.Cache().OnCacheHit(ctx, string(cache.NamespaceScene))
				return cached.Scene, cached.Stats, true
			}
		}
		observability.Cache().OnCacheMiss(ctx, string(cache.NamespaceScene))
	}

	sc := Layout(f)
	stats := f.Stats()

	if data, err := json.Marshal(cachedScene{Scene: sc, Stats: stats}); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			r.Logger.Debug("cache scene", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, string(cache.NamespaceScene), len(data))
		}
	}
	return sc, stats, false
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// all of them came from the cache. Only missing formats are rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, docHash string, parsed *givxml.Result, sc *scene.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, string(cache.NamespaceArtifact))
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, string(cache.NamespaceArtifact))
		}
		allCached = false

		data, err := RenderFormat(ctx, format, parsed, sc, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			r.Logger.Debug("cache artifact", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, string(cache.NamespaceArtifact), len(data))
		}
	}

	return artifacts, allCached, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func countGlyphs(f *frame.Frame) int {
	n := 0
	for _, t := range f.Tracks() {
		n += mosaic.CountGlyphs(t.Units())
	}
	return n
}

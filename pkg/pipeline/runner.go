package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eventlayout/pkg/cache"
	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/export"
	"github.com/matzehuels/eventlayout/pkg/field"
	pkgio "github.com/matzehuels/eventlayout/pkg/io"
	"github.com/matzehuels/eventlayout/pkg/layout"
	"github.com/matzehuels/eventlayout/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// ArtifactTTL overrides cache.TTLArtifact when positive.
	ArtifactTTL time.Duration
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

// Execute loads opts.Path and runs [Runner.Process] on the records.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	loadStart := time.Now()
	records, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	r.Logger.Info("loaded layout",
		"source", opts.Path,
		"records", len(records),
		"cached", loadHit,
		"duration", loadTime)

	result, err := r.Process(ctx, records, opts)
	if result != nil {
		result.Stats.LoadTime = loadTime
		result.CacheInfo.LoadHit = loadHit
	}
	return result, err
}

// Process runs prepare → validate → export on records already in memory.
//
// When the layout is refused by [Options.Check], Process returns a result
// holding Records and Report together with an ErrCodeLayoutInvalid error.
// With Recalculate set, records are modified in place.
func (r *Runner) Process(ctx context.Context, records []*field.Record, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	if opts.Recalculate {
		size := layout.Recalculate(records)
		r.Logger.Debug("recalculated positions", "size", size)
	}

	result := &Result{
		Records:   records,
		Artifacts: make(map[string][]byte),
	}

	validateStart := time.Now()
	rep := layout.Validate(records)
	result.Report = rep
	result.Stats.ValidateTime = time.Since(validateStart)
	result.Stats.FieldCount = rep.TotalFields
	result.Stats.TotalSize = rep.TotalSize
	result.Stats.Errors = len(rep.Errors)
	result.Stats.Warnings = len(rep.Warnings)
	observability.Pipeline().OnValidateComplete(ctx, len(rep.Errors), len(rep.Warnings), result.Stats.ValidateTime)

	r.Logger.Info("validated layout",
		"fields", rep.TotalFields,
		"size", rep.TotalSize,
		"errors", len(rep.Errors),
		"warnings", len(rep.Warnings))

	if err := opts.Check(rep); err != nil {
		return result, err
	}

	result.Model = export.Assemble(records)

	renderStart := time.Now()
	artifacts, hash, renderHit, err := r.RenderWithCacheInfo(ctx, result.Model, records, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.LayoutHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads the records of opts.Path, using the cache keyed by
// the file's content hash, and reports whether the cache was hit.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]*field.Record, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Path)
	start := time.Now()

	records, hit, err := r.load(ctx, opts)
	hooks.OnLoadComplete(ctx, opts.Path, len(records), time.Since(start), err)
	return records, hit, err
}

func (r *Runner) load(ctx context.Context, opts Options) ([]*field.Record, bool, error) {
	format, err := pkgio.FormatOf(opts.Path)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(opts.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "file %s not found", opts.Path)
		}
		return nil, false, errors.Wrap(errors.ErrCodeIO, err, "read %s", opts.Path)
	}

	cacheKey := r.Keyer.RecordsKey(cache.Hash(data), opts.RecordsKeyOpts(format))
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var records []*field.Record
			if err := json.Unmarshal(cached, &records); err == nil {
				cacheHooks.OnCacheHit(ctx, "records")
				return records, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, "records")
	}

	records, err := pkgio.Read(bytes.NewReader(data), format, opts.ReadOptions())
	if err != nil {
		return nil, false, err
	}

	if encoded, err := json.Marshal(records); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, encoded, cache.TTLRecords); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "records", len(encoded))
		}
	}
	return records, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]*field.Record, error) {
	records, _, err := r.LoadWithCacheInfo(ctx, opts)
	return records, err
}

// RenderWithCacheInfo generates artifacts with caching. It returns the
// artifacts, the layout hash used in the cache keys and whether every
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m *export.Model, records []*field.Record, opts Options) (map[string][]byte, string, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	hash, err := cache.HashRecords(records)
	if err != nil {
		return nil, "", false, errors.Wrap(errors.ErrCodeInternal, err, "hash records for cache key")
	}
	cacheHooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[format] = data
			cacheHooks.OnCacheHit(ctx, "artifact")
			continue
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, hash, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, m, records, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.artifactTTL()); err == nil {
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, hash, false, nil
}

func (r *Runner) artifactTTL() time.Duration {
	if r.ArtifactTTL > 0 {
		return r.ArtifactTTL
	}
	return cache.TTLArtifact
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

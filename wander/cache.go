package wander

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/ligature/ligature"
)

// globalCache stores parsed scripts keyed by the xxh3 hash of their source.
// Cached scripts are immutable and safe to share between evaluations.
var globalCache sync.Map

// sourceHash computes cache keys.
var sourceHash = xxh3.HashString

// entry tracks the parse of one source text. The source is kept so that a
// hash collision is detected instead of returning another source's script.
type entry struct {
	once   sync.Once
	source string
	script *Script
	err    error
}

// ParseReader parses Wander source from an io.Reader and returns the
// script. Parsed scripts are cached by content, so reading the same source
// again skips parsing.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Script, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ligature.WrapError(err).
			With(slog.String("source", "reader"))
	}

	return parseCached(ctx, string(data), opts...)
}

// parseCached parses source with caching.
func parseCached(ctx context.Context, source string, opts ...Option) (*Script, error) {
	cfg := makeConfig(opts...)

	hash := sourceHash(source)
	key := strconv.FormatUint(hash, 36)

	value, cacheHit := globalCache.LoadOrStore(key, &entry{source: source})

	e, ok := value.(*entry)
	if !ok {
		return nil, ligature.NewError("invalid cache entry").
			With(slog.String("key", key))
	}

	cfg.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", cacheHit))

	if e.source != source {
		cfg.logger.DebugContext(ctx, "cache collision, parsing uncached",
			slog.String("source_hash", strconv.FormatUint(hash, 16)))

		return Parse(ctx, source, opts...)
	}

	e.once.Do(func() {
		e.script, e.err = Parse(ctx, source, opts...)
	})

	return e.script, e.err
}

// ClearCache removes all cached scripts.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}

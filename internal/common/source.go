package common

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pagetools/brandsweep/pkg/caching"
	"github.com/pagetools/brandsweep/pkg/fetcher"
	"github.com/pagetools/brandsweep/pkg/storage"
)

// DefaultCacheDir is where raw fetched HTML is kept between runs.
const DefaultCacheDir = "bsw-cache"

// LoadSource resolves a document source to raw HTML. URLs go through the
// page cache (maxAge 0 forces a refetch); anything else is read as a local
// file. The loader never caches local files.
func LoadSource(source, cacheDir string, maxAge time.Duration, logger *slog.Logger) ([]byte, error) {
	if !fetcher.IsRemote(source) {
		s := &storage.Storage{}
		raw, err := s.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read source file: %w", err)
		}
		return raw, nil
	}

	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	cache, err := caching.NewCache(cacheDir, maxAge)
	if err != nil {
		return nil, err
	}

	if raw, ok := cache.Get(source); ok {
		logger.Info("using cached HTML", "source", source)
		return raw, nil
	}

	logger.Info("fetching source", "source", source)
	raw, err := fetcher.NewFetcher().GetHtmlBytes(source)
	if err != nil {
		return nil, err
	}

	if err := cache.Set(source, raw); err != nil {
		logger.Warn("failed to cache HTML", "source", source, "error", err)
	}

	return raw, nil
}

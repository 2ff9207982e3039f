package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hima_estates/internal/domain"
)

// AssetPaths lists every image the site references, deduplicated, in a
// stable order.
func AssetPaths(cat domain.Catalog, site Site) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; ok || p == "" {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, p := range site.HeroImages {
		add(p)
	}
	add(site.AboutImage)
	for _, p := range cat.All() {
		add(p.CoverImage)
		for _, img := range p.Images {
			add(img)
		}
	}
	return out
}

// MissingAssets stats each /images/ path under dir using at most workers
// concurrent checks and returns the ones that do not exist. Paths outside
// /images/ (absolute CDN URLs) are skipped.
func MissingAssets(ctx context.Context, dir string, paths []string, workers int) ([]string, error) {
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		missing  []string
		firstErr error
	)
	for _, p := range paths {
		rel, ok := strings.CutPrefix(p, "/images/")
		if !ok {
			log.Debug().Str("path", p).Msg("skipping non-local asset")
			continue
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(p, rel string) {
			defer wg.Done()
			defer sem.Release(1)

			_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
			case errors.Is(err, fs.ErrNotExist):
				missing = append(missing, p)
			case firstErr == nil:
				firstErr = err
			}
		}(p, rel)
	}
	wg.Wait()
	sort.Strings(missing)
	return missing, firstErr
}

package feed

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"remoteboard/internal/domain"
	"remoteboard/internal/store"
	"remoteboard/internal/util"
)

type LogoFetcher interface {
	Fetch(ctx context.Context, raw string) (store.Logo, error)
}

// PrewarmLogos loads every distinct company logo into the cache with at most
// workers downloads in flight. Failures are logged and skipped; it returns how
// many logos are now cached.
func PrewarmLogos(ctx context.Context, logos LogoFetcher, listings []domain.Listing, workers int) int {
	if workers <= 0 {
		workers = 4
	}

	seen := make(map[string]bool)
	var urls []string
	for _, l := range listings {
		u := util.CanonicalizeURL(l.CompanyLogoURL)
		if u == "" || seen[u] || !util.IsHTTPURL(u) {
			continue
		}
		seen[u] = true
		urls = append(urls, l.CompanyLogoURL)
	}

	var cached int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, u := range urls {
		u := u
		g.Go(func() error {
			if _, err := logos.Fetch(gctx, u); err != nil {
				log.Debug().Str("component", "logo-prewarm").Str("url", u).Err(err).Msg("skipped")
				return nil // best-effort: don't cancel siblings
			}
			atomic.AddInt32(&cached, 1)
			return nil
		})
	}
	_ = g.Wait()

	n := int(atomic.LoadInt32(&cached))
	log.Info().Str("component", "logo-prewarm").Int("logos", len(urls)).Int("cached", n).Msg("done")
	return n
}

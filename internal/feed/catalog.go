package feed

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"remoteboard/internal/domain"
	"remoteboard/internal/events"
	"remoteboard/internal/store"
)

// Catalog states.
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
	StateFailed  = "failed"
)

type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.Listing, error)
}

// Recorder receives one row per load attempt.
type Recorder interface {
	RecordFetch(ctx context.Context, run store.FetchRun) error
}

type Status struct {
	State      string `json:"state"`
	Source     string `json:"source"`
	Count      int    `json:"count"`
	StartedAt  string `json:"started_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	LastError  string `json:"last_error,omitempty"`
}

// Catalog holds the listing collection for the life of the process. It is
// filled by at most one fetch and never changes afterwards.
type Catalog struct {
	fetcher Fetcher
	source  string

	// Optional collaborators, set before Load.
	Recorder Recorder
	Hub      *events.Hub
	OnLoaded func(ctx context.Context, listings []domain.Listing)

	once     sync.Once
	done     chan struct{}
	err      error
	listings atomic.Pointer[[]domain.Listing]
	status   atomic.Value // Status
}

func NewCatalog(f Fetcher, source string) *Catalog {
	c := &Catalog{fetcher: f, source: source, done: make(chan struct{})}
	c.status.Store(Status{State: StateIdle, Source: source})
	return c
}

// Load fetches the feed the first time it is called. Later and concurrent calls
// wait for that first attempt and return its outcome without fetching again.
// A failure leaves the collection empty; the returned error is informational.
func (c *Catalog) Load(ctx context.Context) error {
	c.once.Do(func() {
		defer close(c.done)
		c.err = c.load(ctx)
	})
	return c.err
}

// Done is closed once the single load attempt has finished.
func (c *Catalog) Done() <-chan struct{} { return c.done }

func (c *Catalog) load(ctx context.Context) error {
	lg := log.With().Str("component", "feed").Str("url", c.source).Logger()

	started := time.Now()
	c.status.Store(Status{State: StateLoading, Source: c.source, StartedAt: started.UTC().Format(time.RFC3339)})
	lg.Info().Msg("fetching listings")

	listings, err := c.fetcher.Fetch(ctx)
	finished := time.Now()

	st := Status{
		Source:     c.source,
		StartedAt:  started.UTC().Format(time.RFC3339),
		FinishedAt: finished.UTC().Format(time.RFC3339),
		DurationMs: finished.Sub(started).Milliseconds(),
	}
	run := store.FetchRun{URL: c.source, StartedAt: started, FinishedAt: finished}

	if err != nil {
		st.State = StateFailed
		st.LastError = err.Error()
		run.Error = err.Error()
		var fe *FetchError
		if errors.As(err, &fe) {
			run.StatusCode = fe.StatusCode
		}
		c.status.Store(st)

		lg.Error().Err(err).Int64("dur_ms", st.DurationMs).Msg("feed fetch failed; serving no listings")
		c.record(ctx, run)
		if c.Hub != nil {
			c.Hub.Emit(events.TypeFeedFailed, map[string]any{"error": err.Error()})
		}
		return err
	}

	if listings == nil {
		listings = []domain.Listing{}
	}
	c.listings.Store(&listings)

	st.State = StateReady
	st.Count = len(listings)
	run.OK = true
	run.StatusCode = 200
	run.Count = len(listings)
	c.status.Store(st)

	lg.Info().Int("count", len(listings)).Int64("dur_ms", st.DurationMs).Msg("feed loaded")
	c.record(ctx, run)
	if c.Hub != nil {
		c.Hub.Emit(events.TypeFeedLoaded, map[string]any{"count": len(listings)})
	}
	if c.OnLoaded != nil {
		go c.OnLoaded(context.WithoutCancel(ctx), listings)
	}
	return nil
}

func (c *Catalog) record(ctx context.Context, run store.FetchRun) {
	if c.Recorder == nil {
		return
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := c.Recorder.RecordFetch(rctx, run); err != nil {
		log.Warn().Str("component", "feed").Err(err).Msg("could not record fetch run")
	}
}

// Listings returns a copy of the current collection; empty until a load succeeds.
func (c *Catalog) Listings() []domain.Listing {
	p := c.listings.Load()
	if p == nil {
		return []domain.Listing{}
	}
	return slices.Clone(*p)
}

// Find returns the listing with the given id.
func (c *Catalog) Find(id string) (domain.Listing, bool) {
	p := c.listings.Load()
	if p == nil {
		return domain.Listing{}, false
	}
	for _, l := range *p {
		if l.ID.String() == id {
			return l, true
		}
	}
	return domain.Listing{}, false
}

func (c *Catalog) Status() Status {
	return c.status.Load().(Status)
}

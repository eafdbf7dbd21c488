// Package loader fetches the reference drug dataset, parses it, builds the
// token and phonetic indexes, and publishes a single readiness signal.
//
// Exactly one load runs per process regardless of how many callers race the
// first query: the in-flight load itself is coalesced through singleflight,
// and its completion is memoized behind the readiness channel. Fetch or
// parse failure degrades the engine to an empty record store — readiness is
// still signaled so that waiters never hang, and every search simply returns
// no results.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/medadhere/drugresolver/index"
	"github.com/medadhere/drugresolver/internal/errors"
	"github.com/medadhere/drugresolver/internal/metrics"
	"github.com/medadhere/drugresolver/model"
	"github.com/medadhere/drugresolver/services"
	"github.com/medadhere/drugresolver/store"
)

// recordFieldCount is the number of CSV columns a well-formed row carries:
// registration id, generic name, brand name, strength, form, category.
const recordFieldCount = 6

// FetchFunc retrieves the raw dataset. Tests inject one; production uses
// the HTTP fetcher built from Config.
type FetchFunc func(ctx context.Context) (io.ReadCloser, error)

// Config configures a Coordinator.
type Config struct {
	// URL of the CSV dataset. Ignored when Fetch is set.
	URL string
	// FetchTimeout bounds the HTTP fetch. Zero means 30s.
	FetchTimeout time.Duration
	// PrefixCap is passed through to the token index builder.
	PrefixCap int
	// Fetch overrides the HTTP fetcher (tests, alternative sources).
	Fetch FetchFunc
	// Metrics is optional; nil disables instrumentation.
	Metrics *metrics.Metrics
}

// Coordinator owns the record store and both indexes, and gates all access
// behind its one-time readiness transition: unloaded -> loading -> ready
// (possibly ready-degraded when the source was unavailable).
type Coordinator struct {
	cfg   Config
	fetch FetchFunc
	log   *slog.Logger
	group singleflight.Group

	// ready is closed exactly once, after the build finishes (or fails).
	// The close is the publication point for the fields below: waiters
	// must not touch them before the channel is closed.
	ready       chan struct{}
	recStore    *store.RecordStore
	tokenIdx    *index.TokenIndex
	phoneticIdx *index.PhoneticIndex
	failed      bool

	mu         sync.Mutex // guards loaded + Reset
	loaded     bool
	fetchCount atomic.Int64
}

// New creates an unloaded Coordinator. No I/O happens until the first
// EnsureLoaded call.
func New(cfg Config) *Coordinator {
	c := &Coordinator{
		cfg:   cfg,
		log:   slog.Default().With("component", "loader"),
		ready: make(chan struct{}),
	}
	c.fetch = cfg.Fetch
	if c.fetch == nil {
		c.fetch = c.httpFetch
	}
	return c
}

// EnsureLoaded triggers the one-time fetch+parse+build if it has not run
// yet and returns the full record list once available. Concurrent callers —
// including ones arriving mid-build — share the same in-flight load.
//
// The build itself is never cancelled by a caller's context: a caller that
// gives up waiting gets ctx.Err(), while the shared build runs to
// completion for everyone else.
func (c *Coordinator) EnsureLoaded(ctx context.Context) ([]model.Record, error) {
	select {
	case <-c.ready:
		return c.recStore.All(), nil
	default:
	}

	ch := c.group.DoChan("load", func() (interface{}, error) {
		c.load()
		return nil, nil
	})

	select {
	case <-ch:
		return c.recStore.All(), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", errors.ErrNotReady, ctx.Err())
	}
}

// Ready returns the readiness channel. It is closed once both indexes are
// fully built; any number of waiters may select on it.
func (c *Coordinator) Ready() <-chan struct{} { return c.ready }

// WaitReady blocks until the indexes are built or ctx is done. It does not
// itself trigger a load.
func (c *Coordinator) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", errors.ErrNotReady, ctx.Err())
	}
}

// Store returns the record store. Valid only after Ready.
func (c *Coordinator) Store() *store.RecordStore { return c.recStore }

// TokenIndex returns the token index. Valid only after Ready.
func (c *Coordinator) TokenIndex() *index.TokenIndex { return c.tokenIdx }

// PhoneticIndex returns the phonetic index. Valid only after Ready.
func (c *Coordinator) PhoneticIndex() *index.PhoneticIndex { return c.phoneticIdx }

// Status reports the lifecycle position for health checks.
func (c *Coordinator) Status() services.EngineStatus {
	select {
	case <-c.ready:
		return services.EngineStatus{
			Ready:       true,
			Degraded:    c.failed,
			RecordCount: c.recStore.Len(),
		}
	default:
		return services.EngineStatus{}
	}
}

// FetchCount reports how many times the source was actually fetched. Tests
// use it to assert the exactly-once load guarantee.
func (c *Coordinator) FetchCount() int64 { return c.fetchCount.Load() }

// Reset returns the Coordinator to its untouched state so the next
// EnsureLoaded reloads from the source. Intended for tests and for explicit
// operator-driven refresh; it must not race in-flight queries.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.group.Forget("load")
	c.ready = make(chan struct{})
	c.recStore = nil
	c.tokenIdx = nil
	c.phoneticIdx = nil
	c.failed = false
	c.loaded = false
}

// load runs the whole pipeline and closes the readiness channel. It runs on
// a background context so that an abandoning caller cannot cancel the
// shared build.
func (c *Coordinator) load() {
	c.mu.Lock()
	if c.loaded {
		c.mu.Unlock()
		return
	}
	c.loaded = true
	ready := c.ready
	c.mu.Unlock()

	start := time.Now()
	records, err := c.fetchAndParse()
	if err != nil {
		// Degrade locally: an empty dataset, not an error surface.
		c.failed = true
		records = nil
		c.log.Error("dataset load failed, continuing with empty dataset",
			"error", errors.NewSourceError(c.cfg.URL, err))
		if c.cfg.Metrics != nil {
			c.cfg.Metrics.FetchesTotal.WithLabelValues("error").Inc()
		}
	} else if c.cfg.Metrics != nil {
		c.cfg.Metrics.FetchesTotal.WithLabelValues("ok").Inc()
	}

	c.recStore = store.NewRecordStore(records)

	// The two indexes derive independently from the record slice; build
	// them in parallel.
	var g errgroup.Group
	g.Go(func() error {
		c.tokenIdx = index.BuildTokenIndex(records, c.cfg.PrefixCap)
		return nil
	})
	g.Go(func() error {
		c.phoneticIdx = index.BuildPhoneticIndex(records)
		return nil
	})
	_ = g.Wait()

	if c.cfg.Metrics != nil {
		c.cfg.Metrics.LoadDuration.Observe(time.Since(start).Seconds())
		c.cfg.Metrics.RecordCount.Set(float64(len(records)))
	}
	c.log.Info("dataset indexed",
		"records", len(records),
		"terms", c.tokenIdx.TermCount(),
		"phonetic_codes", c.phoneticIdx.CodeCount(),
		"took", time.Since(start))

	close(ready)
}

// fetchAndParse retrieves the CSV source and parses it into records.
func (c *Coordinator) fetchAndParse() ([]model.Record, error) {
	timeout := c.cfg.FetchTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c.fetchCount.Add(1)
	body, err := c.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			c.log.Warn("failed to close dataset body", "error", closeErr)
		}
	}()

	return parseCSV(body)
}

// httpFetch is the default FetchFunc: a plain GET of the configured URL.
func (c *Coordinator) httpFetch(ctx context.Context) (io.ReadCloser, error) {
	if c.cfg.URL == "" {
		return nil, fmt.Errorf("no dataset URL configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from dataset source", resp.StatusCode)
	}
	return resp.Body, nil
}

// parseCSV reads the dataset rows. The first line is a header and is
// skipped; quoted fields may contain the separator; rows with fewer than
// recordFieldCount fields are skipped rather than fatal.
func parseCSV(r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row length enforced below, short rows skipped

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset CSV: %w", err)
	}

	records := make([]model.Record, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < recordFieldCount {
			continue
		}
		rec := model.Record{
			RegistrationID: strings.TrimSpace(row[0]),
			GenericName:    strings.TrimSpace(row[1]),
			BrandName:      strings.TrimSpace(row[2]),
			Strength:       strings.TrimSpace(row[3]),
			Form:           strings.TrimSpace(row[4]),
			Category:       strings.TrimSpace(row[5]),
		}
		if rec.GenericName == "" && rec.BrandName == "" {
			continue // nothing to index
		}
		records = append(records, rec)
	}
	return records, nil
}

package catalog

import (
	"context"
	"log/slog"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/trovia/trovia/core"
)

// DefaultDelay is the simulated fetch latency.
const DefaultDelay = 600 * time.Millisecond

const cacheKey = "catalog"

// Loader performs the simulated asynchronous catalog fetch: a fixed
// delay followed by either the dataset or a configured failure. A loaded
// catalog is cached so repeat loads within a session are immediate.
type Loader struct {
	dataset []core.Provider
	delay   time.Duration
	failure error
	cache   *gocache.Cache
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithDelay sets the simulated fetch delay. Default is DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(l *Loader) {
		if d < 0 {
			d = 0
		}
		l.delay = d
	}
}

// WithFailure makes every uncached load fail with err after the delay.
// Passing nil injects ErrLoadFailed.
func WithFailure(err error) Option {
	return func(l *Loader) {
		if err == nil {
			err = ErrLoadFailed
		}
		l.failure = err
	}
}

// WithCacheTTL bounds how long a loaded catalog stays cached.
// Default is no expiration for the lifetime of the Loader.
func WithCacheTTL(ttl time.Duration) Option {
	return func(l *Loader) {
		l.cache = gocache.New(ttl, 2*ttl)
	}
}

// WithDataset replaces the bundled dataset. Used by tests.
func WithDataset(records []core.Provider) Option {
	return func(l *Loader) {
		l.dataset = slices.Clone(records)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// NewLoader creates a catalog loader over the bundled dataset.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		dataset: Dataset(),
		delay:   DefaultDelay,
		cache:   gocache.New(gocache.NoExpiration, 0),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the catalog after the simulated delay. Cancelling ctx
// before the delay elapses abandons the load and returns ctx.Err().
func (l *Loader) Load(ctx context.Context) ([]core.Provider, error) {
	if cached, ok := l.cache.Get(cacheKey); ok {
		return slices.Clone(cached.([]core.Provider)), nil
	}

	if l.delay > 0 {
		timer := time.NewTimer(l.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if l.failure != nil {
		l.logger.Warn("catalog load failed", "err", l.failure)
		return nil, l.failure
	}

	l.cache.Set(cacheKey, slices.Clone(l.dataset), gocache.DefaultExpiration)
	l.logger.Debug("catalog loaded", "records", len(l.dataset))
	return slices.Clone(l.dataset), nil
}

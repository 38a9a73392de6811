package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/trovia/trovia/core"
	"github.com/trovia/trovia/storage"
)

// Pipeline validates and imports vendor submissions.
type Pipeline struct {
	vendors storage.VendorRepository
	pool    *ants.Pool
	logger  *slog.Logger
}

// Rejected pairs a submitted record with the validation error that
// excluded it from the batch.
type Rejected struct {
	Record core.Provider
	Err    error
}

// Report summarizes a Submit call.
type Report struct {
	Accepted []core.Provider
	Rejected []Rejected
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent validation.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new vendor-submission pipeline.
func NewPipeline(vendors storage.VendorRepository, opts ...Option) (*Pipeline, error) {
	if vendors == nil {
		return nil, ErrVendorRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		vendors: vendors,
		pool:    pool,
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// Release frees the worker pool.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Submit validates each record concurrently, normalizes the accepted
// ones, and writes them through the vendor repository in a single batch.
// Rejections are reported per record and never fail the call; Submit
// returns an error only when the final write fails.
func (p *Pipeline) Submit(ctx context.Context, records []core.Provider) (*Report, error) {
	report := &Report{}
	if len(records) == 0 {
		return report, nil
	}

	type outcome struct {
		index  int
		record core.Provider
		err    error
	}

	outcomes := make([]outcome, len(records))
	var wg sync.WaitGroup

	for i, record := range records {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			err := core.ValidateProvider(&record)
			outcomes[i] = outcome{index: i, record: record, err: err}
		})
		if submitErr != nil {
			// Pool rejected the task (released or overloaded); validate
			// inline so the record is not silently dropped.
			err := core.ValidateProvider(&record)
			outcomes[i] = outcome{index: i, record: record, err: err}
			wg.Done()
		}
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, o := range outcomes {
		if o.err != nil {
			p.logger.Warn("rejecting vendor submission", "name", o.record.Name, "err", o.err)
			report.Rejected = append(report.Rejected, Rejected{Record: o.record, Err: o.err})
			continue
		}
		report.Accepted = append(report.Accepted, p.normalize(o.record, seen))
	}

	if len(report.Accepted) == 0 {
		return report, nil
	}

	if err := p.vendors.Add(ctx, report.Accepted...); err != nil {
		return nil, err
	}

	p.logger.Info("vendor submissions imported",
		"accepted", len(report.Accepted),
		"rejected", len(report.Rejected))
	return report, nil
}

// normalize tags the record as vendor-sourced and assigns an ID when the
// submission carries none: a deterministic content hash, or a random UUID
// when the hash collides within the batch.
func (p *Pipeline) normalize(record core.Provider, seen map[string]bool) core.Provider {
	record.Source = core.SourceVendor
	record.IsVendor = true

	if record.ID == "" {
		record.ID = core.IDFromContent(record.Name + "|" + record.Category + "|" + record.Location)
	}
	if seen[record.ID] {
		record.ID = uuid.NewString()
	}
	seen[record.ID] = true
	return record
}

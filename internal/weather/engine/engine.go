package engine

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Options tune a computation. Zero values select the defaults.
type Options struct {
	Workers     int // parallel scanners; defaults to runtime.NumCPU()
	MaxStations int // distinct names per worker table; defaults to DefaultMaxStations
	BlockSize   int // per-worker read buffer; defaults to DefaultBlockSize
}

// Engine runs one-shot aggregations.
type Engine struct {
	workers     int
	maxStations int
	blockSize   int
}

// New returns an Engine using opts.
func New(opts Options) *Engine {
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.MaxStations < 1 {
		opts.MaxStations = DefaultMaxStations
	}
	if opts.BlockSize < 1 {
		opts.BlockSize = DefaultBlockSize
	}

	return &Engine{
		workers:     opts.Workers,
		maxStations: opts.MaxStations,
		blockSize:   opts.BlockSize,
	}
}

// Workers returns the number of scanners a computation uses.
func (e *Engine) Workers() int {
	return e.workers
}

// Compute aggregates the file at path.
func (e *Engine) Compute(ctx context.Context, path string) (*Final, error) {
	src, err := OpenSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return e.ComputeSource(ctx, src)
}

// ComputeSource aggregates src. The first worker failure cancels the rest and
// is returned; no partial result is produced.
func (e *Engine) ComputeSource(ctx context.Context, src Source) (*Final, error) {
	start := time.Now()
	ranges := Partition(src, e.workers)
	tables := make([]*Table, len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		g.Go(func() error {
			t := NewTable(0, e.maxStations)
			if r.Len() > 0 {
				if err := Aggregate(gctx, src, r, t, make([]byte, e.blockSize)); err != nil {
					return err
				}
			}

			slog.DebugContext(gctx, "worker finished", "worker", i, "start", r.Start, "end", r.End, "stations", t.Len())
			tables[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	final := Merge(tables...)

	slog.InfoContext(ctx, "aggregation finished",
		"workers", len(ranges),
		"bytes", src.Len(),
		"stations", final.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return final, nil
}

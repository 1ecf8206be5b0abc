// Package batch provides chunked parallel aggregation over footprint
// records. Because stats merging is associative and commutative, a large
// history can be split into chunks, aggregated concurrently, and merged
// without affecting the result.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/freightprint/internal/engine"
)

// Chunk size bounds.
const (
	// DefaultChunkSize is the default number of records per chunk.
	DefaultChunkSize = 256

	// MinChunkSize is the minimum allowed chunk size.
	MinChunkSize = 1

	// MaxChunkSize is the maximum allowed chunk size.
	MaxChunkSize = 100_000
)

// ErrInvalidChunkSize indicates a chunk size outside the allowed bounds.
var ErrInvalidChunkSize = errors.New("chunk size must be between 1 and 100000")

// Reducer aggregates footprint records chunk by chunk, running chunks
// concurrently up to the number of CPUs.
type Reducer struct {
	chunkSize int
}

// NewReducer creates a Reducer with the given chunk size.
func NewReducer(chunkSize int) (*Reducer, error) {
	if chunkSize < MinChunkSize || chunkSize > MaxChunkSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, chunkSize)
	}
	return &Reducer{chunkSize: chunkSize}, nil
}

// NewReducerWithDefaults creates a Reducer with the default chunk size.
func NewReducerWithDefaults() *Reducer {
	return &Reducer{chunkSize: DefaultChunkSize}
}

// Aggregate reduces records to UserStats. Chunks are aggregated in
// parallel and merged; the result is identical to engine.Aggregate over
// the whole slice. Returns the context error if ctx is canceled before
// completion.
func (r *Reducer) Aggregate(ctx context.Context, records []engine.FootprintRecord) (engine.UserStats, error) {
	if len(records) <= r.chunkSize {
		return engine.Aggregate(records), nil
	}

	chunkCount := (len(records) + r.chunkSize - 1) / r.chunkSize
	partials := make([]engine.UserStats, chunkCount)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < chunkCount; i++ {
		start := i * r.chunkSize
		end := start + r.chunkSize
		if end > len(records) {
			end = len(records)
		}

		chunk := records[start:end]
		idx := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns a distinct slot; no locking needed.
			partials[idx] = engine.Aggregate(chunk)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return engine.UserStats{}, err
	}

	var total engine.UserStats
	for _, p := range partials {
		total = engine.Merge(total, p)
	}
	return total, nil
}

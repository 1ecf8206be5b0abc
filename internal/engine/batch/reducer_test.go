package batch

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/freightprint/internal/engine"
)

func makeRecords(n int, seed int64) []engine.FootprintRecord {
	rng := rand.New(rand.NewSource(seed))
	records := make([]engine.FootprintRecord, n)
	for i := range records {
		records[i] = engine.FootprintRecord{
			CarbonKg:   rng.Float64() * 1000,
			DistanceKm: rng.Float64() * 10000,
		}
	}
	return records
}

func TestNewReducerBounds(t *testing.T) {
	_, err := NewReducer(0)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)

	_, err = NewReducer(MaxChunkSize + 1)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)

	r, err := NewReducer(10)
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestAggregateMatchesSequential(t *testing.T) {
	records := makeRecords(1000, 42)

	r, err := NewReducer(64)
	require.NoError(t, err)

	got, err := r.Aggregate(context.Background(), records)
	require.NoError(t, err)

	want := engine.Aggregate(records)
	assert.Equal(t, want.CalculationCount, got.CalculationCount)
	assert.InDelta(t, want.TotalCarbonKg, got.TotalCarbonKg, 1e-6)
	assert.InDelta(t, want.TotalDistanceKm, got.TotalDistanceKm, 1e-6)
	assert.Equal(t, want.TreesNeeded, got.TreesNeeded)
}

func TestAggregateSmallInputSkipsChunking(t *testing.T) {
	records := makeRecords(10, 7)

	got, err := NewReducerWithDefaults().Aggregate(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, engine.Aggregate(records), got)
}

func TestAggregateEmpty(t *testing.T) {
	got, err := NewReducerWithDefaults().Aggregate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, engine.UserStats{}, got)
}

func TestAggregateCanceledContext(t *testing.T) {
	records := makeRecords(5000, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := NewReducer(MinChunkSize)
	require.NoError(t, err)

	_, err = r.Aggregate(ctx, records)
	assert.ErrorIs(t, err, context.Canceled)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/freightprint/internal/emission"
	"github.com/rshade/freightprint/internal/engine"
	"github.com/rshade/freightprint/internal/store"
)

func newService(t *testing.T, policy engine.ValidationPolicy) *Service {
	t.Helper()
	calc := engine.NewCalculator(engine.WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}))
	return New(calc, store.NewMemoryStore(), policy, zerolog.Nop())
}

func shipRequest() engine.ShipmentRequest {
	return engine.ShipmentRequest{
		Quantity:         10,
		UnitWeightTonnes: 2,
		Mode:             emission.ModeTrain,
		Origin:           engine.Place{Label: "Hamburg, DE"},
		Destination:      engine.Place{Label: "Warsaw, PL"},
	}
}

func TestCalculateSavesRecord(t *testing.T) {
	s := newService(t, engine.ValidationPolicy{})
	ctx := context.Background()

	rec, err := s.Calculate(ctx, "user-1", shipRequest())
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "user-1", got.UserID)
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	s := newService(t, engine.ValidationPolicy{})
	ctx := context.Background()

	req := shipRequest()
	req.Quantity = -1

	_, err := s.Calculate(ctx, "user-1", req)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNonPositiveQuantity)

	// Nothing was persisted.
	records, err := s.History(ctx, "user-1", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCalculateStrictFuelPolicy(t *testing.T) {
	s := newService(t, engine.ValidationPolicy{StrictFuelBlend: true})

	req := shipRequest()
	req.Mode = emission.ModeTruck
	req.FuelBlend = nil

	_, err := s.Calculate(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, engine.ErrEmptyFuelBlend)
}

func TestHistoryNewestFirst(t *testing.T) {
	s := newService(t, engine.ValidationPolicy{})
	ctx := context.Background()

	first, err := s.Calculate(ctx, "user-1", shipRequest())
	require.NoError(t, err)
	second, err := s.Calculate(ctx, "user-1", shipRequest())
	require.NoError(t, err)

	records, err := s.History(ctx, "user-1", 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Same timestamp (fixed clock), so ULID ordering decides.
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestDeleteOwnership(t *testing.T) {
	s := newService(t, engine.ValidationPolicy{})
	ctx := context.Background()

	rec, err := s.Calculate(ctx, "user-1", shipRequest())
	require.NoError(t, err)

	err = s.Delete(ctx, rec.ID, "intruder")
	assert.ErrorIs(t, err, store.ErrUnauthorized)

	require.NoError(t, s.Delete(ctx, rec.ID, "user-1"))
	err = s.Delete(ctx, rec.ID, "user-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStatsAggregatesFreshSnapshot(t *testing.T) {
	s := newService(t, engine.ValidationPolicy{})
	ctx := context.Background()

	stats, err := s.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, engine.UserStats{}, stats)

	rec1, err := s.Calculate(ctx, "user-1", shipRequest())
	require.NoError(t, err)
	rec2, err := s.Calculate(ctx, "user-1", shipRequest())
	require.NoError(t, err)

	stats, err = s.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CalculationCount)
	assert.InDelta(t, rec1.CarbonKg+rec2.CarbonKg, stats.TotalCarbonKg, 1e-9)
	assert.InDelta(t, rec1.DistanceKm+rec2.DistanceKm, stats.TotalDistanceKm, 1e-9)
	assert.Equal(t, engine.TreesToOffset(stats.TotalCarbonKg), stats.TreesNeeded)

	// Deleting a record is reflected on the next stats call.
	require.NoError(t, s.Delete(ctx, rec1.ID, "user-1"))
	stats, err = s.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CalculationCount)
}

type failingStore struct{ store.Store }

var errStorage = errors.New("storage offline")

func (f failingStore) Save(context.Context, engine.FootprintRecord) (string, error) {
	return "", errStorage
}

func TestStorageFailureSurfacesAsIOError(t *testing.T) {
	calc := engine.NewCalculator()
	s := New(calc, failingStore{}, engine.ValidationPolicy{}, zerolog.Nop())

	_, err := s.Calculate(context.Background(), "user-1", shipRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, errStorage)
	// Distinct from validation errors.
	assert.NotErrorIs(t, err, engine.ErrNonPositiveQuantity)
}

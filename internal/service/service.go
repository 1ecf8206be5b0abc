// Package service wires the calculation engine to the record store and
// exposes the operations of the invocation boundary: calculate, history,
// stats, and delete. It owns validation and logging; the engine below it
// stays pure.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/freightprint/internal/engine"
	"github.com/rshade/freightprint/internal/engine/batch"
	"github.com/rshade/freightprint/internal/store"
)

// parallelStatsThreshold is the history size above which aggregation
// switches to the chunked parallel reducer.
const parallelStatsThreshold = 1024

// Service coordinates calculations and history access for users.
type Service struct {
	calc    *engine.Calculator
	store   store.Store
	policy  engine.ValidationPolicy
	reducer *batch.Reducer
	logger  zerolog.Logger
}

// New creates a Service. The store is the only stateful collaborator;
// everything else is pure calculation policy.
func New(calc *engine.Calculator, st store.Store, policy engine.ValidationPolicy, logger zerolog.Logger) *Service {
	return &Service{
		calc:    calc,
		store:   st,
		policy:  policy,
		reducer: batch.NewReducerWithDefaults(),
		logger:  logger,
	}
}

// Calculate validates the request, computes the footprint record, and
// persists it exactly once. Validation failures surface as InvalidInput
// sentinels from the engine package; storage failures are wrapped I/O
// errors, never silently substituted records.
func (s *Service) Calculate(ctx context.Context, userID string, req engine.ShipmentRequest) (engine.FootprintRecord, error) {
	if err := s.policy.Validate(req); err != nil {
		return engine.FootprintRecord{}, fmt.Errorf("invalid shipment request: %w", err)
	}

	rec := s.calc.Calculate(userID, req)

	if _, err := s.store.Save(ctx, rec); err != nil {
		return engine.FootprintRecord{}, fmt.Errorf("saving calculation record: %w", err)
	}

	s.logger.Info().
		Str("record_id", rec.ID).
		Str("user_id", userID).
		Str("transport_mode", string(rec.Mode)).
		Float64("carbon_kg", rec.CarbonKg).
		Float64("distance_km", rec.DistanceKm).
		Msg("calculation saved")

	return rec, nil
}

// History returns the user's records newest first.
func (s *Service) History(ctx context.Context, userID string, limit, offset int) ([]engine.FootprintRecord, error) {
	records, err := s.store.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing calculation records: %w", err)
	}
	return records, nil
}

// Get returns a single record by id.
func (s *Service) Get(ctx context.Context, id string) (engine.FootprintRecord, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return engine.FootprintRecord{}, fmt.Errorf("loading calculation record: %w", err)
	}
	return rec, nil
}

// Delete removes a record owned by userID. Ownership violations surface
// as store.ErrUnauthorized.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.store.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("deleting calculation record: %w", err)
	}

	s.logger.Info().
		Str("record_id", id).
		Str("user_id", userID).
		Msg("calculation deleted")
	return nil
}

// Stats aggregates the user's full history into statistics. The store
// read is treated as a snapshot and the aggregate is recomputed fresh on
// every call; identical record sets always yield identical stats. Large
// histories are reduced in parallel chunks.
func (s *Service) Stats(ctx context.Context, userID string) (engine.UserStats, error) {
	records, err := s.store.ListByUser(ctx, userID, 0, 0)
	if err != nil {
		return engine.UserStats{}, fmt.Errorf("loading records for stats: %w", err)
	}

	if len(records) <= parallelStatsThreshold {
		return engine.Aggregate(records), nil
	}
	return s.reducer.Aggregate(ctx, records)
}

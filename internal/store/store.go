// Package store persists footprint records. The engine calls Save once
// per calculation and never mutates a stored record afterwards; reads
// are snapshots, so the aggregation layer needs no locking discipline.
package store

import (
	"context"
	"errors"

	"github.com/rshade/freightprint/internal/engine"
)

// Sentinel errors for record lookup and deletion.
var (
	// ErrNotFound indicates no record exists with the requested id.
	ErrNotFound = errors.New("calculation record not found")

	// ErrUnauthorized indicates the record exists but belongs to a
	// different user.
	ErrUnauthorized = errors.New("calculation record owned by another user")
)

// Store is the calculation record collaborator boundary.
type Store interface {
	// Save persists a record and returns its id. Records are written
	// exactly once; Save never overwrites.
	Save(ctx context.Context, rec engine.FootprintRecord) (string, error)

	// ListByUser returns a user's records newest first. A limit <= 0
	// returns all records from offset onward.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]engine.FootprintRecord, error)

	// GetByID returns a single record or ErrNotFound.
	GetByID(ctx context.Context, id string) (engine.FootprintRecord, error)

	// Delete removes a record owned by userID. Returns ErrNotFound for
	// unknown ids and ErrUnauthorized for ownership mismatches.
	Delete(ctx context.Context, id, userID string) error

	// Close releases any underlying resources.
	Close() error
}

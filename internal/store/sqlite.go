package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rshade/freightprint/internal/emission"
	"github.com/rshade/freightprint/internal/engine"
	"github.com/rshade/freightprint/internal/geo"
)

const schema = `
CREATE TABLE IF NOT EXISTS footprint_records (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	origin_lat REAL,
	origin_lon REAL,
	dest_lat REAL,
	dest_lon REAL,
	transport_mode TEXT NOT NULL,
	fuel_blend TEXT NOT NULL DEFAULT '',
	cooled INTEGER NOT NULL,
	total_weight_t REAL NOT NULL,
	distance_km REAL NOT NULL,
	emission_factor REAL NOT NULL,
	carbon_kg REAL NOT NULL,
	trees_needed INTEGER NOT NULL,
	transport_cost REAL NOT NULL,
	carbon_offset_cost REAL NOT NULL,
	total_cost REAL NOT NULL,
	currency TEXT NOT NULL,
	calculated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_footprint_records_user
	ON footprint_records(user_id, calculated_at DESC, id DESC);
`

const recordColumns = `id, user_id, origin, destination,
	origin_lat, origin_lon, dest_lat, dest_lon,
	transport_mode, fuel_blend, cooled,
	total_weight_t, distance_km, emission_factor, carbon_kg, trees_needed,
	transport_cost, carbon_offset_cost, total_cost, currency, calculated_at`

// SQLiteStore persists footprint records in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the database at path and
// ensures the record schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating footprint_records table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save inserts the record. Records are immutable once written.
func (s *SQLiteStore) Save(ctx context.Context, rec engine.FootprintRecord) (string, error) {
	var originLat, originLon, destLat, destLon sql.NullFloat64
	if rec.OriginCoords != nil {
		originLat = sql.NullFloat64{Float64: rec.OriginCoords.Latitude, Valid: true}
		originLon = sql.NullFloat64{Float64: rec.OriginCoords.Longitude, Valid: true}
	}
	if rec.DestCoords != nil {
		destLat = sql.NullFloat64{Float64: rec.DestCoords.Latitude, Valid: true}
		destLon = sql.NullFloat64{Float64: rec.DestCoords.Longitude, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO footprint_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Origin, rec.Destination,
		originLat, originLon, destLat, destLon,
		string(rec.Mode), joinBlend(rec.FuelBlend), boolToInt(rec.Cooled),
		rec.TotalWeightT, rec.DistanceKm, rec.EmissionFactor, rec.CarbonKg, rec.TreesNeeded,
		rec.TransportCost, rec.CarbonOffsetCost, rec.TotalCost, rec.Currency,
		rec.CalculatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("inserting record: %w", err)
	}
	return rec.ID, nil
}

// ListByUser returns the user's records newest first with limit/offset
// pagination. A limit <= 0 returns everything from offset onward.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]engine.FootprintRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM footprint_records
		WHERE user_id = ?
		ORDER BY calculated_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []engine.FootprintRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// GetByID returns a single record or ErrNotFound.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (engine.FootprintRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM footprint_records
		WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.FootprintRecord{}, ErrNotFound
	}
	if err != nil {
		return engine.FootprintRecord{}, err
	}
	return rec, nil
}

// Delete removes a record owned by userID. The delete is a single
// owner-scoped statement, so success means this call removed the row;
// a row deleted concurrently reports ErrNotFound, not success.
func (s *SQLiteStore) Delete(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM footprint_records WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing deleted: absent record or foreign owner.
	var one int
	err = s.db.QueryRowContext(ctx,
		`SELECT 1 FROM footprint_records WHERE id = ?`, id,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("looking up record owner: %w", err)
	}
	return ErrUnauthorized
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (engine.FootprintRecord, error) {
	var (
		rec                                    engine.FootprintRecord
		originLat, originLon, destLat, destLon sql.NullFloat64
		mode, blend, calculatedAt              string
		cooled                                 int
	)

	err := sc.Scan(
		&rec.ID, &rec.UserID, &rec.Origin, &rec.Destination,
		&originLat, &originLon, &destLat, &destLon,
		&mode, &blend, &cooled,
		&rec.TotalWeightT, &rec.DistanceKm, &rec.EmissionFactor, &rec.CarbonKg, &rec.TreesNeeded,
		&rec.TransportCost, &rec.CarbonOffsetCost, &rec.TotalCost, &rec.Currency,
		&calculatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scanning record: %w", err)
	}

	rec.Mode = emission.Mode(mode)
	rec.FuelBlend = splitBlend(blend)
	rec.Cooled = cooled != 0

	if originLat.Valid && originLon.Valid {
		rec.OriginCoords = &geo.Coordinate{Latitude: originLat.Float64, Longitude: originLon.Float64}
	}
	if destLat.Valid && destLon.Valid {
		rec.DestCoords = &geo.Coordinate{Latitude: destLat.Float64, Longitude: destLon.Float64}
	}

	ts, err := time.Parse(time.RFC3339Nano, calculatedAt)
	if err != nil {
		return rec, fmt.Errorf("parsing calculated_at %q: %w", calculatedAt, err)
	}
	rec.CalculatedAt = ts

	return rec, nil
}

func joinBlend(blend []emission.Fuel) string {
	parts := make([]string, len(blend))
	for i, f := range blend {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

func splitBlend(s string) []emission.Fuel {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	blend := make([]emission.Fuel, len(parts))
	for i, p := range parts {
		blend[i] = emission.Fuel(p)
	}
	return blend
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

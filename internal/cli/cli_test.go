package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/freightprint/internal/engine"
)

// execute runs the root command against a temp database and returns its
// stdout.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd("test")
	full := append([]string{
		"--db", dbPath,
		"--config", filepath.Join(filepath.Dir(dbPath), "no-config.yaml"),
		"--user", "test-user",
	}, args...)
	root.SetArgs(full)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()
	return out.String(), err
}

func TestCalculateHistoryStatsFlow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "freightprint.db")

	out, err := execute(t, dbPath, "calculate",
		"--quantity", "10",
		"--unit-weight", "2",
		"--mode", "train",
		"--origin", "Hamburg",
		"--destination", "Warsaw",
		"--output", "json",
	)
	require.NoError(t, err)

	var rec engine.FootprintRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "test-user", rec.UserID)
	assert.InDelta(t, 20.0, rec.TotalWeightT, 1e-9)
	assert.InDelta(t, 0.03, rec.EmissionFactor, 1e-9)
	// Hamburg and Warsaw resolve through the gazetteer.
	require.NotNil(t, rec.OriginCoords)
	require.NotNil(t, rec.DestCoords)
	assert.InDelta(t, 750, rec.DistanceKm, 100)

	out, err = execute(t, dbPath, "history", "--output", "json")
	require.NoError(t, err)
	var records []engine.FootprintRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)

	out, err = execute(t, dbPath, "stats", "--output", "json")
	require.NoError(t, err)
	var stats engine.UserStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 1, stats.CalculationCount)
	assert.InDelta(t, rec.CarbonKg, stats.TotalCarbonKg, 1e-9)

	out, err = execute(t, dbPath, "history", "delete", rec.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted calculation")

	out, err = execute(t, dbPath, "stats", "--output", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Zero(t, stats.CalculationCount)
}

func TestCalculateUnresolvedLocationsFallBack(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "freightprint.db")

	out, err := execute(t, dbPath, "calculate",
		"--quantity", "1",
		"--unit-weight", "1",
		"--mode", "ship",
		"--origin", "Nowhereville",
		"--destination", "Lost City",
		"--output", "json",
	)
	require.NoError(t, err)

	var rec engine.FootprintRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Nil(t, rec.OriginCoords)
	assert.Nil(t, rec.DestCoords)
	assert.InDelta(t, engine.DefaultDistanceKm, rec.DistanceKm, 1e-9)
}

func TestCalculateRejectsInvalidQuantity(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "freightprint.db")

	_, err := execute(t, dbPath, "calculate",
		"--quantity", "-2",
		"--unit-weight", "1",
		"--mode", "ship",
		"--origin", "Hamburg",
		"--destination", "Warsaw",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNonPositiveQuantity)
}

func TestRejectsUnknownOutputFormat(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "freightprint.db")

	_, err := execute(t, dbPath, "stats", "--output", "jsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")

	_, err = execute(t, dbPath, "history", "--output", "yaml")
	assert.Error(t, err)
}

func TestHistoryRejectsBadSort(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "freightprint.db")

	_, err := execute(t, dbPath, "history", "--sort", "color:asc")
	assert.Error(t, err)
}

func TestDeleteUnknownRecord(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "freightprint.db")

	_, err := execute(t, dbPath, "history", "delete", "01JH3ZS4Y1T9GQ6MD0VMISSING")
	assert.Error(t, err)
}

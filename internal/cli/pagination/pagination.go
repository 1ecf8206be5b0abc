// Package pagination holds the history command's offset pagination and
// sort handling.
package pagination

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/freightprint/internal/engine"
)

// Pagination defaults and validation limits.
const (
	DefaultLimit  = 50
	MaxLimit      = 10000
	DefaultOffset = 0

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Validation errors.
var (
	ErrInvalidLimit     = errors.New("limit must be between 1 and 10000")
	ErrInvalidOffset    = errors.New("offset must be non-negative")
	ErrInvalidSortOrder = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrEmptySortField   = errors.New("sort field cannot be empty")
)

// Params holds the history listing flags.
type Params struct {
	Limit     int
	Offset    int
	SortField string
	SortOrder string
}

// NewParams returns Params with default values.
func NewParams() Params {
	return Params{
		Limit:     DefaultLimit,
		Offset:    DefaultOffset,
		SortOrder: SortOrderDesc,
	}
}

// Validate checks bounds and sort settings.
func (p Params) Validate() error {
	if p.Limit < 1 || p.Limit > MaxLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidOffset, p.Offset)
	}
	if p.SortOrder != SortOrderAsc && p.SortOrder != SortOrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, p.SortOrder)
	}
	if p.SortField != "" && !isValidField(p.SortField) {
		return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, p.SortField,
			strings.Join(ValidFields(), ", "))
	}
	return nil
}

// ParseSort parses "field" or "field:order" sort expressions.
func ParseSort(expr string) (string, string, error) {
	if strings.TrimSpace(expr) == "" {
		return "", SortOrderDesc, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > 2 {
		return "", "", fmt.Errorf("invalid sort format %q: use 'field' or 'field:order'", expr)
	}

	field := strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", ErrEmptySortField
	}

	order := SortOrderDesc
	if len(parts) == 2 {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

// ValidFields returns the sortable record fields in display order.
func ValidFields() []string {
	return []string{"date", "footprint", "distance", "weight", "cost"}
}

func isValidField(field string) bool {
	for _, f := range ValidFields() {
		if f == field {
			return true
		}
	}
	return false
}

// SortRecords returns a copy of records ordered by the params' sort
// field. An empty field keeps the store's newest-first order.
func SortRecords(records []engine.FootprintRecord, field, order string) []engine.FootprintRecord {
	if field == "" || !isValidField(field) {
		return records
	}

	sorted := make([]engine.FootprintRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			i, j = j, i
		}
		switch field {
		case "date":
			return sorted[i].CalculatedAt.Before(sorted[j].CalculatedAt)
		case "footprint":
			return sorted[i].CarbonKg < sorted[j].CarbonKg
		case "distance":
			return sorted[i].DistanceKm < sorted[j].DistanceKm
		case "weight":
			return sorted[i].TotalWeightT < sorted[j].TotalWeightT
		case "cost":
			return sorted[i].TotalCost < sorted[j].TotalCost
		default:
			return false
		}
	})

	return sorted
}

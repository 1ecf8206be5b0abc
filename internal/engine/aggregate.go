package engine

// Aggregate reduces a collection of footprint records into user-level
// statistics. It is a pure, order-independent reduction: sums are
// associative and commutative, so partial aggregates merged in any order
// yield the same result.
//
// TreesNeeded is recomputed from the total footprint, never summed from
// per-record tree counts, to avoid compounding per-record ceil rounding.
// Empty input yields all-zero stats, not an error.
func Aggregate(records []FootprintRecord) UserStats {
	var stats UserStats
	for i := range records {
		stats.CalculationCount++
		stats.TotalCarbonKg += records[i].CarbonKg
		stats.TotalDistanceKm += records[i].DistanceKm
	}
	stats.TreesNeeded = TreesToOffset(stats.TotalCarbonKg)
	return stats
}

// Merge combines two partial aggregates into one, re-deriving the tree
// count from the merged footprint total. Merge(Aggregate(a), Aggregate(b))
// equals Aggregate(append(a, b...)).
func Merge(a, b UserStats) UserStats {
	merged := UserStats{
		CalculationCount: a.CalculationCount + b.CalculationCount,
		TotalCarbonKg:    a.TotalCarbonKg + b.TotalCarbonKg,
		TotalDistanceKm:  a.TotalDistanceKm + b.TotalDistanceKm,
	}
	merged.TreesNeeded = TreesToOffset(merged.TotalCarbonKg)
	return merged
}

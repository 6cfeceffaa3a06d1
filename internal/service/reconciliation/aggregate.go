// Package reconciliation derives the bird and feed stock waterfalls and the
// profit breakdown from a snapshot of inventory records. Everything here is
// pure: no I/O, no shared state, safe for concurrent use.
package reconciliation

import "github.com/mamadbah2/poultry-stock/internal/domain/models"

// Aggregate sums birds, bags, weight and amount over records that the caller
// has already filtered. The stored amount is summed as is, never recomputed
// from rate and weight.
func Aggregate(records []models.StockRecord) models.Aggregate {
	var agg models.Aggregate
	for _, r := range records {
		agg.Records++
		agg.TotalBirds += r.Birds
		agg.TotalBags += r.Bags
		agg.TotalWeight += r.Weight
		agg.TotalAmount += r.Amount
	}
	return withAverages(agg)
}

// Merge adds the totals of b to a and re-derives the averages.
func Merge(a, b models.Aggregate) models.Aggregate {
	return withAverages(models.Aggregate{
		Records:     a.Records + b.Records,
		TotalBirds:  a.TotalBirds + b.TotalBirds,
		TotalBags:   a.TotalBags + b.TotalBags,
		TotalWeight: a.TotalWeight + b.TotalWeight,
		TotalAmount: a.TotalAmount + b.TotalAmount,
	})
}

func withAverages(agg models.Aggregate) models.Aggregate {
	agg.AvgWeight = 0
	if agg.TotalBirds > 0 {
		agg.AvgWeight = agg.TotalWeight / float64(agg.TotalBirds)
	}
	agg.AvgRate = 0
	if agg.TotalWeight > 0 {
		agg.AvgRate = agg.TotalAmount / agg.TotalWeight
	}
	return agg
}

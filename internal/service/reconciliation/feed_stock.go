package reconciliation

import "github.com/mamadbah2/poultry-stock/internal/domain/models"

// FeedStock derives the feed waterfall from the opening, purchased and consumed
// feed aggregates.
func FeedStock(opening, purchased, consumed models.Aggregate) models.FeedStock {
	closing := models.FeedRow{
		Bags:   opening.TotalBags + purchased.TotalBags - consumed.TotalBags,
		Weight: opening.TotalWeight + purchased.TotalWeight - consumed.TotalWeight,
		Amount: opening.TotalAmount + purchased.TotalAmount - consumed.TotalAmount,
	}
	closing.Rate = feedRate(closing.Amount, closing.Weight)

	return models.FeedStock{
		Opening:   feedRow(opening),
		Purchased: feedRow(purchased),
		Consumed:  feedRow(consumed),
		Closing:   closing,
	}
}

func feedRow(agg models.Aggregate) models.FeedRow {
	return models.FeedRow{
		Bags:   agg.TotalBags,
		Weight: agg.TotalWeight,
		Amount: agg.TotalAmount,
		Rate:   feedRate(agg.TotalAmount, agg.TotalWeight),
	}
}

func feedRate(amount, weight float64) float64 {
	if weight > 0 {
		return amount / weight
	}
	return 0
}

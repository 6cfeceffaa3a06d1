package reconciliation

import "github.com/mamadbah2/poultry-stock/internal/domain/models"

// ClosingStock derives the bird waterfall from the purchase side (opening and
// purchase records) and the sale side (sale and receipt records).
//
// Every line is valued at the purchase-side average rate. Mortality and closing
// birds are weighed at the sale-side average weight per bird. Natural weight
// loss is whatever gross weight is left after mortality, actual loss and
// closing stock, so it can come out negative.
//
// mortality and weightLoss may be nil; a missing record counts as zero.
func ClosingStock(purchase, sale models.Aggregate, mortality, weightLoss *models.StockRecord) models.ClosingStock {
	grossBirds := purchase.TotalBirds - sale.TotalBirds
	grossWeight := purchase.TotalWeight - sale.TotalWeight
	grossAvg := 0.0
	if grossBirds != 0 {
		grossAvg = grossWeight / float64(grossBirds)
	}
	rate := purchase.AvgRate
	grossTotal := rate * grossWeight

	mortBirds := 0
	if mortality != nil {
		mortBirds = mortality.Birds
	}
	mortAvg := sale.AvgWeight
	mortWeight := float64(mortBirds) * mortAvg
	mortTotal := rate * mortWeight

	actWeight := 0.0
	if weightLoss != nil {
		actWeight = weightLoss.Weight
	}
	actTotal := rate * actWeight

	closeBirds := grossBirds - mortBirds
	closeAvg := sale.AvgWeight
	closeWeight := float64(closeBirds) * closeAvg
	closeTotal := rate * closeWeight

	natWeight := grossWeight - mortWeight - actWeight - closeWeight
	natTotal := rate * natWeight

	return models.ClosingStock{
		Gross: models.WaterfallRow{
			Birds:     grossBirds,
			Weight:    grossWeight,
			AvgWeight: grossAvg,
			Rate:      rate,
			Total:     grossTotal,
		},
		Mortality: models.WaterfallRow{
			Birds:     mortBirds,
			Weight:    mortWeight,
			AvgWeight: mortAvg,
			Rate:      rate,
			Total:     mortTotal,
		},
		ActualWeightLoss: models.WaterfallRow{
			Weight: actWeight,
			Rate:   rate,
			Total:  actTotal,
		},
		NaturalWeightLoss: models.WaterfallRow{
			Weight: natWeight,
			Rate:   rate,
			Total:  natTotal,
		},
		Closing: models.WaterfallRow{
			Birds:     closeBirds,
			Weight:    closeWeight,
			AvgWeight: closeAvg,
			Rate:      rate,
			Total:     closeTotal,
		},
	}
}

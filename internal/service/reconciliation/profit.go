package reconciliation

import "github.com/mamadbah2/poultry-stock/internal/domain/models"

// Profit computes the net profit or loss of bird trading for the scope.
//
// The feed deduction is the previous period's consumed feed amount: feed eaten
// today is charged against the birds sold on the following day.
func Profit(purchase, sale models.Aggregate, stock models.ClosingStock, previousFeedConsumedAmount float64) models.ProfitBreakdown {
	margin := sale.AvgRate - purchase.AvgRate
	soldKg := sale.TotalWeight
	gross := soldKg * margin
	losses := stock.NaturalWeightLoss.Total + stock.ActualWeightLoss.Total + stock.Mortality.Total
	feed := previousFeedConsumedAmount

	return models.ProfitBreakdown{
		PurchaseRate:           purchase.AvgRate,
		SaleRate:               sale.AvgRate,
		MarginPerKg:            margin,
		BirdsSoldKg:            soldKg,
		GrossProfit:            gross,
		WeightLossAndMortality: losses,
		FeedConsumed:           feed,
		NetProfitLoss:          gross - losses - feed,
	}
}

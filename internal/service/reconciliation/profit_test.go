package reconciliation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfit_SimpleDay(t *testing.T) {
	purchase, sale, mortality, weightLoss := simpleDay()
	stock := ClosingStock(purchase, sale, &mortality, &weightLoss)

	p := Profit(purchase, sale, stock, 1000)

	assert.InDelta(t, 100, p.PurchaseRate, tolerance)
	assert.InDelta(t, 110, p.SaleRate, tolerance)
	assert.InDelta(t, 10, p.MarginPerKg, tolerance)
	assert.InDelta(t, 1850, p.BirdsSoldKg, tolerance)
	assert.InDelta(t, 18500, p.GrossProfit, 1e-6)
	assert.InDelta(t, stock.NaturalWeightLoss.Total+stock.ActualWeightLoss.Total+stock.Mortality.Total, p.WeightLossAndMortality, tolerance)
	assert.InDelta(t, 4722.22, p.WeightLossAndMortality, 0.005)
	assert.InDelta(t, 1000, p.FeedConsumed, tolerance)
	assert.InDelta(t, 12777.78, p.NetProfitLoss, 0.005)
}

func TestProfit_Deterministic(t *testing.T) {
	purchase, sale, mortality, weightLoss := simpleDay()
	stock := ClosingStock(purchase, sale, &mortality, &weightLoss)

	first := Profit(purchase, sale, stock, 873.25)
	second := Profit(purchase, sale, stock, 873.25)

	assert.Equal(t, first, second)
	assert.Equal(t, math.Float64bits(first.NetProfitLoss), math.Float64bits(second.NetProfitLoss))
}

func TestProfit_LossWhenSellingBelowCost(t *testing.T) {
	purchase, _, _, _ := simpleDay()
	sale := Aggregate(nil)
	sale.TotalWeight = 100
	sale.TotalAmount = 9000
	sale.AvgRate = 90

	stock := ClosingStock(purchase, sale, nil, nil)
	p := Profit(purchase, sale, stock, 0)

	assert.InDelta(t, -10, p.MarginPerKg, tolerance)
	assert.InDelta(t, -1000, p.GrossProfit, tolerance)
}

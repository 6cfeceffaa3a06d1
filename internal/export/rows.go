// Package export flattens a reconciliation report into (label, value) rows and
// writes them as an xlsx sheet or as Google Sheets values.
package export

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/poultry-stock/internal/domain/models"
)

// displayPlaces is the number of decimals shown for weights, rates and money.
const displayPlaces = 2

// Row is one (label, value) line of the export.
type Row struct {
	Label string
	Value decimal.Decimal
}

func count(label string, v int) Row {
	return Row{Label: label, Value: decimal.NewFromInt(int64(v))}
}

func figure(label string, v float64) Row {
	return Row{Label: label, Value: decimal.NewFromFloat(v).Round(displayPlaces)}
}

func aggregateRows(prefix string, a models.Aggregate) []Row {
	return []Row{
		count(prefix+" birds", a.TotalBirds),
		figure(prefix+" weight (kg)", a.TotalWeight),
		figure(prefix+" amount", a.TotalAmount),
		figure(prefix+" avg weight (kg/bird)", a.AvgWeight),
		figure(prefix+" avg rate (per kg)", a.AvgRate),
	}
}

func waterfallRows(prefix string, w models.WaterfallRow, withBirds bool) []Row {
	var rows []Row
	if withBirds {
		rows = append(rows, count(prefix+" birds", w.Birds))
	}
	rows = append(rows, figure(prefix+" weight (kg)", w.Weight))
	if withBirds {
		rows = append(rows, figure(prefix+" avg weight (kg/bird)", w.AvgWeight))
	}
	return append(rows,
		figure(prefix+" rate (per kg)", w.Rate),
		figure(prefix+" total", w.Total),
	)
}

func feedRows(prefix string, f models.FeedRow) []Row {
	return []Row{
		count(prefix+" bags", f.Bags),
		figure(prefix+" weight (kg)", f.Weight),
		figure(prefix+" amount", f.Amount),
		figure(prefix+" rate (per kg)", f.Rate),
	}
}

// Rows flattens every waterfall line and the profit breakdown, in display order.
func Rows(rec models.Reconciliation) []Row {
	var rows []Row

	rows = append(rows, aggregateRows("Purchased", rec.Purchase)...)
	rows = append(rows, aggregateRows("Sold", rec.Sale)...)

	s := rec.Stock
	rows = append(rows, waterfallRows("Gross closing stock", s.Gross, true)...)
	rows = append(rows, waterfallRows("Less mortality", s.Mortality, true)...)
	rows = append(rows, waterfallRows("Less actual weight loss", s.ActualWeightLoss, false)...)
	rows = append(rows, waterfallRows("Natural weight loss/on", s.NaturalWeightLoss, false)...)
	rows = append(rows, waterfallRows("Closing stock", s.Closing, true)...)

	f := rec.Feed
	rows = append(rows, feedRows("Feed opening", f.Opening)...)
	rows = append(rows, feedRows("Feed purchased", f.Purchased)...)
	rows = append(rows, feedRows("Feed consumed", f.Consumed)...)
	rows = append(rows, feedRows("Feed closing", f.Closing)...)

	p := rec.Profit
	rows = append(rows,
		figure("Profit margin per kg", p.MarginPerKg),
		figure("Birds sold (kg)", p.BirdsSoldKg),
		figure("Gross profit", p.GrossProfit),
		figure("Less weight loss and mortality", p.WeightLossAndMortality),
		figure("Less feed consumed (previous day)", p.FeedConsumed),
		figure("Net profit/loss", p.NetProfitLoss),
	)

	return rows
}

// SheetValues returns the rows as Google Sheets values, each prefixed with the report date.
func SheetValues(report models.DailyStockReport) [][]interface{} {
	date := report.Date.Format(models.DateLayout)
	rows := Rows(report.Reconciliation)

	values := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		values = append(values, []interface{}{date, r.Label, r.Value.InexactFloat64()})
	}
	return values
}

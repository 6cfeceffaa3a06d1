package reporting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/poultry-stock/internal/domain/models"
)

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatSummary renders the short text pushed to the owner after a day is closed.
func FormatSummary(report models.DailyStockReport) string {
	rec := report.Reconciliation

	var b strings.Builder
	fmt.Fprintf(&b, "Stock report %s\n", report.Date.Format(models.DateLayout))
	fmt.Fprintf(&b, "Sold: %d birds, %s kg @ %s\n", rec.Sale.TotalBirds, money(rec.Sale.TotalWeight), money(rec.Sale.AvgRate))
	fmt.Fprintf(&b, "Closing stock: %d birds, %s kg\n", rec.Stock.Closing.Birds, money(rec.Stock.Closing.Weight))
	fmt.Fprintf(&b, "Mortality: %d birds\n", rec.Stock.Mortality.Birds)
	fmt.Fprintf(&b, "Feed closing: %d bags, %s kg\n", rec.Feed.Closing.Bags, money(rec.Feed.Closing.Weight))
	fmt.Fprintf(&b, "Gross profit: %s\n", money(rec.Profit.GrossProfit))

	label := "Net profit"
	if rec.Profit.NetProfitLoss < 0 {
		label = "Net loss"
	}
	fmt.Fprintf(&b, "%s: %s", label, money(rec.Profit.NetProfitLoss))

	if n := len(report.Warnings); n > 0 {
		fmt.Fprintf(&b, "\n%d warning(s) need review", n)
	}

	return b.String()
}

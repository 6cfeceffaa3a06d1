package reconciliation

import (
	"fmt"
	"math"

	"github.com/mamadbah2/poultry-stock/internal/domain/models"
)

// DefaultNaturalLossRatio flags natural weight loss or gain above 5% of gross weight.
const DefaultNaturalLossRatio = 0.05

// Thresholds tunes the sanity checks.
type Thresholds struct {
	// NaturalLossRatio is the largest |natural weight loss| / |gross weight|
	// accepted without a warning. Zero or less disables the check.
	NaturalLossRatio float64
}

// Check inspects a reconciliation and its input records for figures that look
// like data-entry errors. It never alters the report.
func Check(rec models.Reconciliation, records []models.StockRecord, th Thresholds) []models.Warning {
	var warnings []models.Warning

	gross := rec.Stock.Gross.Weight
	natural := rec.Stock.NaturalWeightLoss.Weight
	if th.NaturalLossRatio > 0 && natural != 0 {
		switch {
		case gross == 0:
			warnings = append(warnings, models.Warning{
				Code:    models.WarningNaturalLossOutOfRange,
				Message: fmt.Sprintf("natural weight loss %.2f kg with zero gross weight", natural),
			})
		case math.Abs(natural)/math.Abs(gross) > th.NaturalLossRatio:
			warnings = append(warnings, models.Warning{
				Code: models.WarningNaturalLossOutOfRange,
				Message: fmt.Sprintf("natural weight loss %.2f kg is %.1f%% of gross weight %.2f kg",
					natural, 100*math.Abs(natural)/math.Abs(gross), gross),
			})
		}
	}

	if rec.Stock.Closing.Birds < 0 {
		warnings = append(warnings, models.Warning{
			Code:    models.WarningNegativeClosingBirds,
			Message: fmt.Sprintf("closing stock is %d birds", rec.Stock.Closing.Birds),
		})
	}

	for _, r := range rec.Duplicates {
		warnings = append(warnings, models.Warning{
			Code:     models.WarningDuplicateSingleton,
			Message:  fmt.Sprintf("more than one %s record in scope, ignored", r.Type),
			RecordID: r.ID,
		})
	}

	for _, r := range rec.Unclassified {
		warnings = append(warnings, models.Warning{
			Code:     models.WarningUnclassifiedRecord,
			Message:  fmt.Sprintf("%s record of type %q does not feed any stock line", r.InventoryType, r.Type),
			RecordID: r.ID,
		})
	}

	for _, r := range records {
		if r.Birds < 0 || r.Bags < 0 || r.Weight < 0 || r.Amount < 0 {
			if r.Type == models.RecordWeightLoss {
				// a negative actual weight loss records a weight gain
				if r.Birds >= 0 && r.Bags >= 0 && r.Amount >= 0 {
					continue
				}
			}
			warnings = append(warnings, models.Warning{
				Code:     models.WarningNegativeQuantity,
				Message:  fmt.Sprintf("%s %s record has a negative quantity", r.InventoryType, r.Type),
				RecordID: r.ID,
			})
		}
	}

	return warnings
}

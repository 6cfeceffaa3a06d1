package reconciliation

import "github.com/mamadbah2/poultry-stock/internal/domain/models"

// Input is everything one reconciliation run needs. The previous period's feed
// consumption is resolved by the caller, usually with FeedConsumedAmount over
// the prior day's records.
type Input struct {
	Records                    []models.StockRecord
	PreviousFeedConsumedAmount float64
}

// Partition is a record set split by the waterfall line each record feeds.
type Partition struct {
	BirdPurchases []models.StockRecord
	BirdSales     []models.StockRecord
	Mortality     *models.StockRecord
	WeightLoss    *models.StockRecord
	FeedOpening   []models.StockRecord
	FeedPurchased []models.StockRecord
	FeedConsumed  []models.StockRecord

	// Duplicates holds extra mortality or weight loss records beyond the first.
	Duplicates []models.StockRecord
	// NaturalLosses holds stored natural weight loss records. They are never
	// aggregated because the engine derives that figure itself.
	NaturalLosses []models.StockRecord
	// Unclassified holds records whose inventory type and record type do not
	// feed any line, e.g. a feed sale or an unknown type.
	Unclassified []models.StockRecord
}

// Split assigns every record to exactly one bucket.
func Split(records []models.StockRecord) Partition {
	var p Partition
	for i := range records {
		r := records[i]
		switch r.InventoryType {
		case models.InventoryBird:
			p.addBird(r)
		case models.InventoryFeed:
			p.addFeed(r)
		default:
			p.Unclassified = append(p.Unclassified, r)
		}
	}
	return p
}

func (p *Partition) addBird(r models.StockRecord) {
	switch r.Type {
	case models.RecordOpening, models.RecordPurchase:
		p.BirdPurchases = append(p.BirdPurchases, r)
	case models.RecordSale, models.RecordReceipt:
		p.BirdSales = append(p.BirdSales, r)
	case models.RecordMortality:
		if p.Mortality != nil {
			p.Duplicates = append(p.Duplicates, r)
			return
		}
		p.Mortality = &r
	case models.RecordWeightLoss:
		if p.WeightLoss != nil {
			p.Duplicates = append(p.Duplicates, r)
			return
		}
		p.WeightLoss = &r
	case models.RecordNaturalWeightLoss:
		p.NaturalLosses = append(p.NaturalLosses, r)
	case models.RecordConsume:
		p.Unclassified = append(p.Unclassified, r)
	default:
		p.Unclassified = append(p.Unclassified, r)
	}
}

func (p *Partition) addFeed(r models.StockRecord) {
	switch r.Type {
	case models.RecordOpening:
		p.FeedOpening = append(p.FeedOpening, r)
	case models.RecordPurchase:
		p.FeedPurchased = append(p.FeedPurchased, r)
	case models.RecordConsume:
		p.FeedConsumed = append(p.FeedConsumed, r)
	case models.RecordSale, models.RecordReceipt, models.RecordMortality,
		models.RecordWeightLoss, models.RecordNaturalWeightLoss:
		p.Unclassified = append(p.Unclassified, r)
	default:
		p.Unclassified = append(p.Unclassified, r)
	}
}

// Reconcile runs the aggregator and the three calculators over one snapshot.
func Reconcile(in Input) models.Reconciliation {
	p := Split(in.Records)

	purchase := Aggregate(p.BirdPurchases)
	sale := Aggregate(p.BirdSales)
	stock := ClosingStock(purchase, sale, p.Mortality, p.WeightLoss)
	feed := FeedStock(Aggregate(p.FeedOpening), Aggregate(p.FeedPurchased), Aggregate(p.FeedConsumed))

	out := models.Reconciliation{
		Purchase:      purchase,
		Sale:          sale,
		Stock:         stock,
		Feed:          feed,
		Profit:        Profit(purchase, sale, stock, in.PreviousFeedConsumedAmount),
		Duplicates:    p.Duplicates,
		Unclassified:  p.Unclassified,
		NaturalLosses: p.NaturalLosses,
	}
	if p.Mortality != nil {
		out.MortalityID = p.Mortality.ID
	}
	if p.WeightLoss != nil {
		out.WeightLossID = p.WeightLoss.ID
	}
	return out
}

// FeedConsumedAmount returns the consumed feed amount of a record set, the
// carry-forward value for the following period.
func FeedConsumedAmount(records []models.StockRecord) float64 {
	p := Split(records)
	return Aggregate(p.FeedConsumed).TotalAmount
}

package models

// Aggregate is the reduction of a filtered set of stock records.
type Aggregate struct {
	Records     int     `json:"records" bson:"records"`
	TotalBirds  int     `json:"totalBirds" bson:"total_birds"`
	TotalBags   int     `json:"totalBags" bson:"total_bags"`
	TotalWeight float64 `json:"totalWeight" bson:"total_weight"`
	TotalAmount float64 `json:"totalAmount" bson:"total_amount"`
	AvgWeight   float64 `json:"avgWeight" bson:"avg_weight"`
	AvgRate     float64 `json:"avgRate" bson:"avg_rate"`
}

// WaterfallRow is one line of the bird closing-stock waterfall.
type WaterfallRow struct {
	Birds     int     `json:"birds" bson:"birds"`
	Weight    float64 `json:"weight" bson:"weight"`
	AvgWeight float64 `json:"avgWeight" bson:"avg_weight"`
	Rate      float64 `json:"rate" bson:"rate"`
	Total     float64 `json:"total" bson:"total"`
}

// ClosingStock is the bird inventory waterfall for a scope.
//
// Gross minus mortality, actual weight loss and natural weight loss equals closing.
// Natural weight loss is the balancing figure and may be negative (a gain).
type ClosingStock struct {
	Gross             WaterfallRow `json:"gross" bson:"gross"`
	Mortality         WaterfallRow `json:"mortality" bson:"mortality"`
	ActualWeightLoss  WaterfallRow `json:"actualWeightLoss" bson:"actual_weight_loss"`
	NaturalWeightLoss WaterfallRow `json:"naturalWeightLoss" bson:"natural_weight_loss"`
	Closing           WaterfallRow `json:"closing" bson:"closing"`
}

// FeedRow is one line of the feed waterfall.
type FeedRow struct {
	Bags   int     `json:"bags" bson:"bags"`
	Weight float64 `json:"weight" bson:"weight"`
	Amount float64 `json:"amount" bson:"amount"`
	Rate   float64 `json:"rate" bson:"rate"`
}

// FeedStock is the feed inventory waterfall: opening + purchased - consumed = closing.
type FeedStock struct {
	Opening   FeedRow `json:"opening" bson:"opening"`
	Purchased FeedRow `json:"purchased" bson:"purchased"`
	Consumed  FeedRow `json:"consumed" bson:"consumed"`
	Closing   FeedRow `json:"closing" bson:"closing"`
}

// ProfitBreakdown decomposes the net profit or loss of bird trading.
type ProfitBreakdown struct {
	PurchaseRate           float64 `json:"purchaseRate" bson:"purchase_rate"`
	SaleRate               float64 `json:"saleRate" bson:"sale_rate"`
	MarginPerKg            float64 `json:"marginPerKg" bson:"margin_per_kg"`
	BirdsSoldKg            float64 `json:"birdsSoldKg" bson:"birds_sold_kg"`
	GrossProfit            float64 `json:"grossProfit" bson:"gross_profit"`
	WeightLossAndMortality float64 `json:"weightLossAndMortality" bson:"weight_loss_and_mortality"`
	FeedConsumed           float64 `json:"feedConsumed" bson:"feed_consumed"`
	NetProfitLoss          float64 `json:"netProfitLoss" bson:"net_profit_loss"`
}

// Reconciliation is the full output of one engine run.
type Reconciliation struct {
	Purchase      Aggregate       `json:"purchase" bson:"purchase"`
	Sale          Aggregate       `json:"sale" bson:"sale"`
	Stock         ClosingStock    `json:"stock" bson:"stock"`
	Feed          FeedStock       `json:"feed" bson:"feed"`
	Profit        ProfitBreakdown `json:"profit" bson:"profit"`
	MortalityID   string          `json:"mortalityId,omitempty" bson:"mortality_id,omitempty"`
	WeightLossID  string          `json:"weightLossId,omitempty" bson:"weight_loss_id,omitempty"`
	Duplicates    []StockRecord   `json:"duplicates,omitempty" bson:"duplicates,omitempty"`
	Unclassified  []StockRecord   `json:"unclassified,omitempty" bson:"unclassified,omitempty"`
	NaturalLosses []StockRecord   `json:"naturalLosses,omitempty" bson:"natural_losses,omitempty"`
}

// HasMortality reports whether a mortality record was present, which decides
// between editing the existing record and adding a new one.
func (r Reconciliation) HasMortality() bool { return r.MortalityID != "" }

// HasWeightLoss reports whether an actual weight loss record was present.
func (r Reconciliation) HasWeightLoss() bool { return r.WeightLossID != "" }

// WarningCode identifies a sanity-check finding.
type WarningCode string

const (
	WarningNaturalLossOutOfRange WarningCode = "natural_weight_loss_out_of_range"
	WarningNegativeClosingBirds  WarningCode = "negative_closing_birds"
	WarningDuplicateSingleton    WarningCode = "duplicate_singleton_record"
	WarningUnclassifiedRecord    WarningCode = "unclassified_record"
	WarningNegativeQuantity      WarningCode = "negative_quantity"
)

// Warning flags a figure that looks like a data-entry problem. Warnings never
// change the computed figures.
type Warning struct {
	Code     WarningCode `json:"code" bson:"code"`
	Message  string      `json:"message" bson:"message"`
	RecordID string      `json:"recordId,omitempty" bson:"record_id,omitempty"`
}

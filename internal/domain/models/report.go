package models

import "time"

// DailyStockReport is the reconciliation snapshot stored in MongoDB for a closed day.
// Start and End are zero for an open-ended bound.
type DailyStockReport struct {
	ID                         string         `bson:"_id" json:"id"`
	Date                       time.Time      `bson:"date" json:"date"`
	Start                      time.Time      `bson:"start,omitempty" json:"start,omitempty"`
	End                        time.Time      `bson:"end,omitempty" json:"end,omitempty"`
	RecordCount                int            `bson:"record_count" json:"recordCount"`
	PreviousFeedConsumedAmount float64        `bson:"previous_feed_consumed_amount" json:"previousFeedConsumedAmount"`
	Reconciliation             Reconciliation `bson:"reconciliation" json:"reconciliation"`
	Warnings                   []Warning      `bson:"warnings,omitempty" json:"warnings,omitempty"`
	CreatedAt                  time.Time      `bson:"created_at" json:"createdAt"`
}

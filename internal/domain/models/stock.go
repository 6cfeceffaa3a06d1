package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar-day layout used by the inventory API and the HTTP surface.
const DateLayout = "2006-01-02"

// InventoryType partitions records into the bird or the feed waterfall.
type InventoryType string

const (
	InventoryBird InventoryType = "bird"
	InventoryFeed InventoryType = "feed"
)

// Valid reports whether t is a known inventory type.
func (t InventoryType) Valid() bool {
	switch t {
	case InventoryBird, InventoryFeed:
		return true
	default:
		return false
	}
}

// RecordType enumerates the inventory movements the API records.
type RecordType string

const (
	RecordOpening           RecordType = "opening"
	RecordPurchase          RecordType = "purchase"
	RecordSale              RecordType = "sale"
	RecordReceipt           RecordType = "receipt"
	RecordMortality         RecordType = "mortality"
	RecordWeightLoss        RecordType = "weight_loss"
	RecordNaturalWeightLoss RecordType = "natural_weight_loss"
	RecordConsume           RecordType = "consume"
)

// Valid reports whether t is a known record type.
func (t RecordType) Valid() bool {
	switch t {
	case RecordOpening, RecordPurchase, RecordSale, RecordReceipt,
		RecordMortality, RecordWeightLoss, RecordNaturalWeightLoss, RecordConsume:
		return true
	default:
		return false
	}
}

// Source tells how a record was created.
type Source string

const (
	SourceManual Source = "manual"
	SourceTrip   Source = "trip"
)

// StockRecord is a single inventory movement as returned by GET /inventory-stock.
type StockRecord struct {
	ID            string        `json:"id" bson:"id"`
	Date          time.Time     `json:"date" bson:"date"`
	InventoryType InventoryType `json:"inventoryType" bson:"inventory_type"`
	Type          RecordType    `json:"type" bson:"type"`
	Birds         int           `json:"birds" bson:"birds"`
	Weight        float64       `json:"weight" bson:"weight"`
	Bags          int           `json:"bags" bson:"bags"`
	Rate          float64       `json:"rate" bson:"rate"`
	Amount        float64       `json:"amount" bson:"amount"`
	AvgWeight     float64       `json:"avgWeight" bson:"avg_weight"`
	VendorID      string        `json:"vendorId,omitempty" bson:"vendor_id,omitempty"`
	CustomerID    string        `json:"customerId,omitempty" bson:"customer_id,omitempty"`
	CashPaid      float64       `json:"cashPaid,omitempty" bson:"cash_paid,omitempty"`
	OnlinePaid    float64       `json:"onlinePaid,omitempty" bson:"online_paid,omitempty"`
	Discount      float64       `json:"discount,omitempty" bson:"discount,omitempty"`
	Source        Source        `json:"source,omitempty" bson:"source,omitempty"`
}

// Editable reports whether the record may be changed from the stock screen.
// Records created by the field trip workflow are read-only there.
func (r StockRecord) Editable() bool {
	return r.Source != SourceTrip
}

type stockRecordJSON StockRecord

// UnmarshalJSON accepts the date either as a calendar day or as a full RFC 3339 timestamp.
func (r *StockRecord) UnmarshalJSON(data []byte) error {
	aux := struct {
		*stockRecordJSON
		Date string `json:"date"`
	}{stockRecordJSON: (*stockRecordJSON)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Date == "" {
		r.Date = time.Time{}
		return nil
	}

	day, err := ParseDate(aux.Date)
	if err != nil {
		return fmt.Errorf("stock record %s: %w", r.ID, err)
	}
	r.Date = day
	return nil
}

// MarshalJSON writes the date back as a calendar day.
func (r StockRecord) MarshalJSON() ([]byte, error) {
	date := ""
	if !r.Date.IsZero() {
		date = r.Date.Format(DateLayout)
	}
	return json.Marshal(struct {
		stockRecordJSON
		Date string `json:"date"`
	}{stockRecordJSON: stockRecordJSON(r), Date: date})
}

// ParseDate parses a calendar day, tolerating a trailing time component.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	return time.Parse(DateLayout, value)
}

// SortRecords orders records by inventory type, then opening records first,
// then by date and id. The sort is stable and works on a copy.
func SortRecords(records []StockRecord) []StockRecord {
	sorted := make([]StockRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.InventoryType != b.InventoryType {
			return inventoryRank(a.InventoryType) < inventoryRank(b.InventoryType)
		}
		aOpen, bOpen := a.Type == RecordOpening, b.Type == RecordOpening
		if aOpen != bOpen {
			return aOpen
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})

	return sorted
}

func inventoryRank(t InventoryType) int {
	switch t {
	case InventoryBird:
		return 0
	case InventoryFeed:
		return 1
	default:
		return 2
	}
}

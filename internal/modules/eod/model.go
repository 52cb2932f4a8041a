package eod

import (
	"encoding/json"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Report is one store's end-of-day sales summary for one business date.
// (StoreID, BizDate) is unique.
type Report struct {
	ID        int64           `json:"id"`
	StoreID   int             `json:"storeId"`
	BizDate   civil.Date      `json:"bizDate"`
	NetSales  decimal.Decimal `json:"netSales"`
	Tickets   int             `json:"tickets"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MarshalJSON renders netSales as a JSON number with two fractional digits.
func (r Report) MarshalJSON() ([]byte, error) {
	type plain Report
	return json.Marshal(struct {
		plain
		NetSales json.Number `json:"netSales"`
	}{plain(r), json.Number(r.NetSales.StringFixed(2))})
}

// Request is the payload for creating or replacing a report.
// NetSales accepts a JSON number or a numeric string.
type Request struct {
	StoreID  int             `json:"storeId" validate:"gt=0,lte=2147483647"`
	BizDate  string          `json:"bizDate" validate:"required,isodate"`
	NetSales decimal.Decimal `json:"netSales" validate:"money,scale2"`
	Tickets  int             `json:"tickets" validate:"gte=0,lte=2147483647"`
}

// Filter narrows List results. From and To are inclusive.
type Filter struct {
	StoreID *int
	From    *civil.Date
	To      *civil.Date
}

func (f Filter) matches(r Report) bool {
	if f.StoreID != nil && r.StoreID != *f.StoreID {
		return false
	}
	if f.From != nil && r.BizDate.Before(*f.From) {
		return false
	}
	if f.To != nil && r.BizDate.After(*f.To) {
		return false
	}
	return true
}

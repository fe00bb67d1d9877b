package models

import "time"

// DateLayout is the ISO calendar-date form used for Trade.Date.
const DateLayout = "2006-01-02"

// Trade represents a single journaled buy/sell transaction.
// A nil SellPrice means the position is still open.
type Trade struct {
	ID        string   `json:"id"`
	Symbol    string   `json:"symbol"`
	BuyPrice  float64  `json:"buy_price"`
	SellPrice *float64 `json:"sell_price,omitempty"`
	Quantity  int      `json:"quantity"`
	Date      string   `json:"date"` // ISO calendar date, user-assigned
	Timestamp int64    `json:"timestamp"`
	Remarks   string   `json:"remarks,omitempty"`
}

// Closed reports whether the trade has a recorded sell price.
func (t *Trade) Closed() bool {
	return t.SellPrice != nil
}

// Profit returns the realized profit of a closed trade, or 0 for an open one.
func (t *Trade) Profit() float64 {
	if t.SellPrice == nil {
		return 0
	}
	return (*t.SellPrice - t.BuyPrice) * float64(t.Quantity)
}

// DateTimestamp converts an ISO date string to the epoch-millisecond instant
// at local midnight of that day.
func DateTimestamp(date string) (int64, error) {
	d, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return 0, err
	}
	return d.UnixMilli(), nil
}

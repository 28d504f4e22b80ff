package models

import "time"

// AdjustmentRequest is the body of add/remove stock calls. Qty is a
// pointer so a missing field is distinguishable from zero.
type AdjustmentRequest struct {
	Qty *int `json:"qty" binding:"required"`
}

// QuantityResponse reports the current stock of a single item.
type QuantityResponse struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// LowStockResponse lists the items strictly below a threshold.
type LowStockResponse struct {
	Threshold int      `json:"threshold"`
	Items     []string `json:"items"`
}

// JournalEntry is the wire form of a retained mutation record.
type JournalEntry struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

package domain

import (
	"encoding/json"
	"time"
)

type PurchaseStatus string

// No transition out of PurchasePending exists; every purchase is created
// in that state.
const (
	PurchasePending PurchaseStatus = "pending"
)

// LineItem is an opaque cart entry supplied by the client and stored as-is.
type LineItem = json.RawMessage

type Purchase struct {
	ID           string         `json:"id"`
	CustomerID   string         `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	Products     []LineItem     `json:"products"`
	TotalAmount  float64        `json:"total_amount"`
	Status       PurchaseStatus `json:"status"`
	PurchaseDate time.Time      `json:"purchase_date"`
}

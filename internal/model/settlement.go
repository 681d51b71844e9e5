package model

// Settlement status values.
const (
	SettlementPaid    = "Paid"
	SettlementPending = "Pending"
)

// Settlement is a payout batch from the platform to a business.
type Settlement struct {
	ID         string  `json:"id"`
	BusinessID string  `json:"business_id"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"` // Paid, Pending
	ItemsCount int     `json:"items_count"`
}

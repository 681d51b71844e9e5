package model

// Commitment status values.
const (
	CommitmentActive    = "Active"
	CommitmentCancelled = "Cancelled"
	CommitmentCompleted = "Completed"
)

// PaymentRecord status values.
const (
	PaymentPaid    = "Paid"
	PaymentFailed  = "Failed"
	PaymentPending = "Pending"
)

// Commitment is a recurring deduction agreement between one consumer and one
// business. History is append-only and stored oldest-first.
type Commitment struct {
	ID                string          `json:"id"`
	ConsumerID        string          `json:"consumer_id"`
	BusinessID        string          `json:"business_id"`
	BusinessName      string          `json:"business_name"`
	Amount            float64         `json:"amount"`
	StartDate         string          `json:"start_date"`
	NextDeductionDate string          `json:"next_deduction_date"`
	Status            string          `json:"status"` // Active, Cancelled, Completed
	History           []PaymentRecord `json:"history"`
}

// PaymentRecord is one historical deduction event. Immutable once appended.
type PaymentRecord struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"` // Paid, Failed, Pending
}

package model

// BusinessStatus values.
const (
	BusinessActive    = "Active"
	BusinessSuspended = "Suspended"
	BusinessPending   = "Pending"
)

// Business is a merchant receiving recurring deduction payments.
type Business struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Status   string  `json:"status"` // Active, Suspended, Pending
	Revenue  float64 `json:"revenue"`
}

package model

// EmployeeStatus values.
const (
	EmployeeEnabled  = "Enabled"
	EmployeeDisabled = "Disabled"
)

// Employee is a payroll record, distinct from a platform User. A payroll
// record can exist without a matching account.
type Employee struct {
	ID         string  `json:"id"`
	EmployerID string  `json:"employer_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Salary     float64 `json:"salary"`
	Status     string  `json:"status"` // Enabled, Disabled
	JoinedDate string  `json:"joined_date"`
}

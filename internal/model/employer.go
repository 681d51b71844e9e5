package model

// Employer is an organization whose policy caps how much of an employee's
// salary may be pre-committed.
type Employer struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	MaxDeductionPercent float64 `json:"max_deduction_percent"` // 0..100
	EmployeeCount       int     `json:"employee_count"`
}

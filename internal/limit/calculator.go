// Package limit computes a consumer's deduction headroom from salary,
// employer policy and active commitments. All functions are pure over the
// snapshot they are given.
package limit

import "salarypay-service/internal/model"

// Result is the breakdown of a consumer's deduction limit.
type Result struct {
	Salary       float64 `json:"salary"`
	MaxDeduction float64 `json:"max_deduction"`
	Used         float64 `json:"used"`
	SafeToSpend  float64 `json:"safe_to_spend"`
}

// Compute calculates the deduction limit for user. A missing employee or
// employer record degrades to zero values; a negative remainder is clamped
// to zero, never surfaced as an error.
func Compute(user model.User, employees []model.Employee, employers []model.Employer, commitments []model.Commitment) Result {
	salary := lookupSalary(user, employees)

	var percent float64
	for _, e := range employers {
		if e.ID == user.EmployerID {
			percent = e.MaxDeductionPercent
			break
		}
	}

	maxDeduction := salary * percent / 100
	used := ActiveTotal(user.ID, commitments)

	safe := maxDeduction - used
	if safe < 0 {
		safe = 0
	}

	return Result{
		Salary:       salary,
		MaxDeduction: maxDeduction,
		Used:         used,
		SafeToSpend:  safe,
	}
}

// ActiveTotal sums the amounts of consumerID's Active commitments.
func ActiveTotal(consumerID string, commitments []model.Commitment) float64 {
	var total float64
	for _, c := range commitments {
		if c.ConsumerID == consumerID && c.Status == model.CommitmentActive {
			total += c.Amount
		}
	}
	return total
}

// lookupSalary resolves the user's payroll record, preferring the explicit
// EmployeeID link and falling back to the email join for records that predate
// the link.
func lookupSalary(user model.User, employees []model.Employee) float64 {
	if user.EmployeeID != "" {
		for _, e := range employees {
			if e.ID == user.EmployeeID {
				return e.Salary
			}
		}
	}
	for _, e := range employees {
		if e.Email == user.Email {
			return e.Salary
		}
	}
	return 0
}

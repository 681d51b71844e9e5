package limit

import (
	"testing"

	"salarypay-service/internal/model"
)

func fixtureEmployers() []model.Employer {
	return []model.Employer{
		{ID: "emp1", Name: "TechCorp Solutions", MaxDeductionPercent: 30},
		{ID: "emp2", Name: "Global Logistics", MaxDeductionPercent: 20},
	}
}

func fixtureEmployees() []model.Employee {
	return []model.Employee{
		{ID: "u1", EmployerID: "emp1", Email: "john@techcorp.com", Salary: 5000, Status: model.EmployeeEnabled},
		{ID: "u2", EmployerID: "emp2", Email: "jane@globallogistics.com", Salary: 4500, Status: model.EmployeeEnabled},
	}
}

func fixtureCommitments() []model.Commitment {
	return []model.Commitment{
		{ID: "c1", ConsumerID: "u1", BusinessID: "biz1", Amount: 50, Status: model.CommitmentActive},
		{ID: "c2", ConsumerID: "u1", BusinessID: "biz2", Amount: 200, Status: model.CommitmentActive},
	}
}

func TestComputeSeedScenario(t *testing.T) {
	user := model.User{ID: "u1", Email: "john@techcorp.com", Role: model.RoleConsumer, EmployerID: "emp1", EmployeeID: "u1"}

	res := Compute(user, fixtureEmployees(), fixtureEmployers(), fixtureCommitments())

	if res.Salary != 5000 {
		t.Fatalf("expected salary 5000, got %v", res.Salary)
	}
	if res.MaxDeduction != 1500 {
		t.Fatalf("expected max deduction 1500, got %v", res.MaxDeduction)
	}
	if res.Used != 250 {
		t.Fatalf("expected used 250, got %v", res.Used)
	}
	if res.SafeToSpend != 1250 {
		t.Fatalf("expected safe to spend 1250, got %v", res.SafeToSpend)
	}
}

func TestComputeEmailFallback(t *testing.T) {
	// No EmployeeID link: the email join still resolves the salary.
	user := model.User{ID: "u1", Email: "john@techcorp.com", Role: model.RoleConsumer, EmployerID: "emp1"}

	res := Compute(user, fixtureEmployees(), fixtureEmployers(), nil)

	if res.MaxDeduction != 1500 {
		t.Fatalf("expected max deduction 1500 via email join, got %v", res.MaxDeduction)
	}
}

func TestComputeMissingEmployee(t *testing.T) {
	user := model.User{ID: "ux", Email: "nobody@example.com", Role: model.RoleConsumer, EmployerID: "emp1"}

	res := Compute(user, fixtureEmployees(), fixtureEmployers(), fixtureCommitments())

	if res.Salary != 0 || res.MaxDeduction != 0 || res.SafeToSpend != 0 {
		t.Fatalf("expected zero result for missing employee, got %+v", res)
	}
}

func TestComputeMissingEmployer(t *testing.T) {
	user := model.User{ID: "u1", Email: "john@techcorp.com", Role: model.RoleConsumer, EmployerID: "gone"}

	res := Compute(user, fixtureEmployees(), fixtureEmployers(), fixtureCommitments())

	if res.MaxDeduction != 0 {
		t.Fatalf("expected zero max deduction for missing employer, got %v", res.MaxDeduction)
	}
	if res.SafeToSpend != 0 {
		t.Fatalf("expected zero safe to spend, got %v", res.SafeToSpend)
	}
}

func TestComputeClampsNegative(t *testing.T) {
	user := model.User{ID: "u1", Email: "john@techcorp.com", Role: model.RoleConsumer, EmployerID: "emp1", EmployeeID: "u1"}
	commitments := []model.Commitment{
		{ID: "big", ConsumerID: "u1", Amount: 9000, Status: model.CommitmentActive},
	}

	res := Compute(user, fixtureEmployees(), fixtureEmployers(), commitments)

	if res.SafeToSpend != 0 {
		t.Fatalf("expected safe to spend clamped to 0, got %v", res.SafeToSpend)
	}
	if res.Used != 9000 {
		t.Fatalf("expected used 9000, got %v", res.Used)
	}
}

func TestComputeIgnoresInactiveCommitments(t *testing.T) {
	user := model.User{ID: "u1", Email: "john@techcorp.com", Role: model.RoleConsumer, EmployerID: "emp1", EmployeeID: "u1"}
	commitments := []model.Commitment{
		{ID: "c1", ConsumerID: "u1", Amount: 50, Status: model.CommitmentActive},
		{ID: "c2", ConsumerID: "u1", Amount: 200, Status: model.CommitmentCancelled},
		{ID: "c3", ConsumerID: "u2", Amount: 75, Status: model.CommitmentActive},
	}

	res := Compute(user, fixtureEmployees(), fixtureEmployers(), commitments)

	if res.Used != 50 {
		t.Fatalf("expected used 50 (cancelled and foreign commitments ignored), got %v", res.Used)
	}
	if res.SafeToSpend != 1450 {
		t.Fatalf("expected safe to spend 1450, got %v", res.SafeToSpend)
	}
}

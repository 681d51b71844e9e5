package store

import (
	"errors"
	"testing"

	"salarypay-service/internal/model"
)

func TestSeedDeductionLimit(t *testing.T) {
	s := New(false)

	res, ok := s.DeductionLimit("u1")
	if !ok {
		t.Fatal("expected u1 to resolve")
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

func TestAmendReflectsInLimit(t *testing.T) {
	s := New(false)

	changed, err := s.AmendCommitmentAmount("c1", 75)
	if err != nil {
		t.Fatalf("amend failed: %v", err)
	}
	if !changed {
		t.Fatal("expected amend to report a change")
	}

	res, _ := s.DeductionLimit("u1")
	if res.Used != 275 {
		t.Fatalf("expected used 275 after amend, got %v", res.Used)
	}
	if res.SafeToSpend != 1225 {
		t.Fatalf("expected safe to spend 1225 after amend, got %v", res.SafeToSpend)
	}
}

func TestCancelFreesHeadroom(t *testing.T) {
	s := New(false)
	before, _ := s.DeductionLimit("u1")

	changed, err := s.CancelCommitment("c2")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if !changed {
		t.Fatal("expected cancel to report a change")
	}

	after, _ := s.DeductionLimit("u1")
	if after.SafeToSpend != before.SafeToSpend+200 {
		t.Fatalf("expected safe to spend to grow by 200, got %v -> %v", before.SafeToSpend, after.SafeToSpend)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	s := New(false)

	if changed, _ := s.CancelCommitment("c1"); !changed {
		t.Fatal("first cancel should report a change")
	}
	if changed, err := s.CancelCommitment("c1"); changed || err != nil {
		t.Fatalf("second cancel should be a no-op, got changed=%v err=%v", changed, err)
	}

	c, ok := s.CommitmentByID("c1")
	if !ok {
		t.Fatal("commitment c1 missing")
	}
	if c.Status != model.CommitmentCancelled {
		t.Fatalf("expected status Cancelled, got %s", c.Status)
	}
}

func TestAmendCancelledIsNoOp(t *testing.T) {
	s := New(false)
	s.CancelCommitment("c1")

	changed, err := s.AmendCommitmentAmount("c1", 999)
	if err != nil {
		t.Fatalf("amend returned error: %v", err)
	}
	if changed {
		t.Fatal("amending a cancelled commitment should report no change")
	}

	c, _ := s.CommitmentByID("c1")
	if c.Amount != 50 {
		t.Fatalf("expected amount unchanged at 50, got %v", c.Amount)
	}
}

func TestAmendMissingIsNoOp(t *testing.T) {
	s := New(false)
	changed, err := s.AmendCommitmentAmount("nope", 10)
	if changed || err != nil {
		t.Fatalf("expected silent no-op for missing id, got changed=%v err=%v", changed, err)
	}
}

func TestAmendRejectsNonPositiveAmount(t *testing.T) {
	s := New(false)
	for _, amount := range []float64{0, -5} {
		if _, err := s.AmendCommitmentAmount("c1", amount); !errors.Is(err, ErrAmountNotPositive) {
			t.Fatalf("AmendCommitmentAmount(c1, %v) err = %v, want ErrAmountNotPositive", amount, err)
		}
	}
}

func TestCreateCommitment(t *testing.T) {
	s := New(false)

	c, err := s.CreateCommitment("u2", "biz1", "FitLife Gym", 80, "2023-11-01", "2023-12-01")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if c.Status != model.CommitmentActive {
		t.Fatalf("expected new commitment Active, got %s", c.Status)
	}
	if len(c.History) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(c.History))
	}

	res, _ := s.DeductionLimit("u2")
	if res.Used != 80 {
		t.Fatalf("expected used 80 for u2, got %v", res.Used)
	}
}

func TestCreateCommitmentRejectsNonPositiveAmount(t *testing.T) {
	s := New(false)
	if _, err := s.CreateCommitment("u1", "biz1", "FitLife Gym", 0, "2023-11-01", "2023-12-01"); !errors.Is(err, ErrAmountNotPositive) {
		t.Fatalf("expected ErrAmountNotPositive, got %v", err)
	}
}

func TestLimitEnforcementOnAmend(t *testing.T) {
	s := New(true)

	// u1 headroom is 1250; raising c1 from 50 to 1300 keeps the total at
	// 1500 which is exactly the limit.
	if changed, err := s.AmendCommitmentAmount("c1", 1300); err != nil || !changed {
		t.Fatalf("amend to the limit should pass, got changed=%v err=%v", changed, err)
	}

	if _, err := s.AmendCommitmentAmount("c1", 1301); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("amend over the limit should be rejected, got %v", err)
	}
}

func TestLimitEnforcementOnCreate(t *testing.T) {
	s := New(true)

	if _, err := s.CreateCommitment("u1", "biz1", "FitLife Gym", 1251, "2023-11-01", "2023-12-01"); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
	if _, err := s.CreateCommitment("u1", "biz1", "FitLife Gym", 1250, "2023-11-01", "2023-12-01"); err != nil {
		t.Fatalf("create within the limit should pass, got %v", err)
	}
}

func TestSoftLimitAllowsOverCommit(t *testing.T) {
	// Enforcement off preserves the original soft-limit model.
	s := New(false)
	if changed, err := s.AmendCommitmentAmount("c1", 99999); err != nil || !changed {
		t.Fatalf("soft limit should accept over-commit, got changed=%v err=%v", changed, err)
	}
	res, _ := s.DeductionLimit("u1")
	if res.SafeToSpend != 0 {
		t.Fatalf("expected safe to spend clamped to 0, got %v", res.SafeToSpend)
	}
}

func TestSetEmployerRule(t *testing.T) {
	s := New(false)

	changed, err := s.SetEmployerRule("emp1", 40)
	if err != nil || !changed {
		t.Fatalf("expected rule update, got changed=%v err=%v", changed, err)
	}
	emp, _ := s.EmployerByID("emp1")
	if emp.MaxDeductionPercent != 40 {
		t.Fatalf("expected 40 percent, got %v", emp.MaxDeductionPercent)
	}

	for _, percent := range []float64{-1, 101} {
		if _, err := s.SetEmployerRule("emp1", percent); !errors.Is(err, ErrPercentOutOfRange) {
			t.Fatalf("SetEmployerRule(emp1, %v) err = %v, want ErrPercentOutOfRange", percent, err)
		}
	}

	if changed, err := s.SetEmployerRule("gone", 10); changed || err != nil {
		t.Fatalf("missing employer should be a no-op, got changed=%v err=%v", changed, err)
	}
}

func TestToggleBusinessStatusInvolutive(t *testing.T) {
	s := New(false)

	status, changed := s.ToggleBusinessStatus("biz1")
	if !changed || status != model.BusinessSuspended {
		t.Fatalf("expected Active -> Suspended, got %s changed=%v", status, changed)
	}
	status, changed = s.ToggleBusinessStatus("biz1")
	if !changed || status != model.BusinessActive {
		t.Fatalf("expected Suspended -> Active, got %s changed=%v", status, changed)
	}
}

func TestTogglePendingIsDeadEnd(t *testing.T) {
	s := New(false)
	s.data.businesses = append(s.data.businesses, model.Business{ID: "biz4", Name: "New Shop", Status: model.BusinessPending})

	status, changed := s.ToggleBusinessStatus("biz4")
	if changed {
		t.Fatal("toggling a Pending business should report no change")
	}
	if status != model.BusinessPending {
		t.Fatalf("expected status to stay Pending, got %s", status)
	}
}

func TestUpcomingDeductionsOrderAndTruncation(t *testing.T) {
	s := New(false)
	s.CreateCommitment("u1", "biz1", "FitLife Gym", 10, "2023-09-01", "2023-11-05")
	s.CreateCommitment("u1", "biz1", "FitLife Gym", 20, "2023-09-01", "2023-11-02")

	up := s.UpcomingDeductions("u1", UpcomingDisplayCount)
	if len(up) != 3 {
		t.Fatalf("expected 3 upcoming deductions, got %d", len(up))
	}
	dates := []string{up[0].NextDeductionDate, up[1].NextDeductionDate, up[2].NextDeductionDate}
	want := []string{"2023-11-01", "2023-11-02", "2023-11-05"}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("expected dates %v, got %v", want, dates)
		}
	}
}

func TestUpcomingDeductionsStableOnTies(t *testing.T) {
	s := New(false)
	first, _ := s.CreateCommitment("u2", "biz1", "FitLife Gym", 10, "2023-09-01", "2023-12-01")
	second, _ := s.CreateCommitment("u2", "biz2", "City Electronics", 20, "2023-09-01", "2023-12-01")

	up := s.UpcomingDeductions("u2", UpcomingDisplayCount)
	if len(up) != 2 {
		t.Fatalf("expected 2 upcoming deductions, got %d", len(up))
	}
	if up[0].ID != first.ID || up[1].ID != second.ID {
		t.Fatal("expected insertion order preserved on equal dates")
	}
}

func TestListCommitmentsEmployerFilter(t *testing.T) {
	s := New(false)

	// Both seed commitments belong to u1, who is on emp1's payroll.
	got := s.ListCommitments(CommitmentFilter{EmployerID: "emp1"})
	if len(got) != 2 {
		t.Fatalf("expected 2 commitments for emp1, got %d", len(got))
	}
	if got := s.ListCommitments(CommitmentFilter{EmployerID: "emp2"}); len(got) != 0 {
		t.Fatalf("expected 0 commitments for emp2, got %d", len(got))
	}
}

func TestBusinessStats(t *testing.T) {
	s := New(false)
	s.CreateCommitment("u2", "biz1", "FitLife Gym", 30, "2023-09-01", "2023-12-01")
	s.CancelCommitment("c1")

	stats := s.BusinessStatsFor("biz1")
	if stats.MonthlyRecurring != 30 {
		t.Fatalf("expected monthly recurring 30, got %v", stats.MonthlyRecurring)
	}
	if stats.ActiveSubscriptions != 1 {
		t.Fatalf("expected 1 active subscription, got %d", stats.ActiveSubscriptions)
	}
	// Unique customers counts any status, so the cancelled u1 still counts.
	if stats.UniqueCustomers != 2 {
		t.Fatalf("expected 2 unique customers, got %d", stats.UniqueCustomers)
	}
}

func TestEmployerStats(t *testing.T) {
	s := New(false)

	stats := s.EmployerStatsFor("emp1")
	if stats.TotalEmployees != 2 {
		t.Fatalf("expected 2 employees for emp1, got %d", stats.TotalEmployees)
	}
	if stats.ActiveEmployees != 1 {
		t.Fatalf("expected 1 enabled employee, got %d", stats.ActiveEmployees)
	}
	if stats.MonthlyDeductions != 250 {
		t.Fatalf("expected monthly deductions 250, got %v", stats.MonthlyDeductions)
	}
}

func TestAddEmployeeValidation(t *testing.T) {
	s := New(false)

	if _, err := s.AddEmployee(model.Employee{EmployerID: "emp1", Name: "X", Email: "x@techcorp.com", Salary: 0, Status: model.EmployeeEnabled}); !errors.Is(err, ErrSalaryNotPositive) {
		t.Fatalf("expected ErrSalaryNotPositive, got %v", err)
	}

	e, err := s.AddEmployee(model.Employee{EmployerID: "emp1", Name: "X", Email: "x@techcorp.com", Salary: 5500, Status: model.EmployeeEnabled, JoinedDate: "2023-11-01"})
	if err != nil {
		t.Fatalf("add employee failed: %v", err)
	}
	if e.ID == "" {
		t.Fatal("expected generated employee id")
	}
	if got := s.EmployerStatsFor("emp1").TotalEmployees; got != 3 {
		t.Fatalf("expected 3 employees after add, got %d", got)
	}
}

func TestSetEmployeeStatus(t *testing.T) {
	s := New(false)

	if changed, err := s.SetEmployeeStatus("e3", model.EmployeeEnabled); err != nil || !changed {
		t.Fatalf("expected status change, got changed=%v err=%v", changed, err)
	}
	if _, err := s.SetEmployeeStatus("e3", "Fired"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if changed, err := s.SetEmployeeStatus("gone", model.EmployeeEnabled); changed || err != nil {
		t.Fatalf("missing employee should be a no-op, got changed=%v err=%v", changed, err)
	}
}

func TestAppendPaymentIsAppendOnly(t *testing.T) {
	s := New(false)

	changed, err := s.AppendPayment("c2", model.PaymentRecord{Date: "2023-11-15", Amount: 200, Status: model.PaymentPaid})
	if err != nil || !changed {
		t.Fatalf("append payment failed: changed=%v err=%v", changed, err)
	}

	c, _ := s.CommitmentByID("c2")
	if len(c.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(c.History))
	}
	if c.History[1].Date != "2023-11-15" {
		t.Fatalf("expected newest entry appended last, got %s", c.History[1].Date)
	}

	// Mutating the returned copy must not touch the stored history.
	c.History[0].Amount = 1
	again, _ := s.CommitmentByID("c2")
	if again.History[0].Amount != 200 {
		t.Fatal("stored history mutated through a returned copy")
	}
}

func TestLoginLookupAndProvisioning(t *testing.T) {
	s := New(false)

	if _, ok := s.UserByEmailRole("john@techcorp.com", model.RoleConsumer); !ok {
		t.Fatal("expected seed user lookup to succeed")
	}
	// Same email, wrong role: exact pair matching.
	if _, ok := s.UserByEmailRole("john@techcorp.com", model.RoleAdmin); ok {
		t.Fatal("expected (email, role) pair mismatch to miss")
	}

	u := s.AddUser(model.User{Name: "Demo User", Email: "new@demo.com", Role: model.RoleConsumer, EmployerID: DefaultEmployerID})
	if u.ID == "" {
		t.Fatal("expected generated user id")
	}
	if got, ok := s.UserByID(u.ID); !ok || got.Email != "new@demo.com" {
		t.Fatal("expected provisioned user to resolve by id")
	}
}

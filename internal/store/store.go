// Package store owns the in-memory dataset the whole service reads and
// mutates. Every access goes through a single Store instance passed to the
// components that need it; the mutex is the serialization point for
// concurrent sessions.
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"salarypay-service/internal/limit"
	"salarypay-service/internal/model"
)

// Validation errors returned by mutators.
var (
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrSalaryNotPositive = errors.New("salary must be greater than zero")
	ErrPercentOutOfRange = errors.New("percent must be between 0 and 100")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrLimitExceeded     = errors.New("commitment total would exceed the deduction limit")
)

// UpcomingDisplayCount is how many upcoming deductions the overview shows.
const UpcomingDisplayCount = 3

type collections struct {
	users       []model.User
	employers   []model.Employer
	businesses  []model.Business
	employees   []model.Employee
	commitments []model.Commitment
	settlements []model.Settlement
}

// Store is the process-wide owner of all entity collections.
type Store struct {
	mu           sync.RWMutex
	data         *collections
	enforceLimit bool
}

// New returns a Store seeded with the demo dataset. When enforceLimit is set,
// commitment creation and amendment are validated against the consumer's
// deduction limit instead of accepting over-limit totals.
func New(enforceLimit bool) *Store {
	return &Store{data: seedData(), enforceLimit: enforceLimit}
}

// --- users ---

// UserByID returns the user with the given id.
func (s *Store) UserByID(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// UserByEmailRole returns the user matching the exact (email, role) pair.
func (s *Store) UserByEmailRole(email string, role model.Role) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data.users {
		if u.Email == email && u.Role == role {
			return u, true
		}
	}
	return model.User{}, false
}

// AddUser appends a user. Used for login auto-provisioning of demo accounts;
// the record lives for the process lifetime like every other mutation.
func (s *Store) AddUser(u model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = "temp-" + uuid.New().String()
	}
	s.data.users = append(s.data.users, u)
	return u
}

// UsersByRole returns all users with the given role.
func (s *Store) UsersByRole(role model.Role) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.User
	for _, u := range s.data.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// --- employers ---

// EmployerByID returns the employer with the given id.
func (s *Store) EmployerByID(id string) (model.Employer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.data.employers {
		if e.ID == id {
			return e, true
		}
	}
	return model.Employer{}, false
}

// Employers returns all employers.
func (s *Store) Employers() []model.Employer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Employer, len(s.data.employers))
	copy(out, s.data.employers)
	return out
}

// SetEmployerRule updates an employer's max deduction percent. Percent must
// be within [0,100]; a missing employer reports no change.
func (s *Store) SetEmployerRule(id string, percent float64) (bool, error) {
	if percent < 0 || percent > 100 {
		return false, ErrPercentOutOfRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.employers {
		if s.data.employers[i].ID == id {
			s.data.employers[i].MaxDeductionPercent = percent
			return true, nil
		}
	}
	return false, nil
}

// --- businesses ---

// BusinessByID returns the business with the given id.
func (s *Store) BusinessByID(id string) (model.Business, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.data.businesses {
		if b.ID == id {
			return b, true
		}
	}
	return model.Business{}, false
}

// Businesses returns all businesses.
func (s *Store) Businesses() []model.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Business, len(s.data.businesses))
	copy(out, s.data.businesses)
	return out
}

// ActiveBusinesses returns the merchants a consumer can commit to.
func (s *Store) ActiveBusinesses() []model.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Business
	for _, b := range s.data.businesses {
		if b.Status == model.BusinessActive {
			out = append(out, b)
		}
	}
	return out
}

// ToggleBusinessStatus flips a business between Active and Suspended and
// returns the resulting status. Pending is a dead end: toggling it reports
// no change. A missing id reports no change with an empty status.
func (s *Store) ToggleBusinessStatus(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.businesses {
		if s.data.businesses[i].ID != id {
			continue
		}
		switch s.data.businesses[i].Status {
		case model.BusinessActive:
			s.data.businesses[i].Status = model.BusinessSuspended
			return model.BusinessSuspended, true
		case model.BusinessSuspended:
			s.data.businesses[i].Status = model.BusinessActive
			return model.BusinessActive, true
		default:
			return s.data.businesses[i].Status, false
		}
	}
	return "", false
}

// --- employees ---

// EmployeesByEmployer returns an employer's payroll records.
func (s *Store) EmployeesByEmployer(employerID string) []model.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Employee
	for _, e := range s.data.employees {
		if e.EmployerID == employerID {
			out = append(out, e)
		}
	}
	return out
}

// AddEmployee appends a payroll record. Salary must be positive.
func (s *Store) AddEmployee(e model.Employee) (model.Employee, error) {
	if e.Salary <= 0 {
		return model.Employee{}, ErrSalaryNotPositive
	}
	if e.Status != model.EmployeeEnabled && e.Status != model.EmployeeDisabled {
		return model.Employee{}, ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = "new-" + uuid.New().String()
	}
	s.data.employees = append(s.data.employees, e)
	return e, nil
}

// SetEmployeeStatus updates a payroll record's status. A missing id reports
// no change.
func (s *Store) SetEmployeeStatus(id, status string) (bool, error) {
	if status != model.EmployeeEnabled && status != model.EmployeeDisabled {
		return false, ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.employees {
		if s.data.employees[i].ID == id {
			s.data.employees[i].Status = status
			return true, nil
		}
	}
	return false, nil
}

// --- commitments ---

// CommitmentFilter narrows ListCommitments. Empty fields match everything.
type CommitmentFilter struct {
	ConsumerID string
	BusinessID string
	EmployerID string
}

// ListCommitments returns commitments matching the filter, in storage order.
// The EmployerID field matches commitments whose consumer is one of that
// employer's payroll records.
func (s *Store) ListCommitments(f CommitmentFilter) []model.Commitment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var employeeIDs map[string]bool
	if f.EmployerID != "" {
		employeeIDs = make(map[string]bool)
		for _, e := range s.data.employees {
			if e.EmployerID == f.EmployerID {
				employeeIDs[e.ID] = true
			}
		}
	}

	var out []model.Commitment
	for _, c := range s.data.commitments {
		if f.ConsumerID != "" && c.ConsumerID != f.ConsumerID {
			continue
		}
		if f.BusinessID != "" && c.BusinessID != f.BusinessID {
			continue
		}
		if employeeIDs != nil && !employeeIDs[c.ConsumerID] {
			continue
		}
		out = append(out, cloneCommitment(c))
	}
	return out
}

// CommitmentByID returns a copy of the commitment with the given id.
func (s *Store) CommitmentByID(id string) (model.Commitment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.data.commitments {
		if c.ID == id {
			return cloneCommitment(c), true
		}
	}
	return model.Commitment{}, false
}

// CreateCommitment appends a new Active commitment with an empty history.
// Amount must be positive; with limit enforcement on, the consumer's new
// Active total must stay within their deduction limit.
func (s *Store) CreateCommitment(consumerID, businessID, businessName string, amount float64, startDate, nextDeductionDate string) (model.Commitment, error) {
	if amount <= 0 {
		return model.Commitment{}, ErrAmountNotPositive
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enforceLimit {
		headroom := s.deductionHeadroomLocked(consumerID)
		if amount > headroom {
			return model.Commitment{}, ErrLimitExceeded
		}
	}

	c := model.Commitment{
		ID:                "c-" + uuid.New().String(),
		ConsumerID:        consumerID,
		BusinessID:        businessID,
		BusinessName:      businessName,
		Amount:            amount,
		StartDate:         startDate,
		NextDeductionDate: nextDeductionDate,
		Status:            model.CommitmentActive,
		History:           []model.PaymentRecord{},
	}
	s.data.commitments = append(s.data.commitments, c)
	return cloneCommitment(c), nil
}

// AmendCommitmentAmount replaces the amount on an Active commitment. A
// non-Active or missing commitment reports no change. Amount must be
// positive; with limit enforcement on, the amended total must stay within
// the consumer's deduction limit.
func (s *Store) AmendCommitmentAmount(id string, amount float64) (bool, error) {
	if amount <= 0 {
		return false, ErrAmountNotPositive
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.commitments {
		c := &s.data.commitments[i]
		if c.ID != id {
			continue
		}
		if c.Status != model.CommitmentActive {
			return false, nil
		}
		if s.enforceLimit {
			// Headroom with this commitment's current amount excluded.
			headroom := s.deductionHeadroomLocked(c.ConsumerID) + c.Amount
			if amount > headroom {
				return false, ErrLimitExceeded
			}
		}
		c.Amount = amount
		return true, nil
	}
	return false, nil
}

// CancelCommitment sets an Active commitment to Cancelled. Cancelling an
// already-cancelled commitment is an idempotent no-op, as is a missing id.
func (s *Store) CancelCommitment(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.commitments {
		c := &s.data.commitments[i]
		if c.ID != id {
			continue
		}
		if c.Status != model.CommitmentActive {
			return false, nil
		}
		c.Status = model.CommitmentCancelled
		return true, nil
	}
	return false, nil
}

// AppendPayment appends a deduction event to a commitment's history. Records
// are never mutated or removed once appended.
func (s *Store) AppendPayment(commitmentID string, rec model.PaymentRecord) (bool, error) {
	if rec.Amount <= 0 {
		return false, ErrAmountNotPositive
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.commitments {
		if s.data.commitments[i].ID == commitmentID {
			if rec.ID == "" {
				rec.ID = "p-" + uuid.New().String()
			}
			s.data.commitments[i].History = append(s.data.commitments[i].History, rec)
			return true, nil
		}
	}
	return false, nil
}

// UpcomingDeductions returns the consumer's Active commitments ordered by
// next deduction date ascending (stable on ties), truncated to n.
func (s *Store) UpcomingDeductions(consumerID string, n int) []model.Commitment {
	out := s.ListCommitments(CommitmentFilter{ConsumerID: consumerID})
	active := out[:0]
	for _, c := range out {
		if c.Status == model.CommitmentActive {
			active = append(active, c)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].NextDeductionDate < active[j].NextDeductionDate
	})
	if len(active) > n {
		active = active[:n]
	}
	return active
}

// --- settlements ---

// SettlementsByBusiness returns a business's payout batches.
func (s *Store) SettlementsByBusiness(businessID string) []model.Settlement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Settlement
	for _, st := range s.data.settlements {
		if st.BusinessID == businessID {
			out = append(out, st)
		}
	}
	return out
}

// --- derived aggregates ---

// DeductionLimit computes the deduction-limit breakdown for a user.
func (s *Store) DeductionLimit(userID string) (limit.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data.users {
		if u.ID == userID {
			return limit.Compute(u, s.data.employees, s.data.employers, s.data.commitments), true
		}
	}
	return limit.Result{}, false
}

// deductionHeadroomLocked returns the consumer's remaining headroom. Caller
// must hold at least a read lock. An unknown consumer has zero headroom.
func (s *Store) deductionHeadroomLocked(consumerID string) float64 {
	for _, u := range s.data.users {
		if u.ID == consumerID {
			return limit.Compute(u, s.data.employees, s.data.employers, s.data.commitments).SafeToSpend
		}
	}
	return 0
}

// BusinessStats is the dashboard aggregate for one merchant.
type BusinessStats struct {
	MonthlyRecurring    float64 `json:"monthly_recurring"`
	ActiveSubscriptions int     `json:"active_subscriptions"`
	UniqueCustomers     int     `json:"unique_customers"`
}

// BusinessStatsFor derives a merchant's recurring revenue, active
// subscription count and distinct customer count across any status.
func (s *Store) BusinessStatsFor(businessID string) BusinessStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats BusinessStats
	customers := make(map[string]bool)
	for _, c := range s.data.commitments {
		if c.BusinessID != businessID {
			continue
		}
		customers[c.ConsumerID] = true
		if c.Status == model.CommitmentActive {
			stats.MonthlyRecurring += c.Amount
			stats.ActiveSubscriptions++
		}
	}
	stats.UniqueCustomers = len(customers)
	return stats
}

// EmployerStats is the dashboard aggregate for one employer.
type EmployerStats struct {
	TotalEmployees    int     `json:"total_employees"`
	ActiveEmployees   int     `json:"active_employees"`
	MonthlyDeductions float64 `json:"monthly_deductions"`
}

// EmployerStatsFor derives employee counts and the sum of Active commitment
// amounts across the employer's payroll records.
func (s *Store) EmployerStatsFor(employerID string) EmployerStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats EmployerStats
	employeeIDs := make(map[string]bool)
	for _, e := range s.data.employees {
		if e.EmployerID != employerID {
			continue
		}
		stats.TotalEmployees++
		if e.Status == model.EmployeeEnabled {
			stats.ActiveEmployees++
		}
		employeeIDs[e.ID] = true
	}
	for _, c := range s.data.commitments {
		if c.Status == model.CommitmentActive && employeeIDs[c.ConsumerID] {
			stats.MonthlyDeductions += c.Amount
		}
	}
	return stats
}

// PlatformStats is the admin overview aggregate.
type PlatformStats struct {
	Consumers   int `json:"consumers"`
	Employers   int `json:"employers"`
	Businesses  int `json:"businesses"`
	Commitments int `json:"commitments"`
}

// PlatformStatsAll counts the top-level collections for the admin overview.
func (s *Store) PlatformStatsAll() PlatformStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := PlatformStats{
		Employers:   len(s.data.employers),
		Businesses:  len(s.data.businesses),
		Commitments: len(s.data.commitments),
	}
	for _, u := range s.data.users {
		if u.Role == model.RoleConsumer {
			stats.Consumers++
		}
	}
	return stats
}

func cloneCommitment(c model.Commitment) model.Commitment {
	out := c
	out.History = make([]model.PaymentRecord, len(c.History))
	copy(out.History, c.History)
	return out
}

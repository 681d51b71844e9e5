package model

// Role identifies which persona a user acts as. A user has exactly one role
// for its lifetime.
type Role string

const (
	RoleConsumer Role = "CONSUMER"
	RoleEmployer Role = "EMPLOYER"
	RoleBusiness Role = "BUSINESS"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleConsumer, RoleEmployer, RoleBusiness, RoleAdmin:
		return true
	}
	return false
}

// User represents a platform account.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	EmployerID string `json:"employer_id,omitempty"` // for consumers and employer staff
	BusinessID string `json:"business_id,omitempty"` // for business users
	EmployeeID string `json:"employee_id,omitempty"` // link to the payroll record, resolved at seed time
}

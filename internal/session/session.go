// Package session models the acting identity and the optional read-only
// impersonation overlay, plus the per-role capability descriptors the
// router and clients key off.
package session

import (
	"github.com/labstack/echo/v4"

	"salarypay-service/internal/model"
	"salarypay-service/internal/store"
)

// ContextKey is where the middleware stores the resolved session.
const ContextKey = "session"

// Session is the resolved state of one authenticated request.
type Session struct {
	User         model.User
	Impersonated *model.User
}

// Effective returns the identity all read queries act as: the impersonated
// user while the overlay is set, the actor otherwise.
func (s Session) Effective() model.User {
	if s.Impersonated != nil {
		return *s.Impersonated
	}
	return s.User
}

// IsImpersonating reports whether the read-only overlay is active.
func (s Session) IsImpersonating() bool {
	return s.Impersonated != nil
}

// FromEcho retrieves the session placed in the request context by the auth
// middleware.
func FromEcho(c echo.Context) (Session, bool) {
	sess, ok := c.Get(ContextKey).(Session)
	return sess, ok
}

// Resolve looks up the user for a login claim by exact (email, role) pair.
// A miss auto-provisions a transient demo user with default links, which is
// a demo convenience rather than a security model.
func Resolve(st *store.Store, email string, role model.Role) model.User {
	if user, ok := st.UserByEmailRole(email, role); ok {
		return user
	}

	user := model.User{
		Name:  "Demo User",
		Email: email,
		Role:  role,
	}
	switch role {
	case model.RoleConsumer:
		user.EmployerID = store.DefaultEmployerID
	case model.RoleBusiness:
		user.BusinessID = store.DefaultBusinessID
	}
	return st.AddUser(user)
}

// Capability describes what a session may see and do. It is evaluated once
// at session start and returned with the login response so clients never
// re-derive it per view.
type Capability struct {
	Views     []string `json:"views"`
	CanMutate bool     `json:"can_mutate"`
}

var roleViews = map[model.Role][]string{
	model.RoleConsumer: {"dashboard", "commitments", "merchants"},
	model.RoleEmployer: {"dashboard", "employees", "rules"},
	model.RoleBusiness: {"dashboard", "customers", "settlements", "api"},
	model.RoleAdmin:    {"dashboard", "employers", "businesses", "consumers"},
}

// CapabilityFor returns the capability descriptor for a role. An active
// impersonation overlay suppresses every mutating operation regardless of
// the effective role.
func CapabilityFor(role model.Role, impersonating bool) Capability {
	views := roleViews[role]
	out := make([]string, len(views))
	copy(out, views)
	return Capability{
		Views:     out,
		CanMutate: !impersonating,
	}
}

package model

// User roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the authenticated storefront user as reported by the backend.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user may access admin-gated operations.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RedirectTarget returns the landing path for the user after login.
func (u *User) RedirectTarget() string {
	if u.IsAdmin() {
		return "/admin"
	}
	return "/"
}

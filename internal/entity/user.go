package entity

import "time"

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

type User struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"` // CUSTOMER, ADMIN
	Password    string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CanManageCatalog reports whether the user may create, edit or delete
// catalog entries.
func (u User) CanManageCatalog() bool {
	return u.Role == RoleAdmin
}

// RoleCanManageCatalog is the same check for callers that only carry the
// role claim from a token.
func RoleCanManageCatalog(role string) bool {
	return role == RoleAdmin
}

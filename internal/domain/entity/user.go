package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	RoleSupplier = "supplier"
)

// ValidRole indica si role es uno de los tres roles del sistema.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCustomer, RoleSupplier:
		return true
	}
	return false
}

// User representa una cuenta (admin, customer o supplier) en la tabla única users.
// Los campos opcionales vacíos se persisten como NULL.
type User struct {
	ID               int64
	Role             string
	FullName         string
	Email            string
	PasswordHash     string // bcrypt hash, nunca se devuelve al cliente
	Mobile           string // customer: mobile; supplier: contactNo
	Address          string // customer: address; supplier: businessAddress
	BusinessName     string // solo supplier
	BusinessDocument string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

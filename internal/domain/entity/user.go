package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is an account in the shop. Customers can purchase; admins additionally
// manage the catalog and restock.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after persisting
	Name         string
	Role         string // admin, customer
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

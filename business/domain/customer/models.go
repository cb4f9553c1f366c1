package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a client managed by a sales contact.
type Customer struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          string
	CompanyName    string
	DateCreated    time.Time
	DateModified   time.Time
	SalesContactID uuid.UUID
}

// NewCustomer represents all required data to create a new customer.
type NewCustomer struct {
	Name           string
	Email          string
	Phone          string
	CompanyName    string
	SalesContactID uuid.UUID
}

// UpdateCustomer represents the data that can be changed on a customer. Nil
// fields are left untouched.
type UpdateCustomer struct {
	Name           *string
	Email          *string
	Phone          *string
	CompanyName    *string
	SalesContactID *uuid.UUID
}

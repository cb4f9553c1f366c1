package contract

import (
	"github.com/google/uuid"
)

// Contract represents a contract held by a customer.
type Contract struct {
	ID               uuid.UUID
	TotalBalance     float64
	RemainingBalance float64
	Status           Status
	CustomerID       uuid.UUID
}

// NewContract represents all required data to create a new contract. Status is
// the textual value as entered, validated against the permitted ones.
type NewContract struct {
	TotalBalance     float64
	RemainingBalance float64
	Status           string
	CustomerID       uuid.UUID
}

// UpdateContract represents the data that can be changed on a contract. Nil
// fields are left untouched.
type UpdateContract struct {
	TotalBalance     *float64
	RemainingBalance *float64
	Status           *string
	CustomerID       *uuid.UUID
}

// Filter narrows down a contract listing. NotSigned takes precedence over
// Unpaid when both are set.
type Filter struct {
	NotSigned bool
	Unpaid    bool
}

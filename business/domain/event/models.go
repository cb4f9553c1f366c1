package event

import (
	"time"

	"github.com/google/uuid"
)

// Event represents an event organized for a signed contract.
type Event struct {
	ID               uuid.UUID
	StartDate        time.Time
	EndDate          time.Time
	Location         string
	Attendees        int
	Notes            string
	ContractID       uuid.UUID
	SupportContactID *uuid.UUID
}

// NewEvent represents all required data to create a new event. Dates are the
// textual values as entered, parsed during validation.
type NewEvent struct {
	StartDate        string
	EndDate          string
	Location         string
	Attendees        int
	Notes            string
	ContractID       uuid.UUID
	SupportContactID *uuid.UUID
}

// UpdateEvent represents the data that can be changed on an event. Nil fields
// are left untouched.
type UpdateEvent struct {
	StartDate        *string
	EndDate          *string
	Location         *string
	Attendees        *int
	Notes            *string
	ContractID       *uuid.UUID
	SupportContactID *uuid.UUID
}

// Filter narrows down an event listing. NoSupport takes precedence over
// SupportContactID when both are set.
type Filter struct {
	NoSupport        bool
	SupportContactID *uuid.UUID
}

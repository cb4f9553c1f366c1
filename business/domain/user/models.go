package user

import (
	"github.com/google/uuid"

	"github.com/epicevents/crm/business/domain/team"
)

// User represents an employee in the system. PasswordHash never leaves the
// business layer in any rendered output.
type User struct {
	ID             uuid.UUID
	PersonalNumber string
	Username       string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	PasswordHash   []byte
	Team           team.Kind
}

// NewUser represents all required data to create a new user. Password is the
// plaintext, it is hashed before storage.
type NewUser struct {
	PersonalNumber string
	Username       string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Password       string
	Team           team.Kind
}

// UpdateUser represents the data that can be changed on a user. Nil fields are
// left untouched, set fields overwrite the stored value.
type UpdateUser struct {
	PersonalNumber *string
	Username       *string
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Password       *string
	Team           *team.Kind
}

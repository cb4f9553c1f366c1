package postgres

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/domain/user"
)

// User represents how a user row is stored inside postgres. Optional fields
// are nullable columns.
type User struct {
	ID             string
	PersonalNumber string
	Username       string
	FirstName      sql.NullString
	LastName       sql.NullString
	Email          string
	Phone          sql.NullString
	PasswordHash   []byte
	TeamID         int
}

func toPostgresUser(u user.User) User {
	return User{
		ID:             u.ID.String(),
		PersonalNumber: u.PersonalNumber,
		Username:       u.Username,
		FirstName:      sql.NullString{String: u.FirstName, Valid: u.FirstName != ""},
		LastName:       sql.NullString{String: u.LastName, Valid: u.LastName != ""},
		Email:          u.Email,
		Phone:          sql.NullString{String: u.Phone, Valid: u.Phone != ""},
		PasswordHash:   u.PasswordHash,
		TeamID:         u.Team.ID(),
	}
}

func (u User) toServiceUser() (user.User, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return user.User{}, fmt.Errorf("parse id: %w", err)
	}
	kind, err := team.KindFromID(u.TeamID)
	if err != nil {
		return user.User{}, fmt.Errorf("team id: %w", err)
	}

	return user.User{
		ID:             id,
		PersonalNumber: u.PersonalNumber,
		Username:       u.Username,
		FirstName:      u.FirstName.String,
		LastName:       u.LastName.String,
		Email:          u.Email,
		Phone:          u.Phone.String,
		PasswordHash:   u.PasswordHash,
		Team:           kind,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (user.User, error) {
	var pgUser User
	if err := row.Scan(
		&pgUser.ID,
		&pgUser.PersonalNumber,
		&pgUser.Username,
		&pgUser.FirstName,
		&pgUser.LastName,
		&pgUser.Email,
		&pgUser.Phone,
		&pgUser.PasswordHash,
		&pgUser.TeamID,
	); err != nil {
		return user.User{}, fmt.Errorf("scanning row: %w", err)
	}
	return pgUser.toServiceUser()
}

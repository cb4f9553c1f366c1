// Package user provides the employee domain: validation, password hashing and
// CRUD against a decoupled store.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/validate"
)

const uniqueViolation = "23505"

var (
	ErrNotFound = errors.New("user not found")
	ErrUnique   = errors.New("username, email or employee id is already in use")

	// ErrWrongCredentials deliberately covers both an unknown username and a
	// bad password so a caller cannot tell which part was wrong.
	ErrWrongCredentials = errors.New("Wrong username or password")
)

type store interface {
	Create(ctx context.Context, usr User) error
	Update(ctx context.Context, usr User) error
	Delete(ctx context.Context, usr User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
}

// Service represents the set of APIs used to interact with the user domain.
type Service struct {
	store store
}

func NewService(store store) *Service {
	return &Service{store: store}
}

// ValidateNew checks every field of a new user and returns one message per
// invalid field, all collected before returning.
func ValidateNew(nu NewUser) validate.FieldErrors {
	var fe validate.FieldErrors
	fe = validate.Collect(fe,
		validate.Username(nu.Username),
		validate.PersonalNumber(nu.PersonalNumber),
		validate.Email(nu.Email),
		validate.Password(nu.Password),
	)
	return fe
}

// ValidateUpdate checks only the fields present in the partial update.
func ValidateUpdate(uu UpdateUser) validate.FieldErrors {
	var fe validate.FieldErrors
	if uu.Username != nil {
		fe = validate.Collect(fe, validate.Username(*uu.Username))
	}
	if uu.PersonalNumber != nil {
		fe = validate.Collect(fe, validate.PersonalNumber(*uu.PersonalNumber))
	}
	if uu.Email != nil {
		fe = validate.Collect(fe, validate.Email(*uu.Email))
	}
	if uu.Password != nil {
		fe = validate.Collect(fe, validate.Password(*uu.Password))
	}
	return fe
}

// CreateUser validates the data, hashes the password and saves the user.
// Returns validate.FieldErrors when the data is invalid and ErrUnique on a
// duplicated username, email or personal number.
func (s *Service) CreateUser(ctx context.Context, nu NewUser) (User, error) {
	if fe := ValidateNew(nu); len(fe) > 0 {
		return User{}, fe
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("generate from password: %w", err)
	}

	usr := User{
		ID:             uuid.New(),
		PersonalNumber: nu.PersonalNumber,
		Username:       nu.Username,
		FirstName:      nu.FirstName,
		LastName:       nu.LastName,
		Email:          nu.Email,
		Phone:          nu.Phone,
		PasswordHash:   hashed,
		Team:           nu.Team,
	}

	if err := s.store.Create(ctx, usr); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrUnique
		}
		return User{}, fmt.Errorf("create: %w", err)
	}

	return usr, nil
}

// CreateFirstAdmin creates a management user through the bootstrap path. It
// refuses to run unless the user table is empty.
func (s *Service) CreateFirstAdmin(ctx context.Context, nu NewUser) (User, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return User{}, fmt.Errorf("count: %w", err)
	}
	if count != 0 {
		return User{}, errors.New("the user table is not empty, the first admin already exists")
	}

	nu.Team = team.KindManagement
	return s.CreateUser(ctx, nu)
}

// GetUserByID queries the store for the user with id, returns ErrNotFound when
// there is none.
func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	usr, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("get by id: %w", err)
	}
	return usr, nil
}

// GetUserByUsername queries the store for the user with username, returns
// ErrNotFound when there is none.
func (s *Service) GetUserByUsername(ctx context.Context, username string) (User, error) {
	usr, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("get by username: %w", err)
	}
	return usr, nil
}

// ListUsers returns every user.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return users, nil
}

// UpdateUser applies the partial update on top of the given user and saves it.
// A supplied password is validated as plaintext and re-hashed.
func (s *Service) UpdateUser(ctx context.Context, usr User, uu UpdateUser) (User, error) {
	if fe := ValidateUpdate(uu); len(fe) > 0 {
		return User{}, fe
	}

	if uu.PersonalNumber != nil {
		usr.PersonalNumber = *uu.PersonalNumber
	}
	if uu.Username != nil {
		usr.Username = *uu.Username
	}
	if uu.FirstName != nil {
		usr.FirstName = *uu.FirstName
	}
	if uu.LastName != nil {
		usr.LastName = *uu.LastName
	}
	if uu.Email != nil {
		usr.Email = *uu.Email
	}
	if uu.Phone != nil {
		usr.Phone = *uu.Phone
	}
	if uu.Team != nil {
		usr.Team = *uu.Team
	}
	if uu.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*uu.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, fmt.Errorf("generate from password: %w", err)
		}
		usr.PasswordHash = hashed
	}

	if err := s.store.Update(ctx, usr); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrUnique
		}
		return User{}, fmt.Errorf("update: %w", err)
	}
	return usr, nil
}

// DeleteUser deletes the given user from the store.
func (s *Service) DeleteUser(ctx context.Context, usr User) error {
	if err := s.store.Delete(ctx, usr); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Authenticate checks the username and plaintext password pair and returns the
// matching user. Any mismatch yields ErrWrongCredentials without revealing
// which part failed.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	usr, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrWrongCredentials
		}
		return User{}, fmt.Errorf("get by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrWrongCredentials
	}
	return usr, nil
}

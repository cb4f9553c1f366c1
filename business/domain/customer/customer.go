// Package customer provides the customer domain: validation and CRUD against
// a decoupled store. DateModified is refreshed on every mutation.
package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/epicevents/crm/business/validate"
)

const uniqueViolation = "23505"

var (
	ErrNotFound = errors.New("customer not found")
	ErrUnique   = errors.New("email is already in use")
)

type store interface {
	Create(ctx context.Context, cst Customer) error
	Update(ctx context.Context, cst Customer) error
	Delete(ctx context.Context, cst Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (Customer, error)
	GetByEmail(ctx context.Context, email string) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
}

// Service represents the set of APIs used to interact with the customer domain.
type Service struct {
	store store
}

func NewService(store store) *Service {
	return &Service{store: store}
}

// ValidateNew checks every field of a new customer and returns one message per
// invalid field.
func ValidateNew(nc NewCustomer) validate.FieldErrors {
	var fe validate.FieldErrors
	fe = validate.Collect(fe, validate.Email(nc.Email))
	return fe
}

// ValidateUpdate checks only the fields present in the partial update.
func ValidateUpdate(uc UpdateCustomer) validate.FieldErrors {
	var fe validate.FieldErrors
	if uc.Email != nil {
		fe = validate.Collect(fe, validate.Email(*uc.Email))
	}
	return fe
}

// CreateCustomer validates the data and saves the customer with both
// timestamps set to now. Returns ErrUnique when the email is already taken.
func (s *Service) CreateCustomer(ctx context.Context, nc NewCustomer) (Customer, error) {
	if fe := ValidateNew(nc); len(fe) > 0 {
		return Customer{}, fe
	}

	now := time.Now()
	cst := Customer{
		ID:             uuid.New(),
		Name:           nc.Name,
		Email:          nc.Email,
		Phone:          nc.Phone,
		CompanyName:    nc.CompanyName,
		DateCreated:    now,
		DateModified:   now,
		SalesContactID: nc.SalesContactID,
	}

	if err := s.store.Create(ctx, cst); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Customer{}, ErrUnique
		}
		return Customer{}, fmt.Errorf("create: %w", err)
	}
	return cst, nil
}

// GetCustomerByID queries the store for the customer with id, returns
// ErrNotFound when there is none.
func (s *Service) GetCustomerByID(ctx context.Context, id uuid.UUID) (Customer, error) {
	cst, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, ErrNotFound
		}
		return Customer{}, fmt.Errorf("get by id: %w", err)
	}
	return cst, nil
}

// GetCustomerByEmail queries the store for the customer with email, returns
// ErrNotFound when there is none.
func (s *Service) GetCustomerByEmail(ctx context.Context, email string) (Customer, error) {
	cst, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, ErrNotFound
		}
		return Customer{}, fmt.Errorf("get by email: %w", err)
	}
	return cst, nil
}

// ListCustomers returns every customer.
func (s *Service) ListCustomers(ctx context.Context) ([]Customer, error) {
	customers, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return customers, nil
}

// UpdateCustomer applies the partial update on top of the given customer and
// saves it. DateModified is always refreshed. Returns ErrUnique when the
// new email is already taken by another customer.
func (s *Service) UpdateCustomer(ctx context.Context, cst Customer, uc UpdateCustomer) (Customer, error) {
	if fe := ValidateUpdate(uc); len(fe) > 0 {
		return Customer{}, fe
	}

	if uc.Name != nil {
		cst.Name = *uc.Name
	}
	if uc.Email != nil {
		cst.Email = *uc.Email
	}
	if uc.Phone != nil {
		cst.Phone = *uc.Phone
	}
	if uc.CompanyName != nil {
		cst.CompanyName = *uc.CompanyName
	}
	if uc.SalesContactID != nil {
		cst.SalesContactID = *uc.SalesContactID
	}
	cst.DateModified = time.Now()

	if err := s.store.Update(ctx, cst); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Customer{}, ErrUnique
		}
		return Customer{}, fmt.Errorf("update: %w", err)
	}
	return cst, nil
}

// DeleteCustomer deletes the given customer from the store.
func (s *Service) DeleteCustomer(ctx context.Context, cst Customer) error {
	if err := s.store.Delete(ctx, cst); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

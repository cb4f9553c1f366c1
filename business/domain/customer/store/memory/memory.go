// Package memory provides an in memory customer repository used for testing.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/epicevents/crm/business/domain/customer"
)

type Repository struct {
	Customers map[uuid.UUID]customer.Customer
	mu        sync.Mutex
}

// Create enforces the unique email constraint the same way the postgres
// repository does, by surfacing a 23505 error.
func (r *Repository) Create(ctx context.Context, cst customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(cst) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "customers_email_key"}
	}
	r.Customers[cst.ID] = cst
	return nil
}

func (r *Repository) Update(ctx context.Context, cst customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(cst) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "customers_email_key"}
	}
	r.Customers[cst.ID] = cst
	return nil
}

// emailTaken must be called with the lock held.
func (r *Repository) emailTaken(cst customer.Customer) bool {
	for _, other := range r.Customers {
		if other.ID != cst.ID && other.Email == cst.Email {
			return true
		}
	}
	return false
}

func (r *Repository) Delete(ctx context.Context, cst customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Customers, cst.ID)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cst, ok := r.Customers[id]; ok {
		return cst, nil
	}
	return customer.Customer{}, sql.ErrNoRows
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cst := range r.Customers {
		if cst.Email == email {
			return cst, nil
		}
	}
	return customer.Customer{}, sql.ErrNoRows
}

func (r *Repository) List(ctx context.Context) ([]customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customers := make([]customer.Customer, 0, len(r.Customers))
	for _, cst := range r.Customers {
		customers = append(customers, cst)
	}
	return customers, nil
}

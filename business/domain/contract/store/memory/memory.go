// Package memory provides an in memory contract repository used for testing.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/domain/contract"
)

type Repository struct {
	Contracts map[uuid.UUID]contract.Contract
	mu        sync.Mutex
}

func (r *Repository) Create(ctx context.Context, ct contract.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Contracts[ct.ID] = ct
	return nil
}

func (r *Repository) Update(ctx context.Context, ct contract.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Contracts[ct.ID] = ct
	return nil
}

func (r *Repository) Delete(ctx context.Context, ct contract.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Contracts, ct.ID)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (contract.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ct, ok := r.Contracts[id]; ok {
		return ct, nil
	}
	return contract.Contract{}, sql.ErrNoRows
}

// List applies the filter with the same precedence as the postgres
// repository: not signed wins over unpaid.
func (r *Repository) List(ctx context.Context, filter contract.Filter) ([]contract.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contracts := make([]contract.Contract, 0, len(r.Contracts))
	for _, ct := range r.Contracts {
		switch {
		case filter.NotSigned:
			if ct.Status != contract.StatusCreated {
				continue
			}
		case filter.Unpaid:
			if ct.RemainingBalance <= 0 {
				continue
			}
		}
		contracts = append(contracts, ct)
	}
	return contracts, nil
}

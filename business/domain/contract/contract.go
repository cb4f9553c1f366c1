// Package contract provides the contract domain: validation, CRUD against a
// decoupled store and the signing notification side channel.
package contract

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/validate"
)

var ErrNotFound = errors.New("contract not found")

const balanceMessage = "Remaining balance can't be greater than total balance."

type store interface {
	Create(ctx context.Context, ct Contract) error
	Update(ctx context.Context, ct Contract) error
	Delete(ctx context.Context, ct Contract) error
	GetByID(ctx context.Context, id uuid.UUID) (Contract, error)
	List(ctx context.Context, filter Filter) ([]Contract, error)
}

// Notifier receives the contract lifecycle notifications. The transition from
// Created to Signed is the only one reported.
type Notifier interface {
	ContractSigned(ctx context.Context, ct Contract) error
}

// Service represents the set of APIs used to interact with the contract
// domain.
type Service struct {
	store    store
	notifier Notifier
}

func NewService(store store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// ValidateNew checks every field of a new contract and returns one message per
// invalid field. The cross field balance rule is always in scope here since
// both balances are required at creation.
func ValidateNew(nc NewContract) validate.FieldErrors {
	var fe validate.FieldErrors
	if _, err := ParseStatus(nc.Status); err != nil {
		fe = validate.Collect(fe, err)
	}
	if nc.RemainingBalance > nc.TotalBalance {
		fe = append(fe, balanceMessage)
	}
	return fe
}

// ValidateUpdate checks only the fields present in the partial update. The
// cross field balance rule fires only when both balances are supplied in the
// same call.
func ValidateUpdate(uc UpdateContract) validate.FieldErrors {
	var fe validate.FieldErrors
	if uc.Status != nil {
		if _, err := ParseStatus(*uc.Status); err != nil {
			fe = validate.Collect(fe, err)
		}
	}
	if uc.TotalBalance != nil && uc.RemainingBalance != nil && *uc.RemainingBalance > *uc.TotalBalance {
		fe = append(fe, balanceMessage)
	}
	return fe
}

// CreateContract validates the data and saves the contract.
func (s *Service) CreateContract(ctx context.Context, nc NewContract) (Contract, error) {
	if fe := ValidateNew(nc); len(fe) > 0 {
		return Contract{}, fe
	}

	status, _ := ParseStatus(nc.Status)
	ct := Contract{
		ID:               uuid.New(),
		TotalBalance:     nc.TotalBalance,
		RemainingBalance: nc.RemainingBalance,
		Status:           status,
		CustomerID:       nc.CustomerID,
	}

	if err := s.store.Create(ctx, ct); err != nil {
		return Contract{}, fmt.Errorf("create: %w", err)
	}
	return ct, nil
}

// GetContractByID queries the store for the contract with id, returns
// ErrNotFound when there is none.
func (s *Service) GetContractByID(ctx context.Context, id uuid.UUID) (Contract, error) {
	ct, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Contract{}, ErrNotFound
		}
		return Contract{}, fmt.Errorf("get by id: %w", err)
	}
	return ct, nil
}

// ListContracts returns the contracts matching the filter.
func (s *Service) ListContracts(ctx context.Context, filter Filter) ([]Contract, error) {
	contracts, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return contracts, nil
}

// UpdateContract applies the partial update on top of the given contract and
// saves it. When only one balance is supplied the cross field rule is checked
// against the stored counterpart. Moving from Created to Signed emits the
// signing notification.
func (s *Service) UpdateContract(ctx context.Context, ct Contract, uc UpdateContract) (Contract, error) {
	if fe := ValidateUpdate(uc); len(fe) > 0 {
		return Contract{}, fe
	}

	total := ct.TotalBalance
	remaining := ct.RemainingBalance
	if uc.TotalBalance != nil {
		total = *uc.TotalBalance
	}
	if uc.RemainingBalance != nil {
		remaining = *uc.RemainingBalance
	}
	if remaining > total {
		return Contract{}, validate.FieldErrors{balanceMessage}
	}

	previous := ct.Status

	ct.TotalBalance = total
	ct.RemainingBalance = remaining
	if uc.Status != nil {
		// already validated above
		status, _ := ParseStatus(*uc.Status)
		ct.Status = status
	}
	if uc.CustomerID != nil {
		ct.CustomerID = *uc.CustomerID
	}

	if err := s.store.Update(ctx, ct); err != nil {
		return Contract{}, fmt.Errorf("update: %w", err)
	}

	if previous == StatusCreated && ct.Status == StatusSigned {
		if err := s.notifier.ContractSigned(ctx, ct); err != nil {
			return Contract{}, fmt.Errorf("contract signed notification: %w", err)
		}
	}
	return ct, nil
}

// DeleteContract deletes the given contract from the store.
func (s *Service) DeleteContract(ctx context.Context, ct Contract) error {
	if err := s.store.Delete(ctx, ct); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

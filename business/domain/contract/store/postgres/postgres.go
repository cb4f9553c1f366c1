// Package postgres provides the contract repository backed by postgres.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/database/postgres"
	"github.com/epicevents/crm/business/domain/contract"
)

// Repository represents the set of APIs used to interact with the contracts
// table.
type Repository struct {
	client *postgres.Client
}

func NewRepository(pgClient *postgres.Client) *Repository {
	return &Repository{client: pgClient}
}

func (r *Repository) Create(ctx context.Context, ct contract.Contract) error {
	const q = `
	INSERT INTO contracts
		(id,total_balance,remaining_balance,status,customer_id)
	VALUES
		($1,$2,$3,$4,$5)
	`
	_, err := r.client.DB.ExecContext(ctx, q,
		ct.ID.String(),
		ct.TotalBalance,
		ct.RemainingBalance,
		ct.Status.String(),
		ct.CustomerID.String(),
	)
	if err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, ct contract.Contract) error {
	const q = `
	UPDATE
		contracts
	SET
		total_balance = $1,
		remaining_balance = $2,
		status = $3,
		customer_id = $4
	WHERE id = $5
	`
	if _, err := r.client.DB.ExecContext(ctx, q,
		ct.TotalBalance,
		ct.RemainingBalance,
		ct.Status.String(),
		ct.CustomerID.String(),
		ct.ID.String(),
	); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, ct contract.Contract) error {
	const q = `DELETE FROM contracts WHERE id = $1`
	if _, err := r.client.DB.ExecContext(ctx, q, ct.ID.String()); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (contract.Contract, error) {
	const q = `
	SELECT
		id,total_balance,remaining_balance,status,customer_id
	FROM contracts
	WHERE id = $1
	`
	row := r.client.DB.QueryRowContext(ctx, q, id.String())
	return scanContract(row)
}

// List narrows the query with the filter. Not signed wins over unpaid when
// both flags are set.
func (r *Repository) List(ctx context.Context, filter contract.Filter) ([]contract.Contract, error) {
	q := `
	SELECT
		id,total_balance,remaining_balance,status,customer_id
	FROM contracts
	`
	var args []any
	switch {
	case filter.NotSigned:
		q += ` WHERE status = $1`
		args = append(args, contract.StatusCreated.String())
	case filter.Unpaid:
		q += ` WHERE remaining_balance > 0`
	}

	rows, err := r.client.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		ct, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return contracts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContract(row scanner) (contract.Contract, error) {
	var (
		ct         contract.Contract
		id         string
		status     string
		customerID string
	)
	if err := row.Scan(
		&id,
		&ct.TotalBalance,
		&ct.RemainingBalance,
		&status,
		&customerID,
	); err != nil {
		return contract.Contract{}, fmt.Errorf("scanning row: %w", err)
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("parse id: %w", err)
	}
	parsedStatus, err := contract.ParseStatus(status)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("parse status: %w", err)
	}
	parsedCustomer, err := uuid.Parse(customerID)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("parse customer id: %w", err)
	}

	ct.ID = parsedID
	ct.Status = parsedStatus
	ct.CustomerID = parsedCustomer
	return ct, nil
}

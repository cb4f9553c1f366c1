// Package postgres provides the customer repository backed by postgres.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/database/postgres"
	"github.com/epicevents/crm/business/domain/customer"
)

// Repository represents the set of APIs used to interact with the customers
// table.
type Repository struct {
	client *postgres.Client
}

func NewRepository(pgClient *postgres.Client) *Repository {
	return &Repository{client: pgClient}
}

func (r *Repository) Create(ctx context.Context, cst customer.Customer) error {
	const q = `
	INSERT INTO customers
		(id,name,email,phone,company_name,date_created,date_modified,sales_contact_id)
	VALUES
		($1,$2,$3,$4,$5,$6,$7,$8)
	`
	_, err := r.client.DB.ExecContext(ctx, q,
		cst.ID.String(),
		cst.Name,
		cst.Email,
		nullable(cst.Phone),
		cst.CompanyName,
		cst.DateCreated,
		cst.DateModified,
		cst.SalesContactID.String(),
	)
	if err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, cst customer.Customer) error {
	const q = `
	UPDATE
		customers
	SET
		name = $1,
		email = $2,
		phone = $3,
		company_name = $4,
		date_modified = $5,
		sales_contact_id = $6
	WHERE id = $7
	`
	if _, err := r.client.DB.ExecContext(ctx, q,
		cst.Name,
		cst.Email,
		nullable(cst.Phone),
		cst.CompanyName,
		cst.DateModified,
		cst.SalesContactID.String(),
		cst.ID.String(),
	); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, cst customer.Customer) error {
	const q = `DELETE FROM customers WHERE id = $1`
	if _, err := r.client.DB.ExecContext(ctx, q, cst.ID.String()); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (customer.Customer, error) {
	const q = `
	SELECT
		id,name,email,phone,company_name,date_created,date_modified,sales_contact_id
	FROM customers
	WHERE id = $1
	`
	row := r.client.DB.QueryRowContext(ctx, q, id.String())
	return scanCustomer(row)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (customer.Customer, error) {
	const q = `
	SELECT
		id,name,email,phone,company_name,date_created,date_modified,sales_contact_id
	FROM customers
	WHERE email = $1
	`
	row := r.client.DB.QueryRowContext(ctx, q, email)
	return scanCustomer(row)
}

func (r *Repository) List(ctx context.Context) ([]customer.Customer, error) {
	const q = `
	SELECT
		id,name,email,phone,company_name,date_created,date_modified,sales_contact_id
	FROM customers
	ORDER BY name
	`
	rows, err := r.client.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		cst, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, cst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return customers, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row scanner) (customer.Customer, error) {
	var (
		cst          customer.Customer
		id           string
		phone        sql.NullString
		salesContact string
	)
	if err := row.Scan(
		&id,
		&cst.Name,
		&cst.Email,
		&phone,
		&cst.CompanyName,
		&cst.DateCreated,
		&cst.DateModified,
		&salesContact,
	); err != nil {
		return customer.Customer{}, fmt.Errorf("scanning row: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return customer.Customer{}, fmt.Errorf("parse id: %w", err)
	}
	contact, err := uuid.Parse(salesContact)
	if err != nil {
		return customer.Customer{}, fmt.Errorf("parse sales contact id: %w", err)
	}

	cst.ID = parsed
	cst.Phone = phone.String
	cst.SalesContactID = contact
	return cst, nil
}

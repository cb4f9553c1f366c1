// Package postgres provides the user repository backed by postgres.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/database/postgres"
	"github.com/epicevents/crm/business/domain/user"
)

// Repository represents the set of APIs used to interact with the users table.
type Repository struct {
	client *postgres.Client
}

func NewRepository(pgClient *postgres.Client) *Repository {
	return &Repository{client: pgClient}
}

func (r *Repository) Create(ctx context.Context, usr user.User) error {
	const q = `
	INSERT INTO users
		(id,personal_number,username,first_name,last_name,email,phone,password_hash,team_id)
	VALUES
		($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	pgUser := toPostgresUser(usr)

	_, err := r.client.DB.ExecContext(ctx, q,
		pgUser.ID,
		pgUser.PersonalNumber,
		pgUser.Username,
		pgUser.FirstName,
		pgUser.LastName,
		pgUser.Email,
		pgUser.Phone,
		pgUser.PasswordHash,
		pgUser.TeamID,
	)
	if err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, usr user.User) error {
	const q = `
	UPDATE
		users
	SET
		personal_number = $1,
		username = $2,
		first_name = $3,
		last_name = $4,
		email = $5,
		phone = $6,
		password_hash = $7,
		team_id = $8
	WHERE id = $9
	`
	pgUser := toPostgresUser(usr)

	if _, err := r.client.DB.ExecContext(ctx, q,
		pgUser.PersonalNumber,
		pgUser.Username,
		pgUser.FirstName,
		pgUser.LastName,
		pgUser.Email,
		pgUser.Phone,
		pgUser.PasswordHash,
		pgUser.TeamID,
		pgUser.ID,
	); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, usr user.User) error {
	const q = `DELETE FROM users WHERE id = $1`
	if _, err := r.client.DB.ExecContext(ctx, q, usr.ID.String()); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	const q = `
	SELECT
		id,personal_number,username,first_name,last_name,email,phone,password_hash,team_id
	FROM users
	WHERE id = $1
	`
	row := r.client.DB.QueryRowContext(ctx, q, id.String())
	return scanUser(row)
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	const q = `
	SELECT
		id,personal_number,username,first_name,last_name,email,phone,password_hash,team_id
	FROM users
	WHERE username = $1
	`
	row := r.client.DB.QueryRowContext(ctx, q, username)
	return scanUser(row)
}

func (r *Repository) List(ctx context.Context) ([]user.User, error) {
	const q = `
	SELECT
		id,personal_number,username,first_name,last_name,email,phone,password_hash,team_id
	FROM users
	ORDER BY username
	`
	rows, err := r.client.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		usr, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, usr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return users, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM users`
	var count int
	if err := r.client.DB.QueryRowContext(ctx, q).Scan(&count); err != nil {
		return 0, fmt.Errorf("query row context: %w", err)
	}
	return count, nil
}

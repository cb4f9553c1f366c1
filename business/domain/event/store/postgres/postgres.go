// Package postgres provides the event repository backed by postgres.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/database/postgres"
	"github.com/epicevents/crm/business/domain/event"
)

// Repository represents the set of APIs used to interact with the events
// table.
type Repository struct {
	client *postgres.Client
}

func NewRepository(pgClient *postgres.Client) *Repository {
	return &Repository{client: pgClient}
}

func (r *Repository) Create(ctx context.Context, ev event.Event) error {
	const q = `
	INSERT INTO events
		(id,event_start_date,event_end_date,location,attendees,notes,contract_id,support_contact_id)
	VALUES
		($1,$2,$3,$4,$5,$6,$7,$8)
	`
	_, err := r.client.DB.ExecContext(ctx, q,
		ev.ID.String(),
		ev.StartDate,
		ev.EndDate,
		ev.Location,
		ev.Attendees,
		ev.Notes,
		ev.ContractID.String(),
		nullableID(ev.SupportContactID),
	)
	if err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, ev event.Event) error {
	const q = `
	UPDATE
		events
	SET
		event_start_date = $1,
		event_end_date = $2,
		location = $3,
		attendees = $4,
		notes = $5,
		contract_id = $6,
		support_contact_id = $7
	WHERE id = $8
	`
	if _, err := r.client.DB.ExecContext(ctx, q,
		ev.StartDate,
		ev.EndDate,
		ev.Location,
		ev.Attendees,
		ev.Notes,
		ev.ContractID.String(),
		nullableID(ev.SupportContactID),
		ev.ID.String(),
	); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, ev event.Event) error {
	const q = `DELETE FROM events WHERE id = $1`
	if _, err := r.client.DB.ExecContext(ctx, q, ev.ID.String()); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (event.Event, error) {
	const q = `
	SELECT
		id,event_start_date,event_end_date,location,attendees,notes,contract_id,support_contact_id
	FROM events
	WHERE id = $1
	`
	row := r.client.DB.QueryRowContext(ctx, q, id.String())
	return scanEvent(row)
}

// List narrows the query with the filter. No support contact wins over the
// requesting user when both are set.
func (r *Repository) List(ctx context.Context, filter event.Filter) ([]event.Event, error) {
	q := `
	SELECT
		id,event_start_date,event_end_date,location,attendees,notes,contract_id,support_contact_id
	FROM events
	`
	var args []any
	switch {
	case filter.NoSupport:
		q += ` WHERE support_contact_id IS NULL`
	case filter.SupportContactID != nil:
		q += ` WHERE support_contact_id = $1`
		args = append(args, filter.SupportContactID.String())
	}

	rows, err := r.client.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return events, nil
}

func nullableID(id *uuid.UUID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (event.Event, error) {
	var (
		ev         event.Event
		id         string
		contractID string
		support    sql.NullString
	)
	if err := row.Scan(
		&id,
		&ev.StartDate,
		&ev.EndDate,
		&ev.Location,
		&ev.Attendees,
		&ev.Notes,
		&contractID,
		&support,
	); err != nil {
		return event.Event{}, fmt.Errorf("scanning row: %w", err)
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return event.Event{}, fmt.Errorf("parse id: %w", err)
	}
	parsedContract, err := uuid.Parse(contractID)
	if err != nil {
		return event.Event{}, fmt.Errorf("parse contract id: %w", err)
	}

	ev.ID = parsedID
	ev.ContractID = parsedContract

	if support.Valid {
		parsedSupport, err := uuid.Parse(support.String)
		if err != nil {
			return event.Event{}, fmt.Errorf("parse support contact id: %w", err)
		}
		ev.SupportContactID = &parsedSupport
	}
	return ev, nil
}

// Package fixtures exports the full dataset to json and loads it back,
// preserving record ids and password hashes so a dump can move between
// environments.
package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/domain/contract"
	"github.com/epicevents/crm/business/domain/customer"
	"github.com/epicevents/crm/business/domain/event"
	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/domain/user"
)

// The store interfaces are the raw repositories, not the services. Import has
// to write records exactly as dumped, ids and hashes included, which the
// services would regenerate.

type userStore interface {
	Create(ctx context.Context, usr user.User) error
	List(ctx context.Context) ([]user.User, error)
}

type customerStore interface {
	Create(ctx context.Context, cst customer.Customer) error
	List(ctx context.Context) ([]customer.Customer, error)
}

type contractStore interface {
	Create(ctx context.Context, ct contract.Contract) error
	List(ctx context.Context, filter contract.Filter) ([]contract.Contract, error)
}

type eventStore interface {
	Create(ctx context.Context, ev event.Event) error
	List(ctx context.Context, filter event.Filter) ([]event.Event, error)
}

// Stores bundles the repositories the exporter and importer work against.
type Stores struct {
	Users     userStore
	Customers customerStore
	Contracts contractStore
	Events    eventStore
}

type teamRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type userRecord struct {
	ID             uuid.UUID `json:"id"`
	PersonalNumber string    `json:"personalNumber"`
	Username       string    `json:"username"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	PasswordHash   []byte    `json:"passwordHash"`
	TeamID         int       `json:"teamId"`
}

type customerRecord struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CompanyName    string    `json:"companyName"`
	DateCreated    time.Time `json:"dateCreated"`
	DateModified   time.Time `json:"dateModified"`
	SalesContactID uuid.UUID `json:"salesContactId"`
}

type contractRecord struct {
	ID               uuid.UUID `json:"id"`
	TotalBalance     float64   `json:"totalBalance"`
	RemainingBalance float64   `json:"remainingBalance"`
	Status           string    `json:"status"`
	CustomerID       uuid.UUID `json:"customerId"`
}

type eventRecord struct {
	ID               uuid.UUID  `json:"id"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          time.Time  `json:"endDate"`
	Location         string     `json:"location"`
	Attendees        int        `json:"attendees"`
	Notes            string     `json:"notes"`
	ContractID       uuid.UUID  `json:"contractId"`
	SupportContactID *uuid.UUID `json:"supportContactId"`
}

// Bundle is the wire format of a dump. Teams travel with the dump for
// readability but are seeded by the schema migration, so Import skips them.
type Bundle struct {
	Teams     []teamRecord     `json:"teams"`
	Users     []userRecord     `json:"users"`
	Customers []customerRecord `json:"customers"`
	Contracts []contractRecord `json:"contracts"`
	Events    []eventRecord    `json:"events"`
}

// Export reads everything from the stores and writes the dump as indented
// json into w.
func Export(ctx context.Context, stores Stores, w io.Writer) error {
	var b Bundle

	for _, k := range team.Kinds() {
		b.Teams = append(b.Teams, teamRecord{ID: k.ID(), Name: k.String()})
	}

	users, err := stores.Users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, usr := range users {
		b.Users = append(b.Users, userRecord{
			ID:             usr.ID,
			PersonalNumber: usr.PersonalNumber,
			Username:       usr.Username,
			FirstName:      usr.FirstName,
			LastName:       usr.LastName,
			Email:          usr.Email,
			Phone:          usr.Phone,
			PasswordHash:   usr.PasswordHash,
			TeamID:         usr.Team.ID(),
		})
	}

	customers, err := stores.Customers.List(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	for _, cst := range customers {
		b.Customers = append(b.Customers, customerRecord{
			ID:             cst.ID,
			Name:           cst.Name,
			Email:          cst.Email,
			Phone:          cst.Phone,
			CompanyName:    cst.CompanyName,
			DateCreated:    cst.DateCreated,
			DateModified:   cst.DateModified,
			SalesContactID: cst.SalesContactID,
		})
	}

	contracts, err := stores.Contracts.List(ctx, contract.Filter{})
	if err != nil {
		return fmt.Errorf("list contracts: %w", err)
	}
	for _, ct := range contracts {
		b.Contracts = append(b.Contracts, contractRecord{
			ID:               ct.ID,
			TotalBalance:     ct.TotalBalance,
			RemainingBalance: ct.RemainingBalance,
			Status:           ct.Status.String(),
			CustomerID:       ct.CustomerID,
		})
	}

	events, err := stores.Events.List(ctx, event.Filter{})
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	for _, ev := range events {
		b.Events = append(b.Events, eventRecord{
			ID:               ev.ID,
			StartDate:        ev.StartDate,
			EndDate:          ev.EndDate,
			Location:         ev.Location,
			Attendees:        ev.Attendees,
			Notes:            ev.Notes,
			ContractID:       ev.ContractID,
			SupportContactID: ev.SupportContactID,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Import reads a dump from r and writes every record into the stores in
// dependency order: users, customers, contracts, events.
func Import(ctx context.Context, stores Stores, r io.Reader) error {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	for _, rec := range b.Users {
		kind, err := team.KindFromID(rec.TeamID)
		if err != nil {
			return fmt.Errorf("user %s: %w", rec.Username, err)
		}
		usr := user.User{
			ID:             rec.ID,
			PersonalNumber: rec.PersonalNumber,
			Username:       rec.Username,
			FirstName:      rec.FirstName,
			LastName:       rec.LastName,
			Email:          rec.Email,
			Phone:          rec.Phone,
			PasswordHash:   rec.PasswordHash,
			Team:           kind,
		}
		if err := stores.Users.Create(ctx, usr); err != nil {
			return fmt.Errorf("create user %s: %w", rec.Username, err)
		}
	}

	for _, rec := range b.Customers {
		cst := customer.Customer{
			ID:             rec.ID,
			Name:           rec.Name,
			Email:          rec.Email,
			Phone:          rec.Phone,
			CompanyName:    rec.CompanyName,
			DateCreated:    rec.DateCreated,
			DateModified:   rec.DateModified,
			SalesContactID: rec.SalesContactID,
		}
		if err := stores.Customers.Create(ctx, cst); err != nil {
			return fmt.Errorf("create customer %s: %w", rec.ID, err)
		}
	}

	for _, rec := range b.Contracts {
		status, err := contract.ParseStatus(rec.Status)
		if err != nil {
			return fmt.Errorf("contract %s: %w", rec.ID, err)
		}
		ct := contract.Contract{
			ID:               rec.ID,
			TotalBalance:     rec.TotalBalance,
			RemainingBalance: rec.RemainingBalance,
			Status:           status,
			CustomerID:       rec.CustomerID,
		}
		if err := stores.Contracts.Create(ctx, ct); err != nil {
			return fmt.Errorf("create contract %s: %w", rec.ID, err)
		}
	}

	for _, rec := range b.Events {
		ev := event.Event{
			ID:               rec.ID,
			StartDate:        rec.StartDate,
			EndDate:          rec.EndDate,
			Location:         rec.Location,
			Attendees:        rec.Attendees,
			Notes:            rec.Notes,
			ContractID:       rec.ContractID,
			SupportContactID: rec.SupportContactID,
		}
		if err := stores.Events.Create(ctx, ev); err != nil {
			return fmt.Errorf("create event %s: %w", rec.ID, err)
		}
	}

	return nil
}

// Package event provides the event domain: date parsing and validation plus
// CRUD against a decoupled store.
package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/validate"
)

var ErrNotFound = errors.New("event not found")

// DateLayout is the fixed textual format event dates are entered in.
const DateLayout = "2006-01-02 15:04"

const (
	dateFormatMessage = "Invalid date, expected format: YYYY-MM-DD HH:MM."
	dateOrderMessage  = "Event end date must be after event start date."
)

// ParseDate parses an event date from its fixed textual format.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.New(dateFormatMessage)
	}
	return t, nil
}

type store interface {
	Create(ctx context.Context, ev Event) error
	Update(ctx context.Context, ev Event) error
	Delete(ctx context.Context, ev Event) error
	GetByID(ctx context.Context, id uuid.UUID) (Event, error)
	List(ctx context.Context, filter Filter) ([]Event, error)
}

// Service represents the set of APIs used to interact with the event domain.
type Service struct {
	store store
}

func NewService(store store) *Service {
	return &Service{store: store}
}

// ValidateNew checks every field of a new event and returns one message per
// invalid field. The date order rule fires only when both dates parse.
func ValidateNew(ne NewEvent) validate.FieldErrors {
	var fe validate.FieldErrors

	start, startErr := ParseDate(ne.StartDate)
	if startErr != nil {
		fe = validate.Collect(fe, startErr)
	}
	end, endErr := ParseDate(ne.EndDate)
	if endErr != nil {
		fe = validate.Collect(fe, endErr)
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		fe = append(fe, dateOrderMessage)
	}
	return fe
}

// ValidateUpdate checks only the fields present in the partial update. The
// date order rule fires only when both dates are supplied in the same call.
func ValidateUpdate(ue UpdateEvent) validate.FieldErrors {
	var fe validate.FieldErrors

	var start, end time.Time
	var startErr, endErr error
	if ue.StartDate != nil {
		start, startErr = ParseDate(*ue.StartDate)
		fe = validate.Collect(fe, startErr)
	}
	if ue.EndDate != nil {
		end, endErr = ParseDate(*ue.EndDate)
		fe = validate.Collect(fe, endErr)
	}
	if ue.StartDate != nil && ue.EndDate != nil && startErr == nil && endErr == nil && end.Before(start) {
		fe = append(fe, dateOrderMessage)
	}
	return fe
}

// CreateEvent validates the data and saves the event. The business rules tied
// to the owning contract (signed status, sales contact ownership) are enforced
// by the calling operation, not here.
func (s *Service) CreateEvent(ctx context.Context, ne NewEvent) (Event, error) {
	if fe := ValidateNew(ne); len(fe) > 0 {
		return Event{}, fe
	}

	start, _ := ParseDate(ne.StartDate)
	end, _ := ParseDate(ne.EndDate)

	ev := Event{
		ID:               uuid.New(),
		StartDate:        start,
		EndDate:          end,
		Location:         ne.Location,
		Attendees:        ne.Attendees,
		Notes:            ne.Notes,
		ContractID:       ne.ContractID,
		SupportContactID: ne.SupportContactID,
	}

	if err := s.store.Create(ctx, ev); err != nil {
		return Event{}, fmt.Errorf("create: %w", err)
	}
	return ev, nil
}

// GetEventByID queries the store for the event with id, returns ErrNotFound
// when there is none.
func (s *Service) GetEventByID(ctx context.Context, id uuid.UUID) (Event, error) {
	ev, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrNotFound
		}
		return Event{}, fmt.Errorf("get by id: %w", err)
	}
	return ev, nil
}

// ListEvents returns the events matching the filter.
func (s *Service) ListEvents(ctx context.Context, filter Filter) ([]Event, error) {
	events, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return events, nil
}

// UpdateEvent applies the partial update on top of the given event and saves
// it. When only one date is supplied the order rule is checked against the
// stored counterpart.
func (s *Service) UpdateEvent(ctx context.Context, ev Event, ue UpdateEvent) (Event, error) {
	if fe := ValidateUpdate(ue); len(fe) > 0 {
		return Event{}, fe
	}

	start := ev.StartDate
	end := ev.EndDate
	if ue.StartDate != nil {
		start, _ = ParseDate(*ue.StartDate)
	}
	if ue.EndDate != nil {
		end, _ = ParseDate(*ue.EndDate)
	}
	if end.Before(start) {
		return Event{}, validate.FieldErrors{dateOrderMessage}
	}

	ev.StartDate = start
	ev.EndDate = end
	if ue.Location != nil {
		ev.Location = *ue.Location
	}
	if ue.Attendees != nil {
		ev.Attendees = *ue.Attendees
	}
	if ue.Notes != nil {
		ev.Notes = *ue.Notes
	}
	if ue.ContractID != nil {
		ev.ContractID = *ue.ContractID
	}
	if ue.SupportContactID != nil {
		ev.SupportContactID = ue.SupportContactID
	}

	if err := s.store.Update(ctx, ev); err != nil {
		return Event{}, fmt.Errorf("update: %w", err)
	}
	return ev, nil
}

// DeleteEvent deletes the given event from the store.
func (s *Service) DeleteEvent(ctx context.Context, ev Event) error {
	if err := s.store.Delete(ctx, ev); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

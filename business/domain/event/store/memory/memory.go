// Package memory provides an in memory event repository used for testing.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/domain/event"
)

type Repository struct {
	Events map[uuid.UUID]event.Event
	mu     sync.Mutex
}

func (r *Repository) Create(ctx context.Context, ev event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events[ev.ID] = ev
	return nil
}

func (r *Repository) Update(ctx context.Context, ev event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events[ev.ID] = ev
	return nil
}

func (r *Repository) Delete(ctx context.Context, ev event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Events, ev.ID)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev, ok := r.Events[id]; ok {
		return ev, nil
	}
	return event.Event{}, sql.ErrNoRows
}

// List applies the filter with the same precedence as the postgres
// repository: no support contact wins over the requesting user.
func (r *Repository) List(ctx context.Context, filter event.Filter) ([]event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]event.Event, 0, len(r.Events))
	for _, ev := range r.Events {
		switch {
		case filter.NoSupport:
			if ev.SupportContactID != nil {
				continue
			}
		case filter.SupportContactID != nil:
			if ev.SupportContactID == nil || *ev.SupportContactID != *filter.SupportContactID {
				continue
			}
		}
		events = append(events, ev)
	}
	return events, nil
}

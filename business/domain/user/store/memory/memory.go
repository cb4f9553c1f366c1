// Package memory provides an in memory user repository used for testing.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/domain/user"
)

type Repository struct {
	Users map[uuid.UUID]user.User
	mu    sync.Mutex
}

func (r *Repository) Create(ctx context.Context, usr user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Users[usr.ID] = usr
	return nil
}

func (r *Repository) Update(ctx context.Context, usr user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Users[usr.ID] = usr
	return nil
}

func (r *Repository) Delete(ctx context.Context, usr user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Users, usr.ID)
	return nil
}

// GetByID returns sql.ErrNoRows when there is no user with that id, same as
// the postgres repository.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if usr, ok := r.Users[id]; ok {
		return usr, nil
	}
	return user.User{}, sql.ErrNoRows
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, usr := range r.Users {
		if usr.Username == username {
			return usr, nil
		}
	}
	return user.User{}, sql.ErrNoRows
}

func (r *Repository) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]user.User, 0, len(r.Users))
	for _, usr := range r.Users {
		users = append(users, usr)
	}
	return users, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Users), nil
}

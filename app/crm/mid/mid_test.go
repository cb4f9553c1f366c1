package mid_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/epicevents/crm/app/crm/auth"
	"github.com/epicevents/crm/app/crm/errs"
	"github.com/epicevents/crm/app/crm/mid"
	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/domain/user"
	"github.com/epicevents/crm/business/domain/user/store/memory"
)

func setup(t *testing.T) (*auth.Auth, string) {
	users := user.NewService(&memory.Repository{Users: map[uuid.UUID]user.User{}})
	a := auth.New([]byte("test-secret-used-only-in-tests"), "crm", time.Hour, users)

	_, err := users.CreateUser(context.Background(), user.NewUser{
		PersonalNumber: "1234567890",
		Username:       "salesrep",
		FirstName:      "Marguerite",
		LastName:       "Dubois",
		Email:          "marguerite@example.com",
		Password:       "Password123",
		Team:           team.KindSales,
	})
	if err != nil {
		t.Fatalf("expected the user to be created: %s", err)
	}

	tkn, err := a.Login(context.Background(), "salesrep", "Password123")
	if err != nil {
		t.Fatalf("expected the login to succeed: %s", err)
	}
	return a, tkn
}

func TestAuthenticateInjectsUser(t *testing.T) {
	a, tkn := setup(t)

	var called bool
	handler := mid.Apply(func(ctx context.Context) error {
		called = true
		usr, err := auth.GetUser(ctx)
		if err != nil {
			t.Fatalf("expected the user in ctx: %s", err)
		}
		if usr.Username != "salesrep" {
			t.Errorf("unexpected user in ctx: %s", usr.Username)
		}
		return nil
	}, mid.Authenticate(a, tkn))

	if err := handler(context.Background()); err != nil {
		t.Fatalf("expected the chain to pass: %s", err)
	}
	if !called {
		t.Fatal("expected the handler to run")
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	a, _ := setup(t)

	handler := mid.Apply(func(ctx context.Context) error {
		t.Fatal("handler must not run without a token")
		return nil
	}, mid.Authenticate(a, ""))

	err := handler(context.Background())
	var appErr *errs.AppError
	if !errors.As(err, &appErr) || appErr.Kind != errs.KindUnauthenticated {
		t.Fatalf("expected an unauthenticated error, got %v", err)
	}
}

func TestAuthorizeDeniedPermission(t *testing.T) {
	a, tkn := setup(t)

	// sales cannot delete users
	handler := mid.Apply(func(ctx context.Context) error {
		t.Fatal("handler must not run without the permission")
		return nil
	}, mid.Authenticate(a, tkn), mid.Authorize(a, team.PermDeleteUser))

	err := handler(context.Background())
	var appErr *errs.AppError
	if !errors.As(err, &appErr) || appErr.Kind != errs.KindForbidden {
		t.Fatalf("expected a forbidden error, got %v", err)
	}
	if appErr.Message != "You do not have permission to access this feature" {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestAuthRunsBeforePermission(t *testing.T) {
	a, _ := setup(t)

	// a bad token with a denied permission must fail on authentication
	handler := mid.Apply(func(ctx context.Context) error {
		return nil
	}, mid.Authenticate(a, "not-a-token"), mid.Authorize(a, team.PermDeleteUser))

	err := handler(context.Background())
	var appErr *errs.AppError
	if !errors.As(err, &appErr) || appErr.Kind != errs.KindUnauthenticated {
		t.Fatalf("expected the authentication failure to win, got %v", err)
	}
}

func TestAuthorizeGrantedPermission(t *testing.T) {
	a, tkn := setup(t)

	var called bool
	handler := mid.Apply(func(ctx context.Context) error {
		called = true
		return nil
	}, mid.Authenticate(a, tkn), mid.Authorize(a, team.PermCreateCustomer))

	if err := handler(context.Background()); err != nil {
		t.Fatalf("expected the chain to pass: %s", err)
	}
	if !called {
		t.Fatal("expected the handler to run")
	}
}

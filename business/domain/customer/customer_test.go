package customer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/domain/customer"
	"github.com/epicevents/crm/business/domain/customer/store/memory"
	"github.com/epicevents/crm/business/validate"
)

func newService() (*customer.Service, *memory.Repository) {
	repo := &memory.Repository{Customers: map[uuid.UUID]customer.Customer{}}
	return customer.NewService(repo), repo
}

func validNewCustomer() customer.NewCustomer {
	return customer.NewCustomer{
		Name:           "Test Customer",
		Email:          "test@example.com",
		Phone:          "1234567890",
		CompanyName:    "Test Company",
		SalesContactID: uuid.New(),
	}
}

func TestCreateCustomer(t *testing.T) {
	service, repo := newService()

	cst, err := service.CreateCustomer(context.Background(), validNewCustomer())
	if err != nil {
		t.Fatalf("expected the customer to be created: %s", err)
	}

	if cst.DateCreated.IsZero() || cst.DateModified.IsZero() {
		t.Fatal("expected both timestamps to be set")
	}
	if !cst.DateCreated.Equal(cst.DateModified) {
		t.Error("expected both timestamps to be equal at creation")
	}
	if _, ok := repo.Customers[cst.ID]; !ok {
		t.Fatal("expected the customer to be saved into the repo")
	}
}

func TestCreateCustomerInvalidEmail(t *testing.T) {
	service, _ := newService()

	nc := validNewCustomer()
	nc.Email = "bad@@example"

	_, err := service.CreateCustomer(context.Background(), nc)
	var fe validate.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(fe) != 1 || fe[0] != "The email is not valid." {
		t.Fatalf("unexpected errors: %v", fe)
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	if _, err := service.CreateCustomer(ctx, validNewCustomer()); err != nil {
		t.Fatalf("expected the first customer to be created: %s", err)
	}

	nc := validNewCustomer()
	nc.Name = "Another Customer"

	if _, err := service.CreateCustomer(ctx, nc); !errors.Is(err, customer.ErrUnique) {
		t.Fatalf("expected ErrUnique for a duplicated email, got %v", err)
	}
	if len(repo.Customers) != 1 {
		t.Fatalf("expected a single customer to exist, got %d", len(repo.Customers))
	}
}

func TestUpdateCustomerDuplicateEmail(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	first, err := service.CreateCustomer(ctx, validNewCustomer())
	if err != nil {
		t.Fatalf("expected the first customer to be created: %s", err)
	}

	nc := validNewCustomer()
	nc.Email = "second@example.com"
	second, err := service.CreateCustomer(ctx, nc)
	if err != nil {
		t.Fatalf("expected the second customer to be created: %s", err)
	}

	if _, err := service.UpdateCustomer(ctx, second, customer.UpdateCustomer{Email: &first.Email}); !errors.Is(err, customer.ErrUnique) {
		t.Fatalf("expected ErrUnique when taking another customer's email, got %v", err)
	}

	// updating a customer without touching the email must not trip the check
	name := "Renamed"
	if _, err := service.UpdateCustomer(ctx, second, customer.UpdateCustomer{Name: &name}); err != nil {
		t.Fatalf("expected the rename to succeed: %s", err)
	}
}

func TestUpdateCustomerPartial(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	cst, err := service.CreateCustomer(ctx, validNewCustomer())
	if err != nil {
		t.Fatalf("expected the customer to be created: %s", err)
	}

	time.Sleep(5 * time.Millisecond)

	company := "New Company"
	updated, err := service.UpdateCustomer(ctx, cst, customer.UpdateCustomer{CompanyName: &company})
	if err != nil {
		t.Fatalf("expected the update to succeed: %s", err)
	}

	if updated.CompanyName != company {
		t.Errorf("expected the company to change to %q, got %q", company, updated.CompanyName)
	}
	if updated.Name != cst.Name || updated.Email != cst.Email || updated.Phone != cst.Phone {
		t.Error("expected the unspecified fields to be untouched")
	}
	if updated.SalesContactID != cst.SalesContactID {
		t.Error("expected the sales contact to be untouched")
	}
	if !updated.DateModified.After(cst.DateModified) {
		t.Error("expected DateModified to be refreshed on mutation")
	}
	if !updated.DateCreated.Equal(cst.DateCreated) {
		t.Error("expected DateCreated to be untouched")
	}
}

func TestGetCustomerByEmail(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	cst, err := service.CreateCustomer(ctx, validNewCustomer())
	if err != nil {
		t.Fatalf("expected the customer to be created: %s", err)
	}

	got, err := service.GetCustomerByEmail(ctx, cst.Email)
	if err != nil {
		t.Fatalf("expected the lookup to succeed: %s", err)
	}
	if got.ID != cst.ID {
		t.Error("expected the same customer back")
	}

	if _, err := service.GetCustomerByEmail(ctx, "nobody@example.com"); !errors.Is(err, customer.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unknown email, got %v", err)
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	service, _ := newService()

	if _, err := service.GetCustomerByID(context.Background(), uuid.New()); !errors.Is(err, customer.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCustomer(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	cst, err := service.CreateCustomer(ctx, validNewCustomer())
	if err != nil {
		t.Fatalf("expected the customer to be created: %s", err)
	}

	if err := service.DeleteCustomer(ctx, cst); err != nil {
		t.Fatalf("expected the delete to succeed: %s", err)
	}

	// a lookup after deletion yields ErrNotFound, not a crash
	if _, err := service.GetCustomerByID(ctx, cst.ID); !errors.Is(err, customer.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after deletion, got %v", err)
	}
}

package fixtures_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/epicevents/crm/business/domain/contract"
	contractmemory "github.com/epicevents/crm/business/domain/contract/store/memory"
	"github.com/epicevents/crm/business/domain/customer"
	customermemory "github.com/epicevents/crm/business/domain/customer/store/memory"
	"github.com/epicevents/crm/business/domain/event"
	eventmemory "github.com/epicevents/crm/business/domain/event/store/memory"
	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/domain/user"
	usermemory "github.com/epicevents/crm/business/domain/user/store/memory"
	"github.com/epicevents/crm/business/fixtures"
)

func newStores() (fixtures.Stores, *usermemory.Repository) {
	users := &usermemory.Repository{Users: map[uuid.UUID]user.User{}}
	return fixtures.Stores{
		Users:     users,
		Customers: &customermemory.Repository{Customers: map[uuid.UUID]customer.Customer{}},
		Contracts: &contractmemory.Repository{Contracts: map[uuid.UUID]contract.Contract{}},
		Events:    &eventmemory.Repository{Events: map[uuid.UUID]event.Event{}},
	}, users
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newStores()

	sales := user.User{
		ID:             uuid.New(),
		PersonalNumber: "1234567890",
		Username:       "salesrep",
		FirstName:      "Marguerite",
		LastName:       "Dubois",
		Email:          "marguerite@example.com",
		PasswordHash:   []byte("$2a$10$fakedigestusedonlyintests"),
		Team:           team.KindSales,
	}
	if err := src.Users.Create(ctx, sales); err != nil {
		t.Fatalf("expected the user to be created: %s", err)
	}

	cst := customer.Customer{
		ID:             uuid.New(),
		Name:           "Kevin Casey",
		Email:          "kevin@startup.io",
		Phone:          "+678 123 456 78",
		CompanyName:    "Cool Startup LLC",
		DateCreated:    time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC),
		DateModified:   time.Date(2023, 2, 1, 10, 0, 0, 0, time.UTC),
		SalesContactID: sales.ID,
	}
	if err := src.Customers.Create(ctx, cst); err != nil {
		t.Fatalf("expected the customer to be created: %s", err)
	}

	ct := contract.Contract{
		ID:               uuid.New(),
		TotalBalance:     5000,
		RemainingBalance: 2500,
		Status:           contract.StatusSigned,
		CustomerID:       cst.ID,
	}
	if err := src.Contracts.Create(ctx, ct); err != nil {
		t.Fatalf("expected the contract to be created: %s", err)
	}

	ev := event.Event{
		ID:         uuid.New(),
		StartDate:  time.Date(2023, 6, 4, 13, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2023, 6, 5, 2, 0, 0, 0, time.UTC),
		Location:   "53 Rue du Chateau, Candé-sur-Beuvron",
		Attendees:  75,
		Notes:      "Wedding starts at 3PM, by the river.",
		ContractID: ct.ID,
	}
	if err := src.Events.Create(ctx, ev); err != nil {
		t.Fatalf("expected the event to be created: %s", err)
	}

	var buf bytes.Buffer
	if err := fixtures.Export(ctx, src, &buf); err != nil {
		t.Fatalf("expected the export to succeed: %s", err)
	}

	dump := buf.String()
	if !strings.Contains(dump, `"Management team"`) {
		t.Error("expected the dump to carry the team names")
	}
	if !strings.Contains(dump, `"salesrep"`) {
		t.Error("expected the dump to carry the users")
	}

	dst, dstUsers := newStores()
	if err := fixtures.Import(ctx, dst, &buf); err != nil {
		t.Fatalf("expected the import to succeed: %s", err)
	}

	got, ok := dstUsers.Users[sales.ID]
	if !ok {
		t.Fatal("expected the imported user to keep its id")
	}
	if got.Username != sales.Username || got.Team != team.KindSales {
		t.Error("expected the imported user fields to match")
	}
	if !bytes.Equal(got.PasswordHash, sales.PasswordHash) {
		t.Error("expected the password hash to survive the round trip")
	}

	contracts, err := dst.Contracts.List(ctx, contract.Filter{})
	if err != nil {
		t.Fatalf("expected the listing to succeed: %s", err)
	}
	if len(contracts) != 1 || contracts[0].Status != contract.StatusSigned {
		t.Fatalf("expected one signed contract, got %d", len(contracts))
	}

	events, err := dst.Events.List(ctx, event.Filter{})
	if err != nil {
		t.Fatalf("expected the listing to succeed: %s", err)
	}
	if len(events) != 1 || !events[0].StartDate.Equal(ev.StartDate) {
		t.Fatalf("expected one event with its dates intact, got %d", len(events))
	}
}

func TestImportRejectsUnknownStatus(t *testing.T) {
	dst, _ := newStores()

	dump := `{"contracts":[{"id":"` + uuid.NewString() + `","totalBalance":100,"remainingBalance":0,"status":"Cancelled","customerId":"` + uuid.NewString() + `"}]}`
	if err := fixtures.Import(context.Background(), dst, strings.NewReader(dump)); err == nil {
		t.Fatal("expected an unknown contract status to be refused")
	}
}

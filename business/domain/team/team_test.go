package team_test

import (
	"testing"

	"github.com/epicevents/crm/business/domain/team"
)

func TestParseKind(t *testing.T) {
	k, err := team.ParseKind("Sales team")
	if err != nil {
		t.Fatalf("expected the team name to be parsed: %s", err)
	}
	if k != team.KindSales {
		t.Errorf("expected the kind to be %q, but got %q", team.KindSales, k)
	}

	k, err = team.ParseKind("management TEAM")
	if err != nil {
		t.Fatalf("expected the parse to be case insensitive: %s", err)
	}
	if k != team.KindManagement {
		t.Errorf("expected the kind to be %q, but got %q", team.KindManagement, k)
	}

	if _, err := team.ParseKind("Marketing team"); err == nil {
		t.Fatal("expected an unknown team name to fail parsing")
	}
}

func TestKindFromID(t *testing.T) {
	for _, k := range team.Kinds() {
		got, err := team.KindFromID(k.ID())
		if err != nil {
			t.Fatalf("expected id %d to map back to a kind: %s", k.ID(), err)
		}
		if got != k {
			t.Errorf("expected id %d to map to %q, but got %q", k.ID(), k, got)
		}
	}

	if _, err := team.KindFromID(42); err == nil {
		t.Fatal("expected an unknown id to fail")
	}
}

func TestPermissionTables(t *testing.T) {
	base := []team.Permission{
		team.PermListContracts,
		team.PermReadContract,
		team.PermListEvents,
		team.PermReadEvent,
		team.PermListCustomers,
		team.PermReadCustomer,
	}

	tables := map[team.Kind][]team.Permission{
		team.KindManagement: append(base,
			team.PermCreateUser,
			team.PermReadUser,
			team.PermListUsers,
			team.PermDeleteUser,
			team.PermUpdateUser,
			team.PermCreateContract,
			team.PermUpdateContract,
			team.PermUpdateEvent,
			team.PermUpdateEventSupport,
		),
		team.KindSales: append(base,
			team.PermCreateCustomer,
			team.PermUpdateCustomer,
			team.PermUpdateOnlyMyCustomers,
			team.PermUpdateContract,
			team.PermUpdateOnlyMyContracts,
			team.PermCreateEvent,
		),
		team.KindSupport: append(base,
			team.PermUpdateEvent,
			team.PermUpdateOnlyMyEvents,
		),
	}

	for kind, wanted := range tables {
		got := team.PermissionsFor(kind)
		if len(got) != len(wanted) {
			t.Errorf("%s: expected %d permissions, got %d", kind, len(wanted), len(got))
		}
		for _, p := range wanted {
			if !kind.Has(p) {
				t.Errorf("%s: expected to have permission %q", kind, p)
			}
		}
	}
}

func TestPermissionDenied(t *testing.T) {
	if team.KindSales.Has(team.PermDeleteUser) {
		t.Error("expected the sales team to not have user deletion")
	}
	if team.KindSupport.Has(team.PermCreateEvent) {
		t.Error("expected the support team to not have event creation")
	}
	if team.KindManagement.Has(team.PermUpdateCustomer) {
		t.Error("expected the management team to not have customer updates")
	}

	// no team may delete customers, contracts or events
	for _, k := range team.Kinds() {
		for _, p := range []team.Permission{team.PermDeleteCustomer, team.PermDeleteContract, team.PermDeleteEvent} {
			if k.Has(p) {
				t.Errorf("%s: expected %q to be granted to no team", k, p)
			}
		}
	}
}

func TestUnknownKindHasEmptySet(t *testing.T) {
	unknown := team.Kind(42)
	if got := team.PermissionsFor(unknown); len(got) != 0 {
		t.Fatalf("expected an unknown team to have no permissions, got %d", len(got))
	}
	if unknown.Has(team.PermListContracts) {
		t.Fatal("expected an unknown team to have no permissions at all")
	}
}

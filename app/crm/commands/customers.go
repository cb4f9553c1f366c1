package commands

import (
	"context"

	"github.com/epicevents/crm/app/crm/auth"
	"github.com/epicevents/crm/app/crm/mid"
	"github.com/epicevents/crm/business/domain/customer"
	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/domain/user"
)

// createCustomer assigns the new customer to the requesting sales user.
func (a *App) createCustomer(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		me, err := auth.GetUser(ctx)
		if err != nil {
			return appError(err)
		}

		var nc customer.NewCustomer
		if nc.Name, err = a.prompt.String("Name", ""); err != nil {
			return appError(err)
		}
		if nc.Email, err = a.prompt.String("Email", ""); err != nil {
			return appError(err)
		}
		if nc.CompanyName, err = a.prompt.String("Company", ""); err != nil {
			return appError(err)
		}
		if nc.Phone, err = a.prompt.String("Phone", ""); err != nil {
			return appError(err)
		}
		nc.SalesContactID = me.ID

		cst, err := a.customers.CreateCustomer(ctx, nc)
		if err != nil {
			return appError(err)
		}

		a.prompt.Success("Customer created successfully: %s", cst.Name)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermCreateCustomer))
	return handler(ctx)
}

func (a *App) getCustomers(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		customers, err := a.customers.ListCustomers(ctx)
		if err != nil {
			return appError(err)
		}

		rows := make([][]string, 0, len(customers))
		for _, cst := range customers {
			rows = append(rows, []string{
				cst.ID.String(),
				cst.Name,
				cst.Email,
				cst.Phone,
				cst.CompanyName,
			})
		}
		if err := a.prompt.Table([]string{"ID", "NAME", "EMAIL", "PHONE", "COMPANY"}, rows); err != nil {
			return appError(err)
		}
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermListCustomers))
	return handler(ctx)
}

func (a *App) getCustomer(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		email, err := a.prompt.String("Customer email", "")
		if err != nil {
			return appError(err)
		}

		cst, err := a.customers.GetCustomerByEmail(ctx, email)
		if err != nil {
			return appError(err)
		}

		rows := [][]string{{
			cst.ID.String(),
			cst.Name,
			cst.Email,
			cst.Phone,
			cst.CompanyName,
			cst.SalesContactID.String(),
		}}
		if err := a.prompt.Table([]string{"ID", "NAME", "EMAIL", "PHONE", "COMPANY", "SALES CONTACT"}, rows); err != nil {
			return appError(err)
		}
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermReadCustomer))
	return handler(ctx)
}

// ownsCustomer enforces the record-ownership restriction after the permission
// check passed. Management carries the unrestricted permission so it never
// lands here with the restricted one.
func ownsCustomer(me user.User, cst customer.Customer) error {
	if me.Team.Has(team.PermUpdateOnlyMyCustomers) && cst.SalesContactID != me.ID {
		return forbidden()
	}
	return nil
}

func (a *App) updateCustomer(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		me, err := auth.GetUser(ctx)
		if err != nil {
			return appError(err)
		}

		email, err := a.prompt.String("Email of the customer to update", "")
		if err != nil {
			return appError(err)
		}

		cst, err := a.customers.GetCustomerByEmail(ctx, email)
		if err != nil {
			return appError(err)
		}

		if err := ownsCustomer(me, cst); err != nil {
			return err
		}

		var uc customer.UpdateCustomer
		if v, err := a.prompt.String("Name", cst.Name); err != nil {
			return appError(err)
		} else {
			uc.Name = &v
		}
		if v, err := a.prompt.String("Email", cst.Email); err != nil {
			return appError(err)
		} else {
			uc.Email = &v
		}
		if v, err := a.prompt.String("Company", cst.CompanyName); err != nil {
			return appError(err)
		} else {
			uc.CompanyName = &v
		}
		if v, err := a.prompt.String("Phone", cst.Phone); err != nil {
			return appError(err)
		} else {
			uc.Phone = &v
		}

		if v, err := a.prompt.String("Sales contact username", ""); err != nil {
			return appError(err)
		} else if v != "" {
			contact, err := a.users.GetUserByUsername(ctx, v)
			if err != nil {
				return appError(err)
			}
			uc.SalesContactID = &contact.ID
		}

		updated, err := a.customers.UpdateCustomer(ctx, cst, uc)
		if err != nil {
			return appError(err)
		}

		a.prompt.Success("Customer updated successfully: %s", updated.Name)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermUpdateCustomer))
	return handler(ctx)
}

// deleteCustomer exists but no team carries the delete permission, so the
// chain refuses every caller.
func (a *App) deleteCustomer(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		email, err := a.prompt.String("Email of the customer to delete", "")
		if err != nil {
			return appError(err)
		}

		cst, err := a.customers.GetCustomerByEmail(ctx, email)
		if err != nil {
			return appError(err)
		}

		if err := a.customers.DeleteCustomer(ctx, cst); err != nil {
			return appError(err)
		}

		a.prompt.Success("Customer deleted successfully: %s", cst.Name)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermDeleteCustomer))
	return handler(ctx)
}

package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/epicevents/crm/app/crm/auth"
	"github.com/epicevents/crm/app/crm/errs"
	"github.com/epicevents/crm/app/crm/mid"
	"github.com/epicevents/crm/business/domain/contract"
	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/domain/user"
)

type newContractInput struct {
	TotalBalance     float64 `json:"totalBalance" validate:"gte=0"`
	RemainingBalance float64 `json:"remainingBalance" validate:"gte=0"`
	Status           string  `json:"status" validate:"required,contractStatus"`
	CustomerEmail    string  `json:"customerEmail" validate:"required,email"`
}

func (a *App) createContract(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		var input newContractInput
		var err error

		if input.TotalBalance, err = a.prompt.Float("Total balance", 0); err != nil {
			return appError(err)
		}
		if input.RemainingBalance, err = a.prompt.Float("Remaining balance", 0); err != nil {
			return appError(err)
		}
		if input.Status, err = a.prompt.Choice("Status", contract.StatusNames(), contract.StatusCreated.String()); err != nil {
			return appError(err)
		}
		if input.CustomerEmail, err = a.prompt.String("Customer email", ""); err != nil {
			return appError(err)
		}

		if err := a.checkInput(input); err != nil {
			return err
		}

		cst, err := a.customers.GetCustomerByEmail(ctx, input.CustomerEmail)
		if err != nil {
			return appError(err)
		}

		ct, err := a.contracts.CreateContract(ctx, contract.NewContract{
			TotalBalance:     input.TotalBalance,
			RemainingBalance: input.RemainingBalance,
			Status:           input.Status,
			CustomerID:       cst.ID,
		})
		if err != nil {
			return appError(err)
		}

		a.prompt.Success("Contract created successfully: %s", ct.ID)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermCreateContract))
	return handler(ctx)
}

func (a *App) getContracts(ctx context.Context, token string, args []string) error {
	flags := pflag.NewFlagSet("get-contracts", pflag.ContinueOnError)
	notSigned := flags.Bool("not-signed", false, "only contracts not yet signed")
	unpaid := flags.Bool("unpaid", false, "only contracts with a remaining balance")
	if err := flags.Parse(args); err != nil {
		return errs.New(errs.KindValidation, err.Error())
	}

	handler := mid.Apply(func(ctx context.Context) error {
		contracts, err := a.contracts.ListContracts(ctx, contract.Filter{
			NotSigned: *notSigned,
			Unpaid:    *unpaid,
		})
		if err != nil {
			return appError(err)
		}

		rows := make([][]string, 0, len(contracts))
		for _, ct := range contracts {
			rows = append(rows, []string{
				ct.ID.String(),
				fmtBalance(ct.TotalBalance),
				fmtBalance(ct.RemainingBalance),
				ct.Status.String(),
				ct.CustomerID.String(),
			})
		}
		if err := a.prompt.Table([]string{"ID", "TOTAL", "REMAINING", "STATUS", "CUSTOMER"}, rows); err != nil {
			return appError(err)
		}
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermListContracts))
	return handler(ctx)
}

func (a *App) getContract(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		ct, err := a.promptContract(ctx)
		if err != nil {
			return err
		}

		rows := [][]string{{
			ct.ID.String(),
			fmtBalance(ct.TotalBalance),
			fmtBalance(ct.RemainingBalance),
			ct.Status.String(),
			ct.CustomerID.String(),
		}}
		if err := a.prompt.Table([]string{"ID", "TOTAL", "REMAINING", "STATUS", "CUSTOMER"}, rows); err != nil {
			return appError(err)
		}
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermReadContract))
	return handler(ctx)
}

func (a *App) promptContract(ctx context.Context) (contract.Contract, error) {
	raw, err := a.prompt.String("Contract ID", "")
	if err != nil {
		return contract.Contract{}, appError(err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return contract.Contract{}, errs.New(errs.KindValidation, "Invalid contract ID.")
	}
	ct, err := a.contracts.GetContractByID(ctx, id)
	if err != nil {
		return contract.Contract{}, appError(err)
	}
	return ct, nil
}

// ownsContract walks through the customer to its sales contact. A sales user
// only touches the contracts of their own customers.
func (a *App) ownsContract(ctx context.Context, me user.User, ct contract.Contract) error {
	if !me.Team.Has(team.PermUpdateOnlyMyContracts) {
		return nil
	}
	cst, err := a.customers.GetCustomerByID(ctx, ct.CustomerID)
	if err != nil {
		return appError(err)
	}
	if cst.SalesContactID != me.ID {
		return forbidden()
	}
	return nil
}

func (a *App) updateContract(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		me, err := auth.GetUser(ctx)
		if err != nil {
			return appError(err)
		}

		ct, err := a.promptContract(ctx)
		if err != nil {
			return err
		}

		if err := a.ownsContract(ctx, me, ct); err != nil {
			return err
		}

		var uc contract.UpdateContract
		if v, err := a.prompt.Float("Total balance", ct.TotalBalance); err != nil {
			return appError(err)
		} else {
			uc.TotalBalance = &v
		}
		if v, err := a.prompt.Float("Remaining balance", ct.RemainingBalance); err != nil {
			return appError(err)
		} else {
			uc.RemainingBalance = &v
		}
		if v, err := a.prompt.Choice("Status", contract.StatusNames(), ct.Status.String()); err != nil {
			return appError(err)
		} else {
			uc.Status = &v
		}

		updated, err := a.contracts.UpdateContract(ctx, ct, uc)
		if err != nil {
			return appError(err)
		}

		a.prompt.Success("Contract updated successfully: %s", updated.ID)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermUpdateContract))
	return handler(ctx)
}

// deleteContract exists but no team carries the delete permission, so the
// chain refuses every caller.
func (a *App) deleteContract(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		ct, err := a.promptContract(ctx)
		if err != nil {
			return err
		}

		if err := a.contracts.DeleteContract(ctx, ct); err != nil {
			return appError(err)
		}

		a.prompt.Success("Contract deleted successfully: %s", ct.ID)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermDeleteContract))
	return handler(ctx)
}

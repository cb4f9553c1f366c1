package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/epicevents/crm/app/crm/auth"
	"github.com/epicevents/crm/app/crm/errs"
	"github.com/epicevents/crm/app/crm/mid"
	"github.com/epicevents/crm/business/domain/contract"
	"github.com/epicevents/crm/business/domain/event"
	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/domain/user"
)

type newEventInput struct {
	StartDate  string `json:"startDate" validate:"required,eventDate"`
	EndDate    string `json:"endDate" validate:"required,eventDate"`
	Location   string `json:"location" validate:"required"`
	Attendees  int    `json:"attendees" validate:"gte=0"`
	Notes      string `json:"notes"`
	ContractID string `json:"contractId" validate:"required,uuid"`
}

// createEvent only accepts a signed contract and only from the sales contact
// of the contract's customer.
func (a *App) createEvent(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		me, err := auth.GetUser(ctx)
		if err != nil {
			return appError(err)
		}

		var input newEventInput
		if input.StartDate, err = a.prompt.String("Event start date (YYYY-MM-DD HH:MM)", ""); err != nil {
			return appError(err)
		}
		if input.EndDate, err = a.prompt.String("Event end date (YYYY-MM-DD HH:MM)", ""); err != nil {
			return appError(err)
		}
		if input.Location, err = a.prompt.String("Location", ""); err != nil {
			return appError(err)
		}
		if input.Attendees, err = a.prompt.Int("Attendees", 0); err != nil {
			return appError(err)
		}
		if input.Notes, err = a.prompt.String("Notes", ""); err != nil {
			return appError(err)
		}
		if input.ContractID, err = a.prompt.String("Contract ID", ""); err != nil {
			return appError(err)
		}

		if err := a.checkInput(input); err != nil {
			return err
		}

		contractID, err := uuid.Parse(input.ContractID)
		if err != nil {
			return errs.New(errs.KindValidation, "Invalid contract ID.")
		}

		ct, err := a.contracts.GetContractByID(ctx, contractID)
		if err != nil {
			return appError(err)
		}
		if ct.Status != contract.StatusSigned {
			return errs.New(errs.KindValidation, "The contract must be signed to create an event.")
		}

		cst, err := a.customers.GetCustomerByID(ctx, ct.CustomerID)
		if err != nil {
			return appError(err)
		}
		if cst.SalesContactID != me.ID {
			return forbidden()
		}

		ne := event.NewEvent{
			StartDate:  input.StartDate,
			EndDate:    input.EndDate,
			Location:   input.Location,
			Attendees:  input.Attendees,
			Notes:      input.Notes,
			ContractID: ct.ID,
		}

		if v, err := a.prompt.String("Support contact username", ""); err != nil {
			return appError(err)
		} else if v != "" {
			contact, err := a.users.GetUserByUsername(ctx, v)
			if err != nil {
				return appError(err)
			}
			ne.SupportContactID = &contact.ID
		}

		ev, err := a.events.CreateEvent(ctx, ne)
		if err != nil {
			return appError(err)
		}

		a.prompt.Success("Event created successfully: %s", ev.ID)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermCreateEvent))
	return handler(ctx)
}

func (a *App) getEvents(ctx context.Context, token string, args []string) error {
	flags := pflag.NewFlagSet("get-events", pflag.ContinueOnError)
	emptySupport := flags.Bool("filter-empty-support", false, "only events without a support contact")
	myEvents := flags.Bool("my-events", false, "only events assigned to me")
	if err := flags.Parse(args); err != nil {
		return errs.New(errs.KindValidation, err.Error())
	}

	handler := mid.Apply(func(ctx context.Context) error {
		me, err := auth.GetUser(ctx)
		if err != nil {
			return appError(err)
		}

		filter := event.Filter{NoSupport: *emptySupport}
		if *myEvents {
			filter.SupportContactID = &me.ID
		}

		events, err := a.events.ListEvents(ctx, filter)
		if err != nil {
			return appError(err)
		}

		rows := make([][]string, 0, len(events))
		for _, ev := range events {
			rows = append(rows, eventRow(ev))
		}
		if err := a.prompt.Table(eventHeader, rows); err != nil {
			return appError(err)
		}
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermListEvents))
	return handler(ctx)
}

func (a *App) getEvent(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		ev, err := a.promptEvent(ctx)
		if err != nil {
			return err
		}

		if err := a.prompt.Table(eventHeader, [][]string{eventRow(ev)}); err != nil {
			return appError(err)
		}
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermReadEvent))
	return handler(ctx)
}

var eventHeader = []string{"ID", "START", "END", "LOCATION", "ATTENDEES", "NOTES", "CONTRACT", "SUPPORT CONTACT"}

func eventRow(ev event.Event) []string {
	support := ""
	if ev.SupportContactID != nil {
		support = ev.SupportContactID.String()
	}
	return []string{
		ev.ID.String(),
		ev.StartDate.Format(event.DateLayout),
		ev.EndDate.Format(event.DateLayout),
		ev.Location,
		fmtInt(ev.Attendees),
		ev.Notes,
		ev.ContractID.String(),
		support,
	}
}

func (a *App) promptEvent(ctx context.Context) (event.Event, error) {
	raw, err := a.prompt.String("Event ID", "")
	if err != nil {
		return event.Event{}, appError(err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return event.Event{}, errs.New(errs.KindValidation, "Invalid event ID.")
	}
	ev, err := a.events.GetEventByID(ctx, id)
	if err != nil {
		return event.Event{}, appError(err)
	}
	return ev, nil
}

// ownsEvent restricts a support user to the events assigned to them.
func ownsEvent(me user.User, ev event.Event) error {
	if !me.Team.Has(team.PermUpdateOnlyMyEvents) {
		return nil
	}
	if ev.SupportContactID == nil || *ev.SupportContactID != me.ID {
		return forbidden()
	}
	return nil
}

func (a *App) updateEvent(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		me, err := auth.GetUser(ctx)
		if err != nil {
			return appError(err)
		}

		ev, err := a.promptEvent(ctx)
		if err != nil {
			return err
		}

		if err := ownsEvent(me, ev); err != nil {
			return err
		}

		var ue event.UpdateEvent
		if v, err := a.prompt.String("Event start date (YYYY-MM-DD HH:MM)", ev.StartDate.Format(event.DateLayout)); err != nil {
			return appError(err)
		} else {
			ue.StartDate = &v
		}
		if v, err := a.prompt.String("Event end date (YYYY-MM-DD HH:MM)", ev.EndDate.Format(event.DateLayout)); err != nil {
			return appError(err)
		} else {
			ue.EndDate = &v
		}
		if v, err := a.prompt.String("Location", ev.Location); err != nil {
			return appError(err)
		} else {
			ue.Location = &v
		}
		if v, err := a.prompt.Int("Attendees", ev.Attendees); err != nil {
			return appError(err)
		} else {
			ue.Attendees = &v
		}
		if v, err := a.prompt.String("Notes", ev.Notes); err != nil {
			return appError(err)
		} else {
			ue.Notes = &v
		}

		// reassigning the support contact is a management capability
		if v, err := a.prompt.String("Support contact username", ""); err != nil {
			return appError(err)
		} else if v != "" {
			if !me.Team.Has(team.PermUpdateEventSupport) {
				return forbidden()
			}
			contact, err := a.users.GetUserByUsername(ctx, v)
			if err != nil {
				return appError(err)
			}
			ue.SupportContactID = &contact.ID
		}

		updated, err := a.events.UpdateEvent(ctx, ev, ue)
		if err != nil {
			return appError(err)
		}

		a.prompt.Success("Event updated successfully: %s", updated.ID)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermUpdateEvent))
	return handler(ctx)
}

// deleteEvent exists but no team carries the delete permission, so the chain
// refuses every caller.
func (a *App) deleteEvent(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		ev, err := a.promptEvent(ctx)
		if err != nil {
			return err
		}

		if err := a.events.DeleteEvent(ctx, ev); err != nil {
			return appError(err)
		}

		a.prompt.Success("Event deleted successfully: %s", ev.ID)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermDeleteEvent))
	return handler(ctx)
}

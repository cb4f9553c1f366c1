// Package commands wires every CLI command: flag parsing, prompting, the
// authorization chain and the calls into the domain services.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/epicevents/crm/app/crm/auth"
	"github.com/epicevents/crm/app/crm/errs"
	"github.com/epicevents/crm/app/crm/prompt"
	"github.com/epicevents/crm/business/domain/contract"
	"github.com/epicevents/crm/business/domain/customer"
	"github.com/epicevents/crm/business/domain/event"
	"github.com/epicevents/crm/business/domain/user"
	"github.com/epicevents/crm/business/fixtures"
	"github.com/epicevents/crm/business/validate"
)

// Config holds everything the command layer depends on.
type Config struct {
	Log       *slog.Logger
	Validator *errs.AppValidator
	Auth      *auth.Auth
	Users     *user.Service
	Customers *customer.Service
	Contracts *contract.Service
	Events    *event.Service
	Prompt    *prompt.Prompter
	Fixtures  fixtures.Stores
}

// App carries the dependencies into the command handlers.
type App struct {
	log       *slog.Logger
	validator *errs.AppValidator
	auth      *auth.Auth
	users     *user.Service
	customers *customer.Service
	contracts *contract.Service
	events    *event.Service
	prompt    *prompt.Prompter
	fixtures  fixtures.Stores
}

func New(cfg Config) *App {
	return &App{
		log:       cfg.Log,
		validator: cfg.Validator,
		auth:      cfg.Auth,
		users:     cfg.Users,
		customers: cfg.Customers,
		contracts: cfg.Contracts,
		events:    cfg.Events,
		prompt:    cfg.Prompt,
		fixtures:  cfg.Fixtures,
	}
}

// Run dispatches the command name to its handler. The token, when a command
// needs one, is the first positional argument after the name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errs.New(errs.KindValidation, usage)
	}

	name := args[0]
	rest := args[1:]

	token := ""
	if len(rest) > 0 && !isFlag(rest[0]) {
		token = rest[0]
		rest = rest[1:]
	}

	switch name {
	case "user-login":
		return a.userLogin(ctx)
	case "create-first-admin":
		return a.createFirstAdmin(ctx)

	case "create-user":
		return a.createUser(ctx, token)
	case "get-users":
		return a.getUsers(ctx, token)
	case "get-user":
		return a.getUser(ctx, token)
	case "update-user":
		return a.updateUser(ctx, token)
	case "delete-user":
		return a.deleteUser(ctx, token)

	case "create-customer":
		return a.createCustomer(ctx, token)
	case "get-customers":
		return a.getCustomers(ctx, token)
	case "get-customer":
		return a.getCustomer(ctx, token)
	case "update-customer":
		return a.updateCustomer(ctx, token)
	case "delete-customer":
		return a.deleteCustomer(ctx, token)

	case "create-contract":
		return a.createContract(ctx, token)
	case "get-contracts":
		return a.getContracts(ctx, token, rest)
	case "get-contract":
		return a.getContract(ctx, token)
	case "update-contract":
		return a.updateContract(ctx, token)
	case "delete-contract":
		return a.deleteContract(ctx, token)

	case "create-event":
		return a.createEvent(ctx, token)
	case "get-events":
		return a.getEvents(ctx, token, rest)
	case "get-event":
		return a.getEvent(ctx, token)
	case "update-event":
		return a.updateEvent(ctx, token)
	case "delete-event":
		return a.deleteEvent(ctx, token)

	case "export-data":
		return a.exportData(ctx, token, rest)
	case "import-data":
		return a.importData(ctx, token, rest)
	}

	return errs.Newf(errs.KindValidation, "unknown command %q\n%s", name, usage)
}

const usage = `usage: crm <command> [token] [flags]

commands:
  user-login          log in and print a session token
  create-first-admin  bootstrap the first management user on an empty database

  create-user, get-users, get-user, update-user, delete-user
  create-customer, get-customers, get-customer, update-customer, delete-customer
  create-contract, get-contracts [--not-signed|--unpaid], get-contract,
  update-contract, delete-contract
  create-event, get-events [--filter-empty-support|--my-events], get-event,
  update-event, delete-event

  export-data [--file path]
  import-data [--file path]`

func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}

// appError converts a domain error into the trusted kind the runner reports.
func appError(err error) error {
	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		return errs.NewValidation(fe)
	}

	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, customer.ErrNotFound),
		errors.Is(err, contract.ErrNotFound),
		errors.Is(err, event.ErrNotFound):
		return errs.New(errs.KindNotFound, err.Error())
	case errors.Is(err, user.ErrWrongCredentials):
		return errs.New(errs.KindUnauthenticated, err.Error())
	case errors.Is(err, user.ErrUnique),
		errors.Is(err, customer.ErrUnique):
		return errs.New(errs.KindValidation, err.Error())
	}

	return errs.NewInternal(err)
}

// checkInput runs the tag-based validation on a command input struct and
// collects the failures into a validation error, one message per field.
func (a *App) checkInput(val any) error {
	fields, ok := a.validator.Check(val)
	if ok {
		return nil
	}

	messages := make([]string, 0, len(fields))
	for _, msg := range fields {
		messages = append(messages, msg)
	}
	sort.Strings(messages)
	return errs.NewValidation(messages)
}

// forbidden is the uniform ownership failure. An operation never says which
// record or owner was involved.
func forbidden() error {
	return errs.New(errs.KindForbidden, auth.ErrForbidden.Error())
}

func fmtBalance(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func fmtInt(n int) string {
	return strconv.Itoa(n)
}

package commands

import (
	"context"

	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/domain/user"
)

// userLogin asks for the credentials and prints a fresh session token. The
// token is what every other command takes as its first argument.
func (a *App) userLogin(ctx context.Context) error {
	username, err := a.prompt.String("Username", "")
	if err != nil {
		return appError(err)
	}
	password, err := a.prompt.Password("Password")
	if err != nil {
		return appError(err)
	}

	token, err := a.auth.Login(ctx, username, password)
	if err != nil {
		return appError(err)
	}

	a.prompt.Success("Logged in successfully.")
	a.prompt.Success("%s", token)
	return nil
}

// createFirstAdmin bootstraps the very first user on an empty database. It
// runs without a token and always lands in the management team.
func (a *App) createFirstAdmin(ctx context.Context) error {
	input, err := a.promptNewUser(user.NewUser{Team: team.KindManagement}, false)
	if err != nil {
		return appError(err)
	}

	usr, err := a.users.CreateFirstAdmin(ctx, input)
	if err != nil {
		return appError(err)
	}

	a.prompt.Success("User created successfully: %s", usr.Username)
	return nil
}

package commands

import (
	"context"

	"github.com/epicevents/crm/app/crm/mid"
	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/domain/user"
)

func (a *App) promptNewUser(def user.NewUser, askTeam bool) (user.NewUser, error) {
	var nu user.NewUser
	var err error

	if nu.PersonalNumber, err = a.prompt.String("Employee ID", def.PersonalNumber); err != nil {
		return user.NewUser{}, err
	}
	if nu.Username, err = a.prompt.String("Username", def.Username); err != nil {
		return user.NewUser{}, err
	}
	if nu.FirstName, err = a.prompt.String("First name", def.FirstName); err != nil {
		return user.NewUser{}, err
	}
	if nu.LastName, err = a.prompt.String("Last name", def.LastName); err != nil {
		return user.NewUser{}, err
	}
	if nu.Email, err = a.prompt.String("Email", def.Email); err != nil {
		return user.NewUser{}, err
	}
	if nu.Phone, err = a.prompt.String("Phone", def.Phone); err != nil {
		return user.NewUser{}, err
	}
	if nu.Password, err = a.prompt.Password("Password"); err != nil {
		return user.NewUser{}, err
	}

	nu.Team = def.Team
	if askTeam {
		names := make([]string, 0, len(team.Kinds()))
		for _, k := range team.Kinds() {
			names = append(names, k.String())
		}
		name, err := a.prompt.Choice("Team", names, def.Team.String())
		if err != nil {
			return user.NewUser{}, err
		}
		kind, err := team.ParseKind(name)
		if err != nil {
			return user.NewUser{}, err
		}
		nu.Team = kind
	}

	return nu, nil
}

func (a *App) createUser(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		nu, err := a.promptNewUser(user.NewUser{Team: team.KindSales}, true)
		if err != nil {
			return appError(err)
		}

		usr, err := a.users.CreateUser(ctx, nu)
		if err != nil {
			return appError(err)
		}

		a.prompt.Success("User created successfully: %s", usr.Username)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermCreateUser))
	return handler(ctx)
}

func (a *App) getUsers(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		users, err := a.users.ListUsers(ctx)
		if err != nil {
			return appError(err)
		}

		rows := make([][]string, 0, len(users))
		for _, usr := range users {
			rows = append(rows, []string{
				usr.Username,
				usr.FirstName + " " + usr.LastName,
				usr.Email,
				usr.PersonalNumber,
				usr.Team.String(),
			})
		}
		if err := a.prompt.Table([]string{"USERNAME", "NAME", "EMAIL", "EMPLOYEE ID", "TEAM"}, rows); err != nil {
			return appError(err)
		}
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermListUsers))
	return handler(ctx)
}

func (a *App) getUser(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		username, err := a.prompt.String("Username", "")
		if err != nil {
			return appError(err)
		}

		usr, err := a.users.GetUserByUsername(ctx, username)
		if err != nil {
			return appError(err)
		}

		rows := [][]string{{
			usr.Username,
			usr.FirstName + " " + usr.LastName,
			usr.Email,
			usr.Phone,
			usr.PersonalNumber,
			usr.Team.String(),
		}}
		if err := a.prompt.Table([]string{"USERNAME", "NAME", "EMAIL", "PHONE", "EMPLOYEE ID", "TEAM"}, rows); err != nil {
			return appError(err)
		}
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermReadUser))
	return handler(ctx)
}

func (a *App) updateUser(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		username, err := a.prompt.String("Username of the user to update", "")
		if err != nil {
			return appError(err)
		}

		usr, err := a.users.GetUserByUsername(ctx, username)
		if err != nil {
			return appError(err)
		}

		var uu user.UpdateUser

		if v, err := a.prompt.String("Employee ID", usr.PersonalNumber); err != nil {
			return appError(err)
		} else {
			uu.PersonalNumber = &v
		}
		if v, err := a.prompt.String("Username", usr.Username); err != nil {
			return appError(err)
		} else {
			uu.Username = &v
		}
		if v, err := a.prompt.String("First name", usr.FirstName); err != nil {
			return appError(err)
		} else {
			uu.FirstName = &v
		}
		if v, err := a.prompt.String("Last name", usr.LastName); err != nil {
			return appError(err)
		} else {
			uu.LastName = &v
		}
		if v, err := a.prompt.String("Email", usr.Email); err != nil {
			return appError(err)
		} else {
			uu.Email = &v
		}
		if v, err := a.prompt.String("Phone", usr.Phone); err != nil {
			return appError(err)
		} else {
			uu.Phone = &v
		}

		// empty answer keeps the current password
		if v, err := a.prompt.Password("Password (leave empty to keep)"); err != nil {
			return appError(err)
		} else if v != "" {
			uu.Password = &v
		}

		names := make([]string, 0, len(team.Kinds()))
		for _, k := range team.Kinds() {
			names = append(names, k.String())
		}
		name, err := a.prompt.Choice("Team", names, usr.Team.String())
		if err != nil {
			return appError(err)
		}
		kind, err := team.ParseKind(name)
		if err != nil {
			return appError(err)
		}
		uu.Team = &kind

		updated, err := a.users.UpdateUser(ctx, usr, uu)
		if err != nil {
			return appError(err)
		}

		a.prompt.Success("User updated successfully: %s", updated.Username)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermUpdateUser))
	return handler(ctx)
}

func (a *App) deleteUser(ctx context.Context, token string) error {
	handler := mid.Apply(func(ctx context.Context) error {
		username, err := a.prompt.String("Username of the user to delete", "")
		if err != nil {
			return appError(err)
		}

		usr, err := a.users.GetUserByUsername(ctx, username)
		if err != nil {
			return appError(err)
		}

		ok, err := a.prompt.Bool("Delete "+usr.Username+"?", false)
		if err != nil {
			return appError(err)
		}
		if !ok {
			a.prompt.Success("Aborted.")
			return nil
		}

		if err := a.users.DeleteUser(ctx, usr); err != nil {
			return appError(err)
		}

		a.prompt.Success("User deleted successfully: %s", usr.Username)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermDeleteUser))
	return handler(ctx)
}

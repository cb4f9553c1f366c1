// Package mid contains the middlewares wrapped around every command handler:
// token authentication first, then the permission check.
package mid

import (
	"context"
	"time"

	"github.com/epicevents/crm/app/crm/auth"
	"github.com/epicevents/crm/app/crm/errs"
	"github.com/epicevents/crm/business/domain/team"
)

// Handler represents a command handler running under a chain of middlewares.
type Handler func(ctx context.Context) error

// Middleware represents the signature for any middleware function
type Middleware func(Handler) Handler

// Apply wraps the handler with the middlewares, the last one applied first so
// the first listed runs first.
func Apply(handler Handler, mids ...Middleware) Handler {
	for i := len(mids) - 1; i >= 0; i-- {
		mid := mids[i]
		if mid != nil {
			handler = mid(handler)
		}
	}
	return handler
}

// Authenticate resolves the token into a user and injects it into ctx.
func Authenticate(a *auth.Auth, token string) Middleware {
	return func(h Handler) Handler {
		return func(ctx context.Context) error {
			if token == "" {
				return errs.New(errs.KindUnauthenticated, "Please log in first.")
			}
			// the deadline covers the user lookup only, the wrapped
			// handler may sit at an interactive prompt for minutes
			authCtx, cancel := context.WithTimeout(ctx, time.Second*5)
			usr, err := a.Authenticate(authCtx, token)
			cancel()
			if err != nil {
				return errs.New(errs.KindUnauthenticated, err.Error())
			}

			//add the user into ctx
			ctx = auth.SetUser(ctx, usr)
			//call the next handler
			return h(ctx)
		}
	}
}

// Authorize refuses the call when the user's team lacks the permission.
func Authorize(a *auth.Auth, perm team.Permission) Middleware {
	return func(h Handler) Handler {
		return func(ctx context.Context) error {
			//get the user
			usr, err := auth.GetUser(ctx)
			if err != nil {
				return errs.New(errs.KindUnauthenticated, err.Error())
			}

			if err := a.Authorized(usr, perm); err != nil {
				return errs.New(errs.KindForbidden, err.Error())
			}

			return h(ctx)
		}
	}
}

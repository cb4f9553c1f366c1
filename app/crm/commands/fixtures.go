package commands

import (
	"context"
	"os"

	"github.com/spf13/pflag"

	"github.com/epicevents/crm/app/crm/errs"
	"github.com/epicevents/crm/app/crm/mid"
	"github.com/epicevents/crm/business/domain/team"
	"github.com/epicevents/crm/business/fixtures"
)

// exportData dumps the full dataset to a json file. Reading everything is
// gated behind the user listing permission since the dump includes every
// employee record.
func (a *App) exportData(ctx context.Context, token string, args []string) error {
	flags := pflag.NewFlagSet("export-data", pflag.ContinueOnError)
	path := flags.String("file", "crm-dump.json", "destination file")
	if err := flags.Parse(args); err != nil {
		return errs.New(errs.KindValidation, err.Error())
	}

	handler := mid.Apply(func(ctx context.Context) error {
		f, err := os.Create(*path)
		if err != nil {
			return errs.NewInternal(err)
		}
		defer f.Close()

		if err := fixtures.Export(ctx, a.fixtures, f); err != nil {
			return errs.NewInternal(err)
		}

		a.prompt.Success("Data exported successfully: %s", *path)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermListUsers))
	return handler(ctx)
}

// importData loads a dump produced by export-data. Writing users is a
// management capability, so the import is gated behind user creation.
func (a *App) importData(ctx context.Context, token string, args []string) error {
	flags := pflag.NewFlagSet("import-data", pflag.ContinueOnError)
	path := flags.String("file", "crm-dump.json", "source file")
	if err := flags.Parse(args); err != nil {
		return errs.New(errs.KindValidation, err.Error())
	}

	handler := mid.Apply(func(ctx context.Context) error {
		f, err := os.Open(*path)
		if err != nil {
			return errs.Newf(errs.KindValidation, "cannot open %s: %s", *path, err)
		}
		defer f.Close()

		if err := fixtures.Import(ctx, a.fixtures, f); err != nil {
			return errs.NewInternal(err)
		}

		a.prompt.Success("Data imported successfully: %s", *path)
		return nil
	}, mid.Authenticate(a.auth, token), mid.Authorize(a.auth, team.PermCreateUser))
	return handler(ctx)
}

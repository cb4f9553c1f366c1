package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"

	"github.com/epicevents/crm/app/crm/auth"
	"github.com/epicevents/crm/app/crm/commands"
	"github.com/epicevents/crm/app/crm/errs"
	"github.com/epicevents/crm/app/crm/prompt"
	"github.com/epicevents/crm/business/broker/rabbitmq"
	"github.com/epicevents/crm/business/database/postgres"
	"github.com/epicevents/crm/business/domain/contract"
	contractpg "github.com/epicevents/crm/business/domain/contract/store/postgres"
	"github.com/epicevents/crm/business/domain/customer"
	customerpg "github.com/epicevents/crm/business/domain/customer/store/postgres"
	"github.com/epicevents/crm/business/domain/event"
	eventpg "github.com/epicevents/crm/business/domain/event/store/postgres"
	"github.com/epicevents/crm/business/domain/user"
	userpg "github.com/epicevents/crm/business/domain/user/store/postgres"
	"github.com/epicevents/crm/business/fixtures"
	"github.com/epicevents/crm/foundation/logger"
)

// will be changed from build tags
var build = "0.0.1"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var appErr *errs.AppError
		if errors.As(err, &appErr) {
			os.Exit(appErr.Kind.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	//==========================================================================
	//setup configurations

	// local overrides live in a .env file, absence is fine
	_ = godotenv.Load()

	configs := struct {
		Environment string `conf:"default:development"`

		DB struct {
			User            string        `conf:"default:crm"`
			Password        string        `conf:"default:password,mask"`
			Host            string        `conf:"default:localhost:5432"`
			Name            string        `conf:"default:crm"`
			MaxIdleConns    int           `conf:"default:2"`
			MaxOpenConns    int           `conf:"default:2"`
			MaxIdleConnTime time.Duration `conf:"default:5m"`
			MaxConnLifeTime time.Duration `conf:"default:10m"`
			DisableTLS      bool          `conf:"default:true"`
		}

		Auth struct {
			Secret   string        `conf:"default:dev-secret-change-me,mask"`
			Issuer   string        `conf:"default:epicevents crm"`
			TokenAge time.Duration `conf:"default:1h"`
		}

		Broker struct {
			Enabled  bool   `conf:"default:false"`
			Host     string `conf:"default:localhost:5672"`
			User     string `conf:"default:guest"`
			Password string `conf:"default:guest,mask"`
		}
	}{}

	prefix := "CRM"
	if help, err := conf.Parse(prefix, &configs); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	//==========================================================================
	//setup logger
	isProd := configs.Environment == "production"

	attrs := []slog.Attr{
		{Key: "build", Value: slog.StringValue(build)},
		{Key: "app", Value: slog.StringValue("crm")},
	}

	// results go to stdout, logs stay on stderr
	log := logger.New(os.Stderr, slog.LevelWarn, isProd, attrs...)

	//==========================================================================
	//validator
	appValidator, err := errs.NewAppValidator()
	if err != nil {
		return fmt.Errorf("creating app validator: %w", err)
	}

	//==========================================================================
	//database setup
	client, err := postgres.NewClient(postgres.Config{
		User:        configs.DB.User,
		Password:    configs.DB.Password,
		Host:        configs.DB.Host,
		Name:        configs.DB.Name,
		DisableTLS:  configs.DB.DisableTLS,
		MaxIdleConn: configs.DB.MaxIdleConns,
		MaxOpenConn: configs.DB.MaxOpenConns,
		MaxIdleTime: configs.DB.MaxIdleConnTime,
		MaxLifeTime: configs.DB.MaxConnLifeTime,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer client.DB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	if err := client.StatusCheck(ctx); err != nil {
		return fmt.Errorf("status check: %w", err)
	}

	args := os.Args[1:]

	if len(args) > 0 && args[0] == "migrate" {
		if err := client.Migrate(); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		fmt.Println("Migrations applied successfully.")
		return nil
	}

	//==========================================================================
	//stores and services
	userService := user.NewService(userpg.NewRepository(client))
	customerService := customer.NewService(customerpg.NewRepository(client))
	eventService := event.NewService(eventpg.NewRepository(client))

	//==========================================================================
	//contract signing notifications, over the broker when one is configured
	var notifier contract.Notifier = contract.LogNotifier{Log: log}

	if configs.Broker.Enabled {
		brokerClient, err := rabbitmq.NewClient(ctx, rabbitmq.Configs{
			Host:     configs.Broker.Host,
			User:     configs.Broker.User,
			Password: configs.Broker.Password,
		})
		if err != nil {
			return fmt.Errorf("connecting to broker: %w", err)
		}
		defer brokerClient.Close()

		notifier, err = contract.NewBrokerNotifier(brokerClient)
		if err != nil {
			return fmt.Errorf("creating broker notifier: %w", err)
		}
	}

	contractService := contract.NewService(contractpg.NewRepository(client), notifier)

	//==========================================================================
	//auth
	authClient := auth.New([]byte(configs.Auth.Secret), configs.Auth.Issuer, configs.Auth.TokenAge, userService)

	//==========================================================================
	//commands
	app := commands.New(commands.Config{
		Log:       log,
		Validator: appValidator,
		Auth:      authClient,
		Users:     userService,
		Customers: customerService,
		Contracts: contractService,
		Events:    eventService,
		Prompt:    prompt.New(os.Stdin, os.Stdout),
		Fixtures: fixtures.Stores{
			Users:     userpg.NewRepository(client),
			Customers: customerpg.NewRepository(client),
			Contracts: contractpg.NewRepository(client),
			Events:    eventpg.NewRepository(client),
		},
	})

	return app.Run(context.Background(), args)
}

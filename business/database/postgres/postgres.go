// Package postgres provides the shared database client: connection setup,
// startup health checking and embedded schema migrations.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	//go:embed sql/*.sql
	migrationFiles embed.FS
)

// Config holds everything needed to establish a connection.
type Config struct {
	User        string
	Password    string
	Host        string
	Name        string
	Schema      string
	MaxIdleConn int
	MaxOpenConn int
	MaxIdleTime time.Duration
	MaxLifeTime time.Duration
	DisableTLS  bool
}

// Client wraps the sql.DB handle together with the schema migration and
// health check helpers main relies on.
type Client struct {
	DB *sql.DB
}

// NewClient opens the connection pool. Open does not dial, callers use
// StatusCheck to find out whether the database is reachable.
func NewClient(conf Config) (*Client, error) {
	sslMode := "required"
	if conf.DisableTLS {
		sslMode = "disable"
	}

	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")
	if conf.Schema != "" {
		q.Set("search_path", conf.Schema)
	}

	uri := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.User, conf.Password),
		Host:     conf.Host,
		Path:     conf.Name,
		RawQuery: q.Encode(),
	}

	db, err := sql.Open("pgx", uri.String())
	if err != nil {
		return nil, fmt.Errorf("opening connection: %w", err)
	}

	db.SetMaxOpenConns(conf.MaxOpenConn)
	db.SetMaxIdleConns(conf.MaxIdleConn)
	db.SetConnMaxIdleTime(conf.MaxIdleTime)
	db.SetConnMaxLifetime(conf.MaxLifeTime)

	return &Client{DB: db}, nil
}

// StatusCheck pings the database with a growing backoff until it answers or
// ctx expires, then runs a round trip query to make sure the engine itself is
// up, not just the proxy in front of it.
func (c *Client) StatusCheck(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second*5)
		defer cancel()
	}

	for try := 1; ; try++ {
		pingErr := c.DB.PingContext(ctx)
		if pingErr == nil {
			break
		}

		time.Sleep(time.Millisecond * time.Duration(try) * 100)

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s:%w", pingErr, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var result bool
	const q = "SELECT TRUE"
	if err := c.DB.QueryRowContext(ctx, q).Scan(&result); err != nil {
		return fmt.Errorf("queryRowContext: %w", err)
	}

	return nil
}

// Migrate applies the embedded sql migrations. Already applied versions are
// skipped, so it is safe to run on every start.
func (c *Client) Migrate() error {
	driver, err := postgres.WithInstance(c.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("selecting driver: %w", err)
	}

	src, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}

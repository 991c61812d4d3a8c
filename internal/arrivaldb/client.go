package arrivaldb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"arrivals.chinatownlogistic.com/internal/appconf"
)

//go:embed schema_mysql.sql
var mysqlDDL string

//go:embed schema_sqlite.sql
var sqliteDDL string

// mysqlErrWrongValue is raised by MySQL for malformed DATE literals.
const mysqlErrWrongValue = 1525

// database/sql does not export the error it returns after DB.Close.
const errDatabaseClosed = "sql: database is closed"

var (
	// ErrUnavailable wraps failures to reach the record store.
	ErrUnavailable = errors.New("arrival store unavailable")
	// ErrInvalidDate is returned when the store rejects a date value.
	ErrInvalidDate = errors.New("invalid date")
)

// Client is the record store for first-of-day arrivals.
type Client struct {
	config Config
	DB     *sql.DB
	logger *slog.Logger

	schemaMu    sync.Mutex
	schemaReady bool
}

// Open prepares a client without touching the database. Connections are made on
// first use, so a store that is down only fails the calls made while it is down.
func Open(config Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	driverName := config.driver()
	if config.Env == appconf.Test && driverName == appconf.DriverSQLite && config.Database.Path != ":memory:" {
		return nil, fmt.Errorf("test databases must be in memory, got %q", config.Database.Path)
	}

	db, err := sql.Open(driverName, config.dataSourceName())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// every new connection to :memory: is a fresh database
	if driverName == appconf.DriverSQLite && config.Database.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	return &Client{
		config: config,
		DB:     db,
		logger: logger,
	}, nil
}

// NewClient opens the database and checks it is reachable. The location tables are
// created when config.Migrate is set.
func NewClient(ctx context.Context, config Config, logger *slog.Logger) (*Client, error) {
	client, err := Open(config, logger)
	if err != nil {
		return nil, err
	}
	if err := client.Init(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Init pings the database and runs the migration when enabled.
func (c *Client) Init(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return c.ensureSchema(ctx)
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// ensureSchema creates the location tables once per client. A failed attempt is
// retried on the next call.
func (c *Client) ensureSchema(ctx context.Context) error {
	if !c.config.Migrate {
		return nil
	}

	c.schemaMu.Lock()
	defer c.schemaMu.Unlock()
	if c.schemaReady {
		return nil
	}

	ddl := mysqlDDL
	if c.config.driver() == appconf.DriverSQLite {
		ddl = sqliteDDL
	}
	if err := performDatabaseMigration(ctx, c.DB, ddl); err != nil {
		return fmt.Errorf("error performing database migration: %w", classify(err))
	}
	c.schemaReady = true
	return nil
}

func performDatabaseMigration(ctx context.Context, db *sql.DB, ddl string) error {
	for _, stmt := range strings.Split(ddl, "-- migrate") {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmed); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmed, err)
		}
	}
	return nil
}

// classify maps driver errors onto the package sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlErrWrongValue {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	var netErr *net.OpError
	switch {
	case errors.As(err, &netErr),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, mysql.ErrInvalidConn),
		strings.Contains(err.Error(), errDatabaseClosed):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

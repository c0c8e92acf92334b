package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/relaytools/relaybilling/lib/service"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	sqltrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/database/sql"
)

const applicationName = "relaybilling"

func Open(config *service.Config) (*bun.DB, error) {
	connector, err := newConnector(config)
	if err != nil {
		return nil, err
	}

	var dbConn *sql.DB
	//if Datadog is configured, send sql traces there
	if config.DatadogAgentUrl != "" {
		sqltrace.Register("postgres", pgdriver.Driver{}, sqltrace.WithServiceName(applicationName))
		dbConn = sqltrace.OpenDB(connector)
	} else {
		dbConn = sql.OpenDB(connector)
	}
	db := bun.NewDB(dbConn, pgdialect.New())
	db.SetMaxOpenConns(config.DatabaseMaxConns)
	db.SetMaxIdleConns(config.DatabaseMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(config.DatabaseConnMaxLifetime) * time.Second)

	db.AddQueryHook(bundebug.NewQueryHook(
		// disable the hook
		bundebug.WithEnabled(false),
		// BUNDEBUG=1 logs failed queries
		// BUNDEBUG=2 logs all queries
		bundebug.FromEnv("BUNDEBUG"),
	))

	return db, nil
}

// newConnector builds the postgres connector. Report queries scan every
// running relay, so reads get their own timeout.
func newConnector(config *service.Config) (*pgdriver.Connector, error) {
	dsn := config.DatabaseUri
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") && !strings.HasPrefix(dsn, "unix://") {
		return nil, fmt.Errorf("invalid database connection string %s, only (postgres|postgresql|unix):// is supported", dsn)
	}
	opts := []pgdriver.Option{
		pgdriver.WithDSN(dsn),
		pgdriver.WithApplicationName(applicationName),
	}
	if config.DatabaseReadTimeout > 0 {
		opts = append(opts, pgdriver.WithReadTimeout(time.Duration(config.DatabaseReadTimeout)*time.Second))
	}
	return pgdriver.NewConnector(opts...), nil
}

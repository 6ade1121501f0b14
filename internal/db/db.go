package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

const pingTimeout = 5 * time.Second

// MariaDbConfig describes the connection pool backing upload records.
type MariaDbConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// MultiStatements is only needed to run migration files.
	MultiStatements bool
}

// Database holds the MariaDB connection pool backing upload records.
type Database struct {
	*sql.DB
}

// New creates, configures, and verifies a MariaDB connection pool.
// Timestamps are always parsed into time.Time in UTC whatever the DSN says.
func New(ctx context.Context, cfg MariaDbConfig) (*Database, error) {
	driverCfg, err := driverConfig(cfg)
	if err != nil {
		return nil, err
	}
	connector, err := mysql.NewConnector(driverCfg)
	if err != nil {
		return nil, fmt.Errorf("create MariaDB connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		// close the pool before returning the ping error
		return nil, errors.Join(fmt.Errorf("ping MariaDB: %w", err), db.Close())
	}
	return &Database{db}, nil
}

func driverConfig(cfg MariaDbConfig) (*mysql.Config, error) {
	driverCfg, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse MariaDB DSN: %w", err)
	}
	driverCfg.ParseTime = true
	driverCfg.Loc = time.UTC
	driverCfg.MultiStatements = cfg.MultiStatements
	return driverCfg, nil
}

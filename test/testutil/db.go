package testutil

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/migration"
	"github.com/go-sql-driver/mysql"
)

type TestDB struct {
	DB      *sql.DB
	Cleanup func() error
}

// SetupTestDB creates a throwaway database next to the one named by
// TEST_DB_DSN and migrates it to the latest schema.
func SetupTestDB() (*TestDB, error) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("TEST_DB_DSN env-var not set")
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN %q: %w", dsn, err)
	}
	cfg.ParseTime = true

	origName := cfg.DBName
	cfg.DBName = ""
	rootDB, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open root DB: %w", err)
	}

	dbName := fmt.Sprintf("%s_%d", origName, time.Now().UnixNano())
	if _, err := rootDB.Exec("CREATE DATABASE " + dbName); err != nil {
		return nil, errors.Join(err, rootDB.Close())
	}

	dropAll := func() error {
		_, dropErr := rootDB.Exec("DROP DATABASE " + dbName)
		return errors.Join(dropErr, rootDB.Close())
	}

	cfg.DBName = dbName
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open test DB %q: %w", dbName, err), dropAll())
	}
	if err := migration.MigrateUp(db); err != nil {
		return nil, errors.Join(fmt.Errorf("migrate test DB %q: %w", dbName, err), db.Close(), dropAll())
	}

	cleanup := func() error {
		if err := db.Close(); err != nil {
			return err
		}
		return dropAll()
	}

	return &TestDB{DB: db, Cleanup: cleanup}, nil
}

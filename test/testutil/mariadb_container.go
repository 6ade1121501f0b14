package testutil

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
)

const (
	mariadbRootPassword = "root"
	uploadsSchema       = "uploads"
)

type MariaDBContainerInfo struct {
	// DSN points at the uploads schema; SetupTestDB derives per-test
	// databases from it.
	DSN     string
	Cleanup func()
}

func StartMariaDBContainer() (*MariaDBContainerInfo, error) {
	addr, purge, err := start(service{
		name: "mariadb",
		opts: dockertest.RunOptions{
			Repository: "mariadb",
			Tag:        "10.11",
			Env:        []string{"MARIADB_ROOT_PASSWORD=" + mariadbRootPassword},
		},
		port: "3306/tcp",
		ready: func(ctx context.Context, hostPort string) error {
			db, err := sql.Open("mysql", rootConfig(hostPort, "").FormatDSN())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			return db.PingContext(ctx)
		},
	})
	if err != nil {
		return nil, err
	}
	return &MariaDBContainerInfo{
		DSN:     rootConfig(addr, uploadsSchema).FormatDSN(),
		Cleanup: purge,
	}, nil
}

func rootConfig(addr, schema string) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = "root"
	cfg.Passwd = mariadbRootPassword
	cfg.Net = "tcp"
	cfg.Addr = addr
	cfg.DBName = schema
	cfg.ParseTime = true
	return cfg
}

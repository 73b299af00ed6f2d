package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

// Open connects to the database named by config.DatabaseUri. Postgres-style
// URIs get the pgdriver; everything else is treated as a SQLite path or DSN,
// which is the common case for a single ledger file on disk.
func Open(config *service.Config) (*bun.DB, error) {
	var db *bun.DB
	dsn := config.DatabaseUri
	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.HasPrefix(dsn, "unix://"):
		dbConn := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		db = bun.NewDB(dbConn, pgdialect.New())
	default:
		dbConn, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, err
		}
		db = bun.NewDB(dbConn, sqlitedialect.New())
	}
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

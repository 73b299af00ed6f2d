package integration_tests

import (
	"context"
	"fmt"

	"github.com/hisab-app/hisab-server/db"
	"github.com/hisab-app/hisab-server/db/migrations"
	"github.com/hisab-app/hisab-server/lib/logging"
	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/uptrace/bun/migrate"
)

// HisabTestServiceInit spins up a service over an in-memory SQLite database.
// Each suite passes a distinct name so suites never share state; the shared
// cache keeps the database alive across the pool's connections.
func HisabTestServiceInit(dbName string) (svc *service.HisabService, err error) {
	c := &service.Config{
		DatabaseUri:             fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName),
		DatabaseMaxConns:        1,
		DatabaseMaxIdleConns:    1,
		DatabaseConnMaxLifetime: 10,
		DefaultPageSize:         50,
		MaxPageSize:             500,
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	_, err = migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger := logging.Logger(c.LogFilePath)
	svc = &service.HisabService{
		Config: c,
		DB:     dbConn,
		Logger: logger,
	}
	return svc, nil
}

func clearTables(svc *service.HisabService) error {
	ctx := context.Background()
	// hard deletes, bypassing the soft delete marker
	if _, err := svc.DB.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return err
	}
	_, err := svc.DB.ExecContext(ctx, "DELETE FROM accounts")
	return err
}

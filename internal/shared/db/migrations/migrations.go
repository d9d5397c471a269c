package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

//go:embed sql/*.sql
var sqlFiles embed.FS

// RunMigrations applies every pending up migration against dsn.
func RunMigrations(dsn string) error {
	source, err := iofs.New(sqlFiles, "sql")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("RunMigrations: close failed", zap.NamedError("sourceErr", srcErr), zap.NamedError("dbErr", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		log.Info("RunMigrations: schema up to date", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
	return nil
}

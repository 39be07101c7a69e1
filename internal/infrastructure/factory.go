package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/accountd/accountd/config"
	"github.com/accountd/accountd/internal/domain/repository"
	"github.com/accountd/accountd/internal/infrastructure/esearch"
	"github.com/accountd/accountd/internal/infrastructure/memory"
	"github.com/accountd/accountd/internal/infrastructure/postgres"
	"github.com/accountd/accountd/pkg/helpers"
)

// NewUserRepository builds the storage backend named by cfg.RepositoryDriver
// and returns it with a close func. The driver is decided once, at the
// composition root; nothing here is a process-wide singleton.
func NewUserRepository(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.UserRepository, func(), error) {
	switch cfg.RepositoryDriver {
	case "memory":
		logger.Info("using in-memory user repository")
		return memory.NewUserRepository(), func() {}, nil

	case "postgres":
		logger.Info("using postgres user repository")
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, nil, err
		}
		if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewUserRepository(pool), pool.Close, nil

	case "elasticsearch":
		logger.Info("using elasticsearch user repository")
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			return nil, nil, err
		}
		repo, err := esearch.NewUserRepository(es, cfg.ESUsersIndex)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown repository driver %q", cfg.RepositoryDriver)
	}
}

func runMigrations(dsn, migrationsDir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("no migrations to run")
			return nil
		}
		return err
	}
	return nil
}

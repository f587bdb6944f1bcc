package db

import (
	"context"
	"fmt"

	"profilehub/internal/config"
	"profilehub/internal/repository"
)

// OpenUserRepository connects the configured driver and returns the user store
// with a function that releases its connection.
func OpenUserRepository(ctx context.Context, cfg *config.Config) (repository.UserRepository, func(), error) {
	switch cfg.DatabaseDriver {
	case "mongo":
		client, err := NewMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewMongoUserRepository(client.Database(cfg.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil
	case "mysql":
		gormDB, err := NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewUserRepository(gormDB), closeDB, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

package repository_test

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const postgresImage = "postgres:17.6-alpine3.22"

// startPostgres runs a throwaway database with the storefront schema applied.
func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	container, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("storefront"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts("../migrations/01_storefront.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}

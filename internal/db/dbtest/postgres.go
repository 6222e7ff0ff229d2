//go:build integration

// Package dbtest starts throwaway database containers for integration tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NewPostgres starts a migrated Postgres container that is terminated when t ends.
func NewPostgres(t *testing.T) *db.DBService {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("finance_tracker"),
		postgres.WithUsername("finance"),
		postgres.WithPassword("finance"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	service, err := db.NewDBService(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = service.Close() })

	require.NoError(t, db.RunMigrations(service.DB))
	return service
}

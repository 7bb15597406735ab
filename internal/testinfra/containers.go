// Package testinfra starts the throwaway services used by integration tests.
package testinfra

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	PostgresImage    = "postgres:17-alpine"
	PostgresUser     = "genmeta"
	PostgresPassword = "genmeta"
	PostgresDB       = "genmeta"

	startupTimeout = 60 * time.Second
)

type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

// StartPostgres runs a disposable PostgreSQL server. Extra init scripts run
// once the database is created.
func StartPostgres(ctx context.Context, initScripts ...string) (*PostgresContainer, error) {
	opts := []testcontainers.ContainerCustomizer{
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(PostgresDB),
		testcontainers.WithWaitStrategy(
			// The server restarts once after initdb, so the line appears twice.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout),
		),
	}
	if len(initScripts) > 0 {
		opts = append(opts, postgres.WithInitScripts(initScripts...))
	}

	ctr, err := postgres.Run(ctx, PostgresImage, opts...)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}

// PostgresForTest starts a server for t and terminates it on cleanup.
// The test is skipped in -short mode or when no container runtime is reachable.
func PostgresForTest(t *testing.T) *PostgresContainer {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := StartPostgres(ctx)
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr.PostgresContainer); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})
	return ctr
}

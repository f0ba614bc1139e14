// Package dbtest starts a throwaway Postgres for tests that need a real
// database. One container is shared by every test in a package binary.
package dbtest

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"noteful/internal/database"
	"noteful/internal/database/seed"
)

const (
	dbName     = "noteful"
	dbUser     = "user"
	dbPassword = "password"
)

var (
	once      sync.Once
	container *postgres.PostgresContainer
	dsn       string
	pool      *sql.DB
	startErr  error
)

func start() {
	ctx := context.Background()
	container, startErr = postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if startErr != nil {
		return
	}
	dsn, startErr = container.ConnectionString(ctx, "sslmode=disable")
	if startErr != nil {
		return
	}
	if startErr = database.Migrate(dsn); startErr != nil {
		return
	}
	pool, startErr = sql.Open("pgx", dsn)
}

// DB returns a migrated, empty database. Tests are skipped when no
// container runtime is reachable.
func DB(t *testing.T) *sql.DB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	once.Do(start)
	require.NoError(t, startErr, "starting postgres container")

	_, err := pool.ExecContext(context.Background(), `TRUNCATE notes_tags, notes, tags, folders RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

// Seeded returns a database holding the default fixtures.
func Seeded(t *testing.T) *sql.DB {
	t.Helper()
	db := DB(t)
	require.NoError(t, seed.Load(context.Background(), db, seed.Default()))
	return db
}

// DSN is the connection string of the running container. Only valid after
// DB or Seeded.
func DSN() string {
	return dsn
}

// Terminate stops the shared container. Call it from TestMain after m.Run.
func Terminate() {
	if pool != nil {
		_ = pool.Close()
	}
	if container != nil {
		_ = container.Terminate(context.Background())
	}
}

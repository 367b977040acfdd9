package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"stackmap/internal/repository"
	"stackmap/internal/repository/storetest"
)

// setupTestPostgres connects to the database named by STACKMAP_TEST_PG_DSN.
// Skips the test if it is not set.
func setupTestPostgres(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("STACKMAP_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("STACKMAP_TEST_PG_DSN not set, skipping PostgreSQL integration test")
	}

	ctx := context.Background()
	repo, err := New(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, repo.truncate(ctx))

	t.Cleanup(func() {
		repo.truncate(context.Background())
		repo.Close()
	})
	return repo
}

func TestRepository(t *testing.T) {
	if os.Getenv("STACKMAP_TEST_PG_DSN") == "" {
		t.Skip("STACKMAP_TEST_PG_DSN not set, skipping PostgreSQL integration test")
	}

	storetest.Run(t, func(t *testing.T) repository.Store {
		return setupTestPostgres(t)
	})
}

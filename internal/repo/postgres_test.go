package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/eventboard/internal/repo"
	"github.com/pkordes/eventboard/testutil"
)

// newTestPostgresKV opens a transaction against the test database and returns
// a PostgresKV backed by it. The transaction is rolled back when the test
// finishes, giving free per-test isolation.
func newTestPostgresKV(t *testing.T) *repo.PostgresKV {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewPostgresKV(tx)
}

func TestPostgresKV(t *testing.T) {
	kvContract(t, newTestPostgresKV(t), testutil.UniqueKey(t))
}

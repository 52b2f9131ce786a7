package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"brewhouse/service/profile"
	"brewhouse/store/db"
)

func newTestStore(ctx context.Context, t *testing.T) *Store {
	t.Helper()

	profile := &profile.Profile{
		Mode:    "dev",
		DSN:     fmt.Sprintf("%s/brewhouse_test.db", t.TempDir()),
		Version: "0.2.0",
	}
	database := db.NewDB(profile)
	require.NoError(t, database.Open(ctx))

	store := New(database.DBInstance, profile)
	t.Cleanup(func() {
		store.Close()
		_ = database.Close()
	})
	return store
}

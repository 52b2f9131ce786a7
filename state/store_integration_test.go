package state

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"brewhouse/api"
	"brewhouse/service/profile"
	"brewhouse/store"
	"brewhouse/store/db"
)

func TestBeverageStoreOverSQLite(t *testing.T) {
	ctx := context.Background()
	profile := &profile.Profile{
		Mode:    "dev",
		DSN:     fmt.Sprintf("%s/brewhouse_state.db", t.TempDir()),
		Version: "0.2.0",
	}
	database := db.NewDB(profile)
	require.NoError(t, database.Open(ctx))
	docs := store.New(database.DBInstance, profile)
	t.Cleanup(func() {
		docs.Close()
		_ = database.Close()
	})

	s := New(docs, testTemps)
	s.Init(ctx)
	snapshot := s.Snapshot()
	require.Len(t, snapshot.Bases, 3)
	require.True(t, snapshot.CurrentBase.IsSome())

	s.SetUser(ctx, testUser("u1"))
	require.True(t, s.Subscribed())

	s.SetName("Mocha")
	require.Equal(t, "Beverage Mocha made successfully!", s.MakeBeverage(ctx))
	s.now = func() time.Time { return time.Now().Add(time.Second) }
	s.SetName("Americano")
	require.Equal(t, "Beverage Americano made successfully!", s.MakeBeverage(ctx))

	// The live query settles on the backend's view: both drinks, ordered by name, no duplicates.
	require.Eventually(t, func() bool {
		beverages := s.Snapshot().Beverages
		return len(beverages) == 2 && beverages[0].Name == "Americano" && beverages[1].Name == "Mocha"
	}, 5*time.Second, 10*time.Millisecond)

	s.Close()
	require.False(t, s.Subscribed())
	require.Empty(t, s.Snapshot().Beverages)
}

func TestInitRereadsCatalogEditedElsewhere(t *testing.T) {
	ctx := context.Background()
	profile := &profile.Profile{
		Mode:    "dev",
		DSN:     fmt.Sprintf("%s/brewhouse_state.db", t.TempDir()),
		Version: "0.2.0",
	}
	open := func() *store.Store {
		database := db.NewDB(profile)
		require.NoError(t, database.Open(ctx))
		docs := store.New(database.DBInstance, profile)
		t.Cleanup(func() {
			docs.Close()
			_ = database.Close()
		})
		return docs
	}
	docs, admin := open(), open()

	s := New(docs, testTemps)
	s.Init(ctx)
	require.Len(t, s.Snapshot().Syrups, 4)

	_, err := admin.UpsertIngredient(ctx, &api.IngredientUpsert{
		Kind:  api.IngredientSyrup,
		ID:    "syrup-peppermint",
		Name:  "Peppermint",
		Color: "#98FF98",
	})
	require.NoError(t, err)

	s.Init(ctx)
	syrups := s.Snapshot().Syrups
	require.Len(t, syrups, 5)
	require.Equal(t, "syrup-peppermint", syrups[4].ID)
}

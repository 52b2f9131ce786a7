package state

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"brewhouse/api"
)

func newReadyStore(t *testing.T, docs *fakeDocumentStore, ts time.Time) *BeverageStore {
	t.Helper()
	s := New(docs, testTemps)
	s.now = func() time.Time { return ts }
	s.Init(context.Background())
	return s
}

func TestMakeBeverageWithoutUser(t *testing.T) {
	docs := newFakeDocumentStore()
	s := newReadyStore(t, docs, time.UnixMilli(1000))
	s.SetName("Mocha")

	require.Equal(t, MessageNoUser, s.MakeBeverage(context.Background()))
	require.Empty(t, docs.writes())
	require.Equal(t, "Mocha", s.Snapshot().CurrentName)
}

func TestMakeBeverageIncompleteSelection(t *testing.T) {
	ctx := context.Background()

	docs := newFakeDocumentStore()
	s := newReadyStore(t, docs, time.UnixMilli(1000))
	s.SetUser(ctx, testUser("u1"))
	require.Equal(t, MessageIncompleteSelection, s.MakeBeverage(ctx))
	require.Empty(t, docs.writes())

	docs = newFakeDocumentStore()
	docs.ingredients[api.IngredientCreamer] = nil
	s = newReadyStore(t, docs, time.UnixMilli(1000))
	s.SetUser(ctx, testUser("u1"))
	s.SetName("Mocha")
	require.Equal(t, MessageIncompleteSelection, s.MakeBeverage(ctx))
	require.Empty(t, docs.writes())
}

func TestMakeBeverage(t *testing.T) {
	ctx := context.Background()
	docs := newFakeDocumentStore()
	ts := time.UnixMilli(1700000000123)
	s := newReadyStore(t, docs, ts)
	s.SetUser(ctx, testUser("U"))
	require.NoError(t, s.SelectTemp("Warm"))
	s.SetName("Mocha")

	before := s.Snapshot()
	base, _ := before.CurrentBase.Get()
	syrup, _ := before.CurrentSyrup.Get()
	creamer, _ := before.CurrentCreamer.Get()

	message := s.MakeBeverage(ctx)
	require.True(t, strings.Contains(message, "Mocha"))
	require.Equal(t, "Beverage Mocha made successfully!", message)

	writes := docs.writes()
	require.Len(t, writes, 1)
	require.Equal(t, &api.BeverageUpsert{
		ID:      "U-1700000000123",
		UID:     "U",
		Name:    "Mocha",
		Temp:    "Warm",
		Base:    *base,
		Syrup:   *syrup,
		Creamer: *creamer,
	}, writes[0])

	after := s.Snapshot()
	require.Len(t, after.Beverages, 1)
	require.Equal(t, "U-1700000000123", after.Beverages[0].ID)
	require.Equal(t, "Mocha", after.Beverages[0].Name)
	current, ok := after.CurrentBeverage.Get()
	require.True(t, ok)
	require.Same(t, after.Beverages[0], current)
	require.Equal(t, "", after.CurrentName)

	// The saved beverage holds copies; catalog edits later do not reach it.
	base.Name = "Renamed"
	require.Equal(t, "Coffee", after.Beverages[0].Base.Name)
}

func TestMakeBeverageKeepsProfileForRepeatedCreation(t *testing.T) {
	ctx := context.Background()
	docs := newFakeDocumentStore()
	s := newReadyStore(t, docs, time.UnixMilli(1000))
	s.SetUser(ctx, testUser("U"))
	require.NoError(t, s.SelectBase("base-green-tea"))

	s.SetName("First")
	s.MakeBeverage(ctx)
	s.now = func() time.Time { return time.UnixMilli(2000) }
	s.SetName("Second")
	s.MakeBeverage(ctx)

	writes := docs.writes()
	require.Len(t, writes, 2)
	require.Equal(t, "U-1000", writes[0].ID)
	require.Equal(t, "U-2000", writes[1].ID)
	require.Equal(t, "base-green-tea", writes[1].Base.ID)

	beverages := s.Snapshot().Beverages
	require.Len(t, beverages, 2)
	require.Equal(t, "U-2000", beverages[0].ID)
	require.Equal(t, "U-1000", beverages[1].ID)
}

func TestMakeBeverageFailure(t *testing.T) {
	ctx := context.Background()
	docs := newFakeDocumentStore()
	docs.upsertErr = errBackend
	s := newReadyStore(t, docs, time.UnixMilli(1000))
	s.SetUser(ctx, testUser("U"))
	s.SetName("Mocha")

	require.Equal(t, MessageCreateFailed, s.MakeBeverage(ctx))

	snapshot := s.Snapshot()
	require.Empty(t, snapshot.Beverages)
	require.False(t, snapshot.CurrentBeverage.IsSome())
	require.Equal(t, "Mocha", snapshot.CurrentName)
}

func TestMakeBeverageDoesNotDuplicateLiveDelivery(t *testing.T) {
	ctx := context.Background()
	docs := newFakeDocumentStore()
	s := newReadyStore(t, docs, time.UnixMilli(1000))
	s.SetUser(ctx, testUser("U"))
	s.SetName("Mocha")

	// The live query reports the new document before the write call returns.
	docs.onUpsert = func(upsert *api.BeverageUpsert) {
		docs.active()[0].fn([]*api.Beverage{
			testBeverage("U-1", "U", "Americano"),
			{ID: upsert.ID, UID: upsert.UID, Name: upsert.Name, Temp: upsert.Temp, Base: upsert.Base, Syrup: upsert.Syrup, Creamer: upsert.Creamer},
		})
	}

	s.MakeBeverage(ctx)

	beverages := s.Snapshot().Beverages
	require.Len(t, beverages, 2)
	require.Equal(t, "U-1000", beverages[0].ID)
	require.Equal(t, "U-1", beverages[1].ID)
}

func TestMakeBeverageSkipsLocalUpdateAfterRebind(t *testing.T) {
	ctx := context.Background()
	docs := newFakeDocumentStore()
	s := newReadyStore(t, docs, time.UnixMilli(1000))
	s.SetUser(ctx, testUser("U"))
	s.SetName("Mocha")

	docs.onUpsert = func(*api.BeverageUpsert) {
		s.SetUser(ctx, testUser("V"))
	}

	require.Equal(t, "Beverage Mocha made successfully!", s.MakeBeverage(ctx))
	require.Empty(t, s.Snapshot().Beverages)
	require.Equal(t, "V", s.User().UID)
}

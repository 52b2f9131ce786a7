package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"brewhouse/api"
)

var testTemps = []api.Temperature{"Hot", "Warm", "Cold"}

func TestNewDefaults(t *testing.T) {
	s := New(newFakeDocumentStore(), testTemps)
	snapshot := s.Snapshot()
	require.Equal(t, api.Temperature("Hot"), snapshot.CurrentTemp)
	require.False(t, snapshot.CurrentBase.IsSome())
	require.False(t, snapshot.CurrentSyrup.IsSome())
	require.False(t, snapshot.CurrentCreamer.IsSome())
	require.Empty(t, snapshot.Beverages)
	require.Nil(t, snapshot.User)

	// The bundled list backs a store built without temperatures.
	s = New(newFakeDocumentStore(), nil)
	require.NotEmpty(t, s.Snapshot().Temps)
}

func TestInitSelectsFirstEntries(t *testing.T) {
	docs := newFakeDocumentStore()
	s := New(docs, testTemps)
	s.Init(context.Background())

	snapshot := s.Snapshot()
	require.Len(t, snapshot.Bases, 2)
	require.Len(t, snapshot.Syrups, 2)
	require.Len(t, snapshot.Creamers, 2)

	base, ok := snapshot.CurrentBase.Get()
	require.True(t, ok)
	require.Same(t, snapshot.Bases[0], base)
	syrup, ok := snapshot.CurrentSyrup.Get()
	require.True(t, ok)
	require.Same(t, snapshot.Syrups[0], syrup)
	creamer, ok := snapshot.CurrentCreamer.Get()
	require.True(t, ok)
	require.Same(t, snapshot.Creamers[0], creamer)
}

func TestInitEmptyCollectionLeavesSelectionUnset(t *testing.T) {
	docs := newFakeDocumentStore()
	docs.ingredients[api.IngredientSyrup] = nil
	s := New(docs, testTemps)
	s.Init(context.Background())

	snapshot := s.Snapshot()
	require.Empty(t, snapshot.Syrups)
	require.False(t, snapshot.CurrentSyrup.IsSome())
	require.True(t, snapshot.CurrentBase.IsSome())
	require.True(t, snapshot.CurrentCreamer.IsSome())
}

func TestInitSwallowsErrors(t *testing.T) {
	docs := newFakeDocumentStore()
	docs.ingredientErrs[api.IngredientCreamer] = errBackend
	s := New(docs, testTemps)

	require.NotPanics(t, func() { s.Init(context.Background()) })

	snapshot := s.Snapshot()
	// Bases load before creamers; the failure stops the rest of the load.
	require.Len(t, snapshot.Bases, 2)
	require.Empty(t, snapshot.Creamers)
	require.Empty(t, snapshot.Syrups)
	require.False(t, snapshot.CurrentSyrup.IsSome())
	require.Equal(t, 0, docs.ingredientHits[api.IngredientSyrup])
}

func TestInitTwiceReloads(t *testing.T) {
	docs := newFakeDocumentStore()
	s := New(docs, testTemps)
	s.Init(context.Background())

	docs.ingredients[api.IngredientBase] = []*api.Ingredient{{ID: "base-chai", Name: "Chai", Color: "#D2B48C"}}
	s.Init(context.Background())

	snapshot := s.Snapshot()
	require.Len(t, snapshot.Bases, 1)
	base, _ := snapshot.CurrentBase.Get()
	require.Equal(t, "base-chai", base.ID)
	require.Equal(t, 2, docs.ingredientHits[api.IngredientBase])
}

// Package state holds the per-user beverage store: the catalog loaded at start,
// the current selection, and the live list of the user's saved beverages.
package state

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slices"

	"brewhouse/api"
	"brewhouse/data"
)

// DocumentStore is the backend the beverage store reads from and writes to.
type DocumentStore interface {
	// FindIngredientList reads a whole ingredient collection in retrieval order.
	FindIngredientList(ctx context.Context, kind api.IngredientKind) ([]*api.Ingredient, error)
	// WatchBeverageList opens a live query; fn gets the full result set on every change.
	WatchBeverageList(ctx context.Context, find *api.BeverageFind, fn func([]*api.Beverage)) (api.BeverageUnsubscribe, error)
	// UpsertBeverage writes a beverage document at upsert.ID.
	UpsertBeverage(ctx context.Context, upsert *api.BeverageUpsert) (*api.Beverage, error)
}

// BeverageStore is the state behind one user's beverage builder.
//
// It is safe for concurrent use: UI handlers and live query callbacks may call into
// it from different goroutines. SetUser calls are serialized, and a store holds at
// most one live subscription at any time.
type BeverageStore struct {
	docs DocumentStore
	now  func() time.Time

	// bindMu serializes SetUser so subscription teardown and setup never interleave.
	bindMu sync.Mutex

	mu    sync.Mutex
	temps []api.Temperature

	bases    []*api.Ingredient
	syrups   []*api.Ingredient
	creamers []*api.Ingredient

	currentTemp    api.Temperature
	currentBase    Optional[*api.Ingredient]
	currentSyrup   Optional[*api.Ingredient]
	currentCreamer Optional[*api.Ingredient]
	currentName    string

	user            *api.User
	beverages       []*api.Beverage
	currentBeverage Optional[*api.Beverage]

	// generation increases on every SetUser; callbacks and writes started under an
	// older generation do not touch user-scoped state.
	generation  uint64
	unsubscribe api.BeverageUnsubscribe
}

// New creates a beverage store over docs. An empty temps falls back to the bundled list.
func New(docs DocumentStore, temps []api.Temperature) *BeverageStore {
	if len(temps) == 0 {
		temps = data.Temperatures()
	}
	return &BeverageStore{
		docs:        docs,
		now:         time.Now,
		temps:       slices.Clone(temps),
		currentTemp: temps[0],
		beverages:   []*api.Beverage{},
	}
}

// Snapshot is a point-in-time copy of a BeverageStore.
type Snapshot struct {
	Temps    []api.Temperature `json:"temps"`
	Bases    []*api.Ingredient `json:"bases"`
	Syrups   []*api.Ingredient `json:"syrups"`
	Creamers []*api.Ingredient `json:"creamers"`

	CurrentTemp    api.Temperature           `json:"currentTemp"`
	CurrentBase    Optional[*api.Ingredient] `json:"currentBase"`
	CurrentSyrup   Optional[*api.Ingredient] `json:"currentSyrup"`
	CurrentCreamer Optional[*api.Ingredient] `json:"currentCreamer"`
	CurrentName    string                    `json:"currentName"`

	User            *api.User               `json:"user"`
	Beverages       []*api.Beverage         `json:"beverages"`
	CurrentBeverage Optional[*api.Beverage] `json:"currentBeverage"`
}

func (s *BeverageStore) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &Snapshot{
		Temps:    slices.Clone(s.temps),
		Bases:    slices.Clone(s.bases),
		Syrups:   slices.Clone(s.syrups),
		Creamers: slices.Clone(s.creamers),

		CurrentTemp:    s.currentTemp,
		CurrentBase:    s.currentBase,
		CurrentSyrup:   s.currentSyrup,
		CurrentCreamer: s.currentCreamer,
		CurrentName:    s.currentName,

		User:            s.user,
		Beverages:       slices.Clone(s.beverages),
		CurrentBeverage: s.currentBeverage,
	}
}

// Subscribed reports whether a live beverage subscription is held.
func (s *BeverageStore) Subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unsubscribe != nil
}

// User returns the bound identity, or nil when signed out.
func (s *BeverageStore) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.user
}

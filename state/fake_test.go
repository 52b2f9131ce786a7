package state

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"brewhouse/api"
)

type fakeSubscription struct {
	find          api.BeverageFind
	fn            func([]*api.Beverage)
	cancelled     bool
	panicOnCancel bool
}

// fakeDocumentStore records every call and lets tests push live query deliveries by hand.
type fakeDocumentStore struct {
	mu sync.Mutex

	ingredients    map[api.IngredientKind][]*api.Ingredient
	ingredientErrs map[api.IngredientKind]error
	ingredientHits map[api.IngredientKind]int

	watchErr        error
	panicOnCancel   bool
	subscriptions   []*fakeSubscription
	overlapDetected bool

	upsertErr error
	upserts   []*api.BeverageUpsert
	// onUpsert runs after a successful write, outside the lock.
	onUpsert func(*api.BeverageUpsert)
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{
		ingredients: map[api.IngredientKind][]*api.Ingredient{
			api.IngredientBase: {
				{ID: "base-coffee", Name: "Coffee", Color: "#6F4E37"},
				{ID: "base-green-tea", Name: "Green Tea", Color: "#C8E6C9"},
			},
			api.IngredientSyrup: {
				{ID: "syrup-vanilla", Name: "Vanilla", Color: "#FFEFD5"},
				{ID: "syrup-caramel", Name: "Caramel", Color: "#DAA520"},
			},
			api.IngredientCreamer: {
				{ID: "creamer-milk", Name: "Milk", Color: "AliceBlue"},
				{ID: "creamer-cream", Name: "Cream", Color: "#F5F5DC"},
			},
		},
		ingredientErrs: map[api.IngredientKind]error{},
		ingredientHits: map[api.IngredientKind]int{},
	}
}

func (f *fakeDocumentStore) FindIngredientList(_ context.Context, kind api.IngredientKind) ([]*api.Ingredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ingredientHits[kind]++
	if err := f.ingredientErrs[kind]; err != nil {
		return nil, err
	}
	list := make([]*api.Ingredient, 0, len(f.ingredients[kind]))
	for _, ingredient := range f.ingredients[kind] {
		copied := *ingredient
		list = append(list, &copied)
	}
	return list, nil
}

func (f *fakeDocumentStore) WatchBeverageList(_ context.Context, find *api.BeverageFind, fn func([]*api.Beverage)) (api.BeverageUnsubscribe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watchErr != nil {
		return nil, f.watchErr
	}
	if len(f.activeLocked()) > 0 {
		f.overlapDetected = true
	}
	sub := &fakeSubscription{fn: fn, panicOnCancel: f.panicOnCancel}
	if find.UID != nil {
		uid := *find.UID
		sub.find.UID = &uid
	}
	f.subscriptions = append(f.subscriptions, sub)
	return func() {
		f.mu.Lock()
		sub.cancelled = true
		f.mu.Unlock()
		if sub.panicOnCancel {
			panic("cancel exploded")
		}
	}, nil
}

func (f *fakeDocumentStore) UpsertBeverage(_ context.Context, upsert *api.BeverageUpsert) (*api.Beverage, error) {
	f.mu.Lock()
	if f.upsertErr != nil {
		f.mu.Unlock()
		return nil, f.upsertErr
	}
	copied := *upsert
	f.upserts = append(f.upserts, &copied)
	onUpsert := f.onUpsert
	f.mu.Unlock()

	if onUpsert != nil {
		onUpsert(&copied)
	}
	return &api.Beverage{
		ID:      upsert.ID,
		UID:     upsert.UID,
		Name:    upsert.Name,
		Temp:    upsert.Temp,
		Base:    upsert.Base,
		Syrup:   upsert.Syrup,
		Creamer: upsert.Creamer,
	}, nil
}

func (f *fakeDocumentStore) activeLocked() []*fakeSubscription {
	active := []*fakeSubscription{}
	for _, sub := range f.subscriptions {
		if !sub.cancelled {
			active = append(active, sub)
		}
	}
	return active
}

func (f *fakeDocumentStore) active() []*fakeSubscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeLocked()
}

func (f *fakeDocumentStore) all() []*fakeSubscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*fakeSubscription{}, f.subscriptions...)
}

func (f *fakeDocumentStore) writes() []*api.BeverageUpsert {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*api.BeverageUpsert{}, f.upserts...)
}

var errBackend = errors.New("backend unavailable")

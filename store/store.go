package store

import (
	"database/sql"
	"sync"

	"brewhouse/service/profile"
)

// Store is the document store behind brewhouse. It serves the ingredient
// collections, the beverages collection with live queries, users and system settings.
type Store struct {
	db      *sql.DB
	profile *profile.Profile

	userCache          sync.Map // map[int]*userRaw
	systemSettingCache sync.Map // map[string]*systemSettingRaw

	watchers *beverageWatcherRegistry
}

// New creates a new instance of Store.
func New(db *sql.DB, profile *profile.Profile) *Store {
	return &Store{
		db:       db,
		profile:  profile,
		watchers: newBeverageWatcherRegistry(),
	}
}

// Close stops every live query. The underlying database is owned by the caller.
func (s *Store) Close() {
	s.watchers.closeAll()
}

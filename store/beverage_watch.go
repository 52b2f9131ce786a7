package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"brewhouse/api"
	"brewhouse/common/log"
)

// beverageWatcher is one live query over the beverages collection.
// Each watcher owns a goroutine, so its callback runs sequentially and never concurrently with itself.
type beverageWatcher struct {
	id   int64
	find api.BeverageFind
	fn   func([]*api.Beverage)

	// notify holds at most one pending refresh; extra signals coalesce.
	notify   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func (w *beverageWatcher) signal() {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

func (w *beverageWatcher) stop() {
	w.stopOnce.Do(func() {
		close(w.done)
	})
}

func (w *beverageWatcher) stopped() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

type beverageWatcherRegistry struct {
	mu       sync.Mutex
	nextID   int64
	closed   bool
	watchers map[int64]*beverageWatcher
}

func newBeverageWatcherRegistry() *beverageWatcherRegistry {
	return &beverageWatcherRegistry{
		watchers: map[int64]*beverageWatcher{},
	}
}

func (r *beverageWatcherRegistry) add(w *beverageWatcher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errors.New("store is closed")
	}
	r.nextID++
	w.id = r.nextID
	r.watchers[w.id] = w
	return nil
}

func (r *beverageWatcherRegistry) remove(w *beverageWatcher) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.watchers, w.id)
}

func (r *beverageWatcherRegistry) notify(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range r.watchers {
		if w.find.Match(uid) {
			w.signal()
		}
	}
}

func (r *beverageWatcherRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.watchers)
}

func (r *beverageWatcherRegistry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for id, w := range r.watchers {
		w.stop()
		delete(r.watchers, id)
	}
}

// WatchBeverageList opens a live query over the beverages matching find, ordered by name.
// fn receives the full result set once right away and again after every committed write
// to a matching owner. A failing first read fails the call. ctx only scopes the setup;
// the query lives until the returned unsubscribe is called or the store is closed.
// Unsubscribe never blocks.
func (s *Store) WatchBeverageList(ctx context.Context, find *api.BeverageFind, fn func([]*api.Beverage)) (api.BeverageUnsubscribe, error) {
	if fn == nil {
		return nil, errors.New("watch callback is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := &beverageWatcher{
		fn:     fn,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	if find != nil && find.UID != nil {
		uid := *find.UID
		w.find.UID = &uid
	}
	// Register before the first read so no write committed after it is missed.
	if err := s.watchers.add(w); err != nil {
		return nil, err
	}

	initial, err := s.FindBeverageList(ctx, &w.find)
	if err != nil {
		w.stop()
		s.watchers.remove(w)
		return nil, errors.Wrap(err, "failed to run beverage live query")
	}
	go s.runBeverageWatcher(w, initial)

	return func() {
		w.stop()
		s.watchers.remove(w)
	}, nil
}

func (s *Store) runBeverageWatcher(w *beverageWatcher, initial []*api.Beverage) {
	if w.stopped() {
		return
	}
	w.fn(initial)

	for {
		select {
		case <-w.done:
			return
		case <-w.notify:
		}

		list, err := s.FindBeverageList(context.Background(), &w.find)
		if err != nil {
			log.Warn("failed to refresh beverage live query", zap.Int64("watcher", w.id), zap.Error(err))
			continue
		}
		if w.stopped() {
			return
		}
		w.fn(list)
	}
}

package state

import (
	"context"

	"go.uber.org/zap"

	"brewhouse/api"
	"brewhouse/common/log"
)

// SetUser binds the store to user, or unbinds it when user is nil.
//
// Any held subscription is cancelled first. Binding a user opens a live query over
// that user's beverages ordered by name; each delivery replaces the local list and
// selects its first entry. Unbinding clears the list and the current beverage.
// Setup errors are logged: the identity stays recorded without a subscription.
func (s *BeverageStore) SetUser(ctx context.Context, user *api.User) {
	s.bindMu.Lock()
	defer s.bindMu.Unlock()

	s.mu.Lock()
	s.generation++
	generation := s.generation
	cancelSubscription(s.unsubscribe)
	s.unsubscribe = nil
	s.user = user
	if user == nil {
		s.beverages = []*api.Beverage{}
		s.currentBeverage = None[*api.Beverage]()
	}
	s.mu.Unlock()

	if user == nil {
		return
	}

	uid := user.UID
	unsubscribe, err := s.docs.WatchBeverageList(ctx, &api.BeverageFind{UID: &uid}, func(list []*api.Beverage) {
		s.replaceBeverages(generation, list)
	})
	if err != nil {
		log.Error("failed to subscribe to beverages", zap.String("uid", uid), zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsubscribe = unsubscribe
}

// Close releases the subscription and clears user-scoped state.
func (s *BeverageStore) Close() {
	s.SetUser(context.Background(), nil)
}

func (s *BeverageStore) replaceBeverages(generation uint64, list []*api.Beverage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return
	}

	beverages := make([]*api.Beverage, 0, len(list))
	beverages = append(beverages, list...)
	s.beverages = beverages
	if len(beverages) > 0 {
		s.currentBeverage = Some(beverages[0])
	} else {
		s.currentBeverage = None[*api.Beverage]()
	}
}

// cancelSubscription releases a live query. Cancellation is best effort: it does not
// wait for the backend and never propagates a failure.
func cancelSubscription(unsubscribe api.BeverageUnsubscribe) {
	if unsubscribe == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warn("failed to cancel beverage subscription", zap.Any("panic", r))
		}
	}()
	unsubscribe()
}

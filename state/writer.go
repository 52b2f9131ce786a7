package state

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"brewhouse/api"
	"brewhouse/common/log"
)

const (
	MessageNoUser              = "No user logged in, please sign in first."
	MessageIncompleteSelection = "Please complete all beverage options and the name before making a beverage."
	MessageCreateFailed        = "Error creating beverage."
)

// MakeBeverage saves the current selection as a new beverage of the bound user and
// returns a message meant for the user.
//
// On success the beverage is put at the front of the local list right away, becomes
// the current beverage, and the name is cleared; the live query later replaces the
// list with the backend's view. Nothing changes locally when the write fails or when
// the user is rebound while the write is in flight.
func (s *BeverageStore) MakeBeverage(ctx context.Context) string {
	s.mu.Lock()
	user := s.user
	if user == nil {
		s.mu.Unlock()
		return MessageNoUser
	}
	base, hasBase := s.currentBase.Get()
	creamer, hasCreamer := s.currentCreamer.Get()
	syrup, hasSyrup := s.currentSyrup.Get()
	if !hasBase || !hasCreamer || !hasSyrup || s.currentName == "" {
		s.mu.Unlock()
		return MessageIncompleteSelection
	}
	generation := s.generation
	upsert := &api.BeverageUpsert{
		ID:      api.BeverageID(user.UID, s.now()),
		UID:     user.UID,
		Name:    s.currentName,
		Temp:    s.currentTemp,
		Base:    *base,
		Syrup:   *syrup,
		Creamer: *creamer,
	}
	s.mu.Unlock()

	if _, err := s.docs.UpsertBeverage(ctx, upsert); err != nil {
		log.Error("failed to create beverage", zap.String("id", upsert.ID), zap.Error(err))
		return MessageCreateFailed
	}

	beverage := &api.Beverage{
		ID:      upsert.ID,
		UID:     upsert.UID,
		Name:    upsert.Name,
		Temp:    upsert.Temp,
		Base:    upsert.Base,
		Syrup:   upsert.Syrup,
		Creamer: upsert.Creamer,
	}

	s.mu.Lock()
	if s.generation == generation {
		s.beverages = prependBeverage(s.beverages, beverage)
		s.currentBeverage = Some(beverage)
		s.currentName = ""
	}
	s.mu.Unlock()

	return fmt.Sprintf("Beverage %s made successfully!", upsert.Name)
}

// prependBeverage returns a new list with beverage first and no other entry sharing its id.
func prependBeverage(list []*api.Beverage, beverage *api.Beverage) []*api.Beverage {
	beverages := make([]*api.Beverage, 0, len(list)+1)
	beverages = append(beverages, beverage)
	for _, item := range list {
		if item.ID != beverage.ID {
			beverages = append(beverages, item)
		}
	}
	return beverages
}

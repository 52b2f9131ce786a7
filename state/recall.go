package state

import (
	"fmt"

	"golang.org/x/exp/slices"

	"brewhouse/api"
	"brewhouse/common"
)

// ShowBeverage makes beverage the current one and loads its temperature and ingredients
// into the selection. Each ingredient resolves to the loaded catalog entry with the same
// id, falling back to the copy embedded in the beverage. A nil beverage is ignored.
func (s *BeverageStore) ShowBeverage(beverage *api.Beverage) {
	if beverage == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.showBeverage(beverage)
}

// ShowBeverageByID shows a beverage from the local list.
func (s *BeverageStore) ShowBeverageByID(id string) (*api.Beverage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.beverages, func(beverage *api.Beverage) bool {
		return beverage.ID == id
	})
	if i < 0 {
		return nil, &common.Error{Code: common.NotFound, Err: fmt.Errorf("beverage %q not found", id)}
	}
	beverage := s.beverages[i]
	s.showBeverage(beverage)
	return beverage, nil
}

func (s *BeverageStore) showBeverage(beverage *api.Beverage) {
	s.currentBeverage = Some(beverage)
	s.currentTemp = beverage.Temp
	s.currentBase = Some(resolveIngredient(s.bases, &beverage.Base))
	s.currentSyrup = Some(resolveIngredient(s.syrups, &beverage.Syrup))
	s.currentCreamer = Some(resolveIngredient(s.creamers, &beverage.Creamer))
}

func resolveIngredient(list []*api.Ingredient, embedded *api.Ingredient) *api.Ingredient {
	if i := indexIngredient(list, embedded.ID); i >= 0 {
		return list[i]
	}
	return embedded
}

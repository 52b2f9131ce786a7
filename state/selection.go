package state

import (
	"fmt"

	"golang.org/x/exp/slices"

	"brewhouse/api"
	"brewhouse/common"
)

func (s *BeverageStore) SelectBase(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	base, err := findIngredient(s.bases, api.IngredientBase, id)
	if err != nil {
		return err
	}
	s.currentBase = Some(base)
	return nil
}

func (s *BeverageStore) SelectSyrup(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	syrup, err := findIngredient(s.syrups, api.IngredientSyrup, id)
	if err != nil {
		return err
	}
	s.currentSyrup = Some(syrup)
	return nil
}

func (s *BeverageStore) SelectCreamer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creamer, err := findIngredient(s.creamers, api.IngredientCreamer, id)
	if err != nil {
		return err
	}
	s.currentCreamer = Some(creamer)
	return nil
}

// SelectTemp sets the current temperature. Only configured temperatures are accepted.
func (s *BeverageStore) SelectTemp(temp api.Temperature) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.temps, temp) {
		return unknownTemperature(temp)
	}
	s.currentTemp = temp
	return nil
}

func (s *BeverageStore) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentName = name
}

// ApplySelection applies every field of patch or none of them. Nil fields are left alone.
func (s *BeverageStore) ApplySelection(patch *api.SelectionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	base, syrup, creamer := s.currentBase, s.currentSyrup, s.currentCreamer
	temp, name := s.currentTemp, s.currentName
	if patch.BaseID != nil {
		ingredient, err := findIngredient(s.bases, api.IngredientBase, *patch.BaseID)
		if err != nil {
			return err
		}
		base = Some(ingredient)
	}
	if patch.SyrupID != nil {
		ingredient, err := findIngredient(s.syrups, api.IngredientSyrup, *patch.SyrupID)
		if err != nil {
			return err
		}
		syrup = Some(ingredient)
	}
	if patch.CreamerID != nil {
		ingredient, err := findIngredient(s.creamers, api.IngredientCreamer, *patch.CreamerID)
		if err != nil {
			return err
		}
		creamer = Some(ingredient)
	}
	if patch.Temp != nil {
		if !slices.Contains(s.temps, *patch.Temp) {
			return unknownTemperature(*patch.Temp)
		}
		temp = *patch.Temp
	}
	if patch.Name != nil {
		name = *patch.Name
	}

	s.currentBase, s.currentSyrup, s.currentCreamer = base, syrup, creamer
	s.currentTemp, s.currentName = temp, name
	return nil
}

func unknownTemperature(temp api.Temperature) error {
	return &common.Error{Code: common.Invalid, Err: fmt.Errorf("unknown temperature %q", temp)}
}

func findIngredient(list []*api.Ingredient, kind api.IngredientKind, id string) (*api.Ingredient, error) {
	i := indexIngredient(list, id)
	if i < 0 {
		return nil, &common.Error{Code: common.NotFound, Err: fmt.Errorf("%s entry %q not found", kind, id)}
	}
	return list[i], nil
}

func indexIngredient(list []*api.Ingredient, id string) int {
	return slices.IndexFunc(list, func(ingredient *api.Ingredient) bool {
		return ingredient.ID == id
	})
}

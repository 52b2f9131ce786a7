package state

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"brewhouse/api"
	"brewhouse/common/log"
)

// Init loads the bases, creamers and syrups collections and selects the first entry of
// each non-empty one. Errors are logged and leave the store partially loaded; Init
// never fails the caller. Calling Init again re-reads and replaces the catalog.
func (s *BeverageStore) Init(ctx context.Context) {
	if err := s.loadCatalog(ctx); err != nil {
		log.Error("failed to initialize beverage store", zap.Error(err))
	}
}

func (s *BeverageStore) loadCatalog(ctx context.Context) error {
	for _, kind := range api.IngredientKindList {
		list, err := s.docs.FindIngredientList(ctx, kind)
		if err != nil {
			return errors.Wrapf(err, "failed to load %s", kind)
		}
		s.setIngredientList(kind, list)
	}
	return nil
}

func (s *BeverageStore) setIngredientList(kind api.IngredientKind, list []*api.Ingredient) {
	if list == nil {
		list = []*api.Ingredient{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case api.IngredientBase:
		s.bases = list
		if len(list) > 0 {
			s.currentBase = Some(list[0])
		}
	case api.IngredientCreamer:
		s.creamers = list
		if len(list) > 0 {
			s.currentCreamer = Some(list[0])
		}
	case api.IngredientSyrup:
		s.syrups = list
		if len(list) > 0 {
			s.currentSyrup = Some(list[0])
		}
	}
}

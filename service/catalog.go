package service

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brewhouse/api"
)

func (s *Service) registerCatalogRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", func(ctx *gin.Context) {
		catalog := &api.Catalog{
			Temps: s.temps,
		}
		for _, kind := range api.IngredientKindList {
			list, err := s.Store.FindIngredientList(ctx, kind)
			if err != nil {
				ctx.String(http.StatusInternalServerError, "Failed to find "+kind.String())
				return
			}
			switch kind {
			case api.IngredientBase:
				catalog.Bases = list
			case api.IngredientSyrup:
				catalog.Syrups = list
			case api.IngredientCreamer:
				catalog.Creamers = list
			}
		}
		ctx.JSON(http.StatusOK, composeResponse(catalog))
	})
}

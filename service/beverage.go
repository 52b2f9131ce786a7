package service

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"brewhouse/api"
	"brewhouse/common"
	"brewhouse/state"
)

type beverageList struct {
	Beverages       []*api.Beverage               `json:"beverages"`
	CurrentBeverage state.Optional[*api.Beverage] `json:"currentBeverage"`
}

type beverageMessage struct {
	Message string `json:"message"`
}

func (s *Service) registerBeverageRoutes(rg *gin.RouterGroup) {
	rg.GET("/selection", func(ctx *gin.Context) {
		store, ok := s.currentBeverageStore(ctx)
		if !ok {
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(store.Snapshot()))
	})

	rg.PATCH("/selection", func(ctx *gin.Context) {
		store, ok := s.currentBeverageStore(ctx)
		if !ok {
			return
		}

		selectionPatch := &api.SelectionPatch{}
		if err := json.NewDecoder(ctx.Request.Body).Decode(selectionPatch); err != nil {
			ctx.String(http.StatusBadRequest, "Malformatted patch selection request")
			return
		}

		if err := store.ApplySelection(selectionPatch); err != nil {
			ctx.String(errorStatus(err), common.ErrorMessage(err))
			return
		}

		ctx.JSON(http.StatusOK, composeResponse(store.Snapshot()))
	})

	rg.GET("/beverage", func(ctx *gin.Context) {
		store, ok := s.currentBeverageStore(ctx)
		if !ok {
			return
		}
		snapshot := store.Snapshot()
		ctx.JSON(http.StatusOK, composeResponse(beverageList{
			Beverages:       snapshot.Beverages,
			CurrentBeverage: snapshot.CurrentBeverage,
		}))
	})

	rg.POST("/beverage", func(ctx *gin.Context) {
		store, ok := s.currentBeverageStore(ctx)
		if !ok {
			return
		}
		// The message is meant for the user as is, whether the beverage was made or not.
		ctx.JSON(http.StatusOK, composeResponse(beverageMessage{
			Message: store.MakeBeverage(ctx),
		}))
	})

	rg.POST("/beverage/:beverageId/show", func(ctx *gin.Context) {
		store, ok := s.currentBeverageStore(ctx)
		if !ok {
			return
		}
		if _, err := store.ShowBeverageByID(ctx.Param("beverageId")); err != nil {
			ctx.String(errorStatus(err), common.ErrorMessage(err))
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(store.Snapshot()))
	})
}

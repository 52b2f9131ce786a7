package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Service) registerUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/me", func(ctx *gin.Context) {
		user, ok := s.currentUser(ctx)
		if !ok {
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(user))
	})
}

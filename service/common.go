package service

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brewhouse/common"
)

type response struct {
	Data any `json:"data"`
}

func composeResponse(data any) response {
	return response{Data: data}
}

func (s *Service) defaultAuthSkipper(ctx *gin.Context) bool {
	path := ctx.Request.URL.Path
	return common.HasPrefixes(path, "/api/auth/signin", "/api/auth/signup")
}

// errorStatus maps an application error code to an HTTP status.
func errorStatus(err error) int {
	switch common.ErrorCode(err) {
	case common.NotFound:
		return http.StatusNotFound
	case common.Invalid:
		return http.StatusBadRequest
	case common.Conflict:
		return http.StatusConflict
	case common.NotAuthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

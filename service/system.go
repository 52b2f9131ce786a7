package service

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"brewhouse/api"
	"brewhouse/common"
)

type systemStatus struct {
	ServiceID string `json:"serviceId"`
	Mode      string `json:"mode"`
	Version   string `json:"version"`
}

func (s *Service) registerSystemRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, composeResponse(systemStatus{
			ServiceID: s.ID,
			Mode:      s.Profile.Mode,
			Version:   s.Profile.Version,
		}))
	})
}

func (s *Service) getSystemServiceID(ctx context.Context) (string, error) {
	serviceID, err := s.Store.FindSystemSetting(ctx, &api.SystemSettingFind{
		Name: api.SystemSettingServiceIDName,
	})
	if err != nil && common.ErrorCode(err) != common.NotFound {
		return "", err
	}
	if serviceID == nil || serviceID.Value == "" {
		serviceID, err = s.Store.UpsertSystemSetting(ctx, &api.SystemSettingUpsert{
			Name:  api.SystemSettingServiceIDName,
			Value: common.GenUUID(),
		})
		if err != nil {
			return "", err
		}
	}
	return serviceID.Value, nil
}

func (s *Service) getSystemSecretSessionName(ctx context.Context) (string, error) {
	secretSessionNameValue, err := s.Store.FindSystemSetting(ctx, &api.SystemSettingFind{
		Name: api.SystemSettingSecretSessionName,
	})
	if err != nil && common.ErrorCode(err) != common.NotFound {
		return "", err
	}
	if secretSessionNameValue == nil || secretSessionNameValue.Value == "" {
		secretSessionNameValue, err = s.Store.UpsertSystemSetting(ctx, &api.SystemSettingUpsert{
			Name:  api.SystemSettingSecretSessionName,
			Value: common.GenUUID(),
		})
		if err != nil {
			return "", err
		}
	}
	return secretSessionNameValue.Value, nil
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"brewhouse/api"
	"brewhouse/common"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(ctx, t)

	user, err := store.CreateUser(ctx, &api.UserCreate{
		UID:          "uid-barista",
		Name:         "barista",
		Nickname:     "Barista",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "uid-barista", user.UID)

	name := "barista"
	found, err := store.FindUser(ctx, &api.UserFind{Name: &name})
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	found, err = store.FindUser(ctx, &api.UserFind{ID: &user.ID})
	require.NoError(t, err)
	require.Equal(t, "hash", found.PasswordHash)

	missing := "nobody"
	_, err = store.FindUser(ctx, &api.UserFind{Name: &missing})
	require.Equal(t, common.NotFound, common.ErrorCode(err))

	_, err = store.CreateUser(ctx, &api.UserCreate{
		UID:          "uid-other",
		Name:         "barista",
		PasswordHash: "hash",
	})
	require.Equal(t, common.Conflict, common.ErrorCode(err))

	list, err := store.FindUserList(ctx, &api.UserFind{})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestSystemSettingStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(ctx, t)

	_, err := store.FindSystemSetting(ctx, &api.SystemSettingFind{Name: api.SystemSettingServiceIDName})
	require.Equal(t, common.NotFound, common.ErrorCode(err))

	setting, err := store.UpsertSystemSetting(ctx, &api.SystemSettingUpsert{
		Name:  api.SystemSettingServiceIDName,
		Value: "service",
	})
	require.NoError(t, err)
	require.Equal(t, "service", setting.Value)

	setting, err = store.UpsertSystemSetting(ctx, &api.SystemSettingUpsert{
		Name:  api.SystemSettingServiceIDName,
		Value: "service-2",
	})
	require.NoError(t, err)

	found, err := store.FindSystemSetting(ctx, &api.SystemSettingFind{Name: api.SystemSettingServiceIDName})
	require.NoError(t, err)
	require.Equal(t, setting, found)
}

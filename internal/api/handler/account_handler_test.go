package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/feedtamer/internal/model"
)

func accountFromData(t *testing.T, data any) model.Account {
	t.Helper()
	var got model.Account
	require.NoError(t, json.Unmarshal(dataMap(t, data)["account"], &got))
	return got
}

func TestFollowAccountFlow(t *testing.T) {
	env := setupHandlerTest(t)

	w, resp := env.do(t, http.MethodPost, "/api/accounts",
		`{"platform":"twitter","accountId":"jack","username":"jack"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	account := accountFromData(t, resp.Data)
	assert.Equal(t, "jack", account.AccountID)
	assert.True(t, account.NotificationSettings.Enabled)
	assert.Equal(t, "all", account.NotificationSettings.Frequency)

	// 重复关注同一远端账号：400
	w, _ = env.do(t, http.MethodPost, "/api/accounts",
		`{"platform":"twitter","accountId":"jack","username":"jack"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// 未知平台被校验器拦下
	w, _ = env.do(t, http.MethodPost, "/api/accounts",
		`{"platform":"myspace","accountId":"tom","username":"tom"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = env.do(t, http.MethodGet, "/api/accounts", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Results)
	assert.Equal(t, 1, *resp.Results)
}

func TestUnfollowKeepsContentHistory(t *testing.T) {
	env := setupHandlerTest(t)
	account := env.seedAccount(t, model.PlatformTwitter, "a1")

	w, _ := env.do(t, http.MethodDelete, "/api/accounts/"+account.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	// 软删除：账号从目录消失，但数据行还在
	w, _ = env.do(t, http.MethodGet, "/api/accounts/"+account.ID, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&model.Account{}).Where("id = ?", account.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPinUnpinEndpoints(t *testing.T) {
	env := setupHandlerTest(t)
	a1 := env.seedAccount(t, model.PlatformTwitter, "a1")
	a2 := env.seedAccount(t, model.PlatformReddit, "a2")

	w, resp := env.do(t, http.MethodPatch, "/api/accounts/"+a1.ID+"/pin", "")
	require.Equal(t, http.StatusOK, w.Code)
	pinned := accountFromData(t, resp.Data)
	require.NotNil(t, pinned.PinnedOrder)
	assert.Equal(t, 1, *pinned.PinnedOrder)

	w, resp = env.do(t, http.MethodPatch, "/api/accounts/"+a2.ID+"/pin", "")
	require.Equal(t, http.StatusOK, w.Code)
	pinned = accountFromData(t, resp.Data)
	require.NotNil(t, pinned.PinnedOrder)
	assert.Equal(t, 2, *pinned.PinnedOrder)

	w, resp = env.do(t, http.MethodPatch, "/api/accounts/"+a1.ID+"/unpin", "")
	require.Equal(t, http.StatusOK, w.Code)
	unpinned := accountFromData(t, resp.Data)
	assert.False(t, unpinned.Pinned)
	assert.Nil(t, unpinned.PinnedOrder)

	w, _ = env.do(t, http.MethodPatch, "/api/accounts/no-such-id/pin", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateNotificationSettings(t *testing.T) {
	env := setupHandlerTest(t)
	account := env.seedAccount(t, model.PlatformTwitter, "a1")

	w, resp := env.do(t, http.MethodPatch, "/api/accounts/"+account.ID+"/notifications",
		`{"enabled":true,"frequency":"daily"}`)
	require.Equal(t, http.StatusOK, w.Code)
	got := accountFromData(t, resp.Data)
	assert.Equal(t, "daily", got.NotificationSettings.Frequency)

	// 非法频率
	w, _ = env.do(t, http.MethodPatch, "/api/accounts/"+account.ID+"/notifications",
		`{"enabled":true,"frequency":"hourly"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

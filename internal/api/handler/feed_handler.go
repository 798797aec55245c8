package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/feedtamer/internal/api/middleware"
	"github.com/d60-Lab/feedtamer/internal/service"
	"github.com/d60-Lab/feedtamer/pkg/response"
)

// intQuery 解析整型查询参数，非法值回落默认（过滤参数只归一不拒绝）
func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

func boolQuery(c *gin.Context, key string) bool {
	return c.Query(key) == "true"
}

// GetFeed 聚合 feed
// @Summary 统一 feed（多账号合并，倒序分页）
// @Tags Feed
// @Param limit query int false "条数" default(20)
// @Param skip query int false "偏移" default(0)
// @Param platform query string false "平台过滤"
// @Param saved query bool false "仅收藏"
// @Param includeRead query bool false "包含已读"
// @Param maxAge query int false "最大天数"
// @Success 200 {object} response.Response
// @Router /api/feed [get]
func (h *Handler) GetFeed(c *gin.Context) {
	user := middleware.CurrentUser(c)
	opts := service.FeedOptions{
		Limit:       intQuery(c, "limit", 20),
		Skip:        intQuery(c, "skip", 0),
		Platform:    c.Query("platform"),
		OnlySaved:   boolQuery(c, "saved"),
		IncludeRead: boolQuery(c, "includeRead"),
		MaxAge:      intQuery(c, "maxAge", 0),
	}
	content, err := h.feedSvc.AssembleFeed(c.Request.Context(), user.ID, opts)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.SuccessWithResults(c, len(content), gin.H{"content": content})
}

// GetFeedByPlatform 按平台分组的 feed
// @Summary 按平台分组 feed
// @Tags Feed
// @Param limit query int false "每平台条数" default(10)
// @Param includeRead query bool false "包含已读"
// @Param maxAge query int false "最大天数"
// @Success 200 {object} response.Response
// @Router /api/feed/by-platform [get]
func (h *Handler) GetFeedByPlatform(c *gin.Context) {
	user := middleware.CurrentUser(c)
	opts := service.FeedOptions{
		Limit:       intQuery(c, "limit", 10),
		IncludeRead: boolQuery(c, "includeRead"),
		MaxAge:      intQuery(c, "maxAge", 0),
	}
	result, err := h.feedSvc.FeedByPlatform(c.Request.Context(), user.ID, opts)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, result)
}

// GetSavedContent 收藏列表
// @Summary 收藏内容
// @Tags Feed
// @Param limit query int false "条数" default(20)
// @Param skip query int false "偏移" default(0)
// @Param platform query string false "平台过滤"
// @Success 200 {object} response.Response
// @Router /api/feed/saved [get]
func (h *Handler) GetSavedContent(c *gin.Context) {
	user := middleware.CurrentUser(c)
	opts := service.FeedOptions{
		Limit:    intQuery(c, "limit", 20),
		Skip:     intQuery(c, "skip", 0),
		Platform: c.Query("platform"),
	}
	content, err := h.feedSvc.SavedFeed(c.Request.Context(), user.ID, opts)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.SuccessWithResults(c, len(content), gin.H{"content": content})
}

// GetAccountContent 单账号内容
// @Summary 指定账号的内容
// @Tags Feed
// @Param accountId path string true "账号ID"
// @Param limit query int false "条数" default(20)
// @Param skip query int false "偏移" default(0)
// @Param includeRead query bool false "包含已读"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/feed/account/{accountId} [get]
func (h *Handler) GetAccountContent(c *gin.Context) {
	user := middleware.CurrentUser(c)
	opts := service.FeedOptions{
		Limit:       intQuery(c, "limit", 20),
		Skip:        intQuery(c, "skip", 0),
		IncludeRead: boolQuery(c, "includeRead"),
	}
	account, content, err := h.feedSvc.AccountFeed(c.Request.Context(), user.ID, c.Param("accountId"), opts)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "account not found or not followed")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.SuccessWithResults(c, len(content), gin.H{"account": account, "content": content})
}

// MarkContentSeen 标记已读
// @Summary 标记内容已读
// @Tags Feed
// @Param contentId path string true "内容ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/feed/{contentId}/seen [patch]
func (h *Handler) MarkContentSeen(c *gin.Context) {
	user := middleware.CurrentUser(c)
	content, err := h.interactionSvc.MarkSeen(c.Request.Context(), c.Param("contentId"), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "content not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"content": content})
}

type saveRequest struct {
	Saved *bool `json:"saved" binding:"required"`
}

// ToggleSaveContent 收藏/取消收藏
// @Summary 收藏或取消收藏内容
// @Tags Feed
// @Param contentId path string true "内容ID"
// @Param request body saveRequest true "收藏状态"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/feed/{contentId}/save [patch]
func (h *Handler) ToggleSaveContent(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	content, err := h.interactionSvc.SetSaved(c.Request.Context(), c.Param("contentId"), user.ID, *req.Saved)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "content not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"content": content})
}

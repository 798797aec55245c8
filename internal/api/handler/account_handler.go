package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/feedtamer/internal/api/middleware"
	"github.com/d60-Lab/feedtamer/internal/model"
	"github.com/d60-Lab/feedtamer/internal/service"
	"github.com/d60-Lab/feedtamer/pkg/response"
)

// FollowAccount 关注账号
// @Summary 关注外部平台账号
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body service.FollowInput true "账号信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/accounts [post]
func (h *Handler) FollowAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var in service.FollowInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	account, err := h.accountSvc.Follow(c.Request.Context(), user.ID, in)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyFollowed) || errors.Is(err, service.ErrBadPlatform) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"account": account})
}

// ListAccounts 关注列表
// @Summary 当前用户关注的账号
// @Tags 账号
// @Success 200 {object} response.Response
// @Router /api/accounts [get]
func (h *Handler) ListAccounts(c *gin.Context) {
	user := middleware.CurrentUser(c)
	accounts, err := h.accountSvc.ListAccounts(c.Request.Context(), user.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.SuccessWithResults(c, len(accounts), gin.H{"accounts": accounts})
}

// GetAccount 账号详情
// @Summary 账号详情
// @Tags 账号
// @Param accountId path string true "账号ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/accounts/{accountId} [get]
func (h *Handler) GetAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	account, err := h.accountSvc.GetAccount(c.Request.Context(), user.ID, c.Param("accountId"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"account": account})
}

// UnfollowAccount 取消关注（软删除，保留历史内容）
// @Summary 取消关注
// @Tags 账号
// @Param accountId path string true "账号ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/accounts/{accountId} [delete]
func (h *Handler) UnfollowAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.accountSvc.Unfollow(c.Request.Context(), user.ID, c.Param("accountId")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// PinAccount 置顶账号
// @Summary 置顶账号
// @Tags 账号
// @Param accountId path string true "账号ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/accounts/{accountId}/pin [patch]
func (h *Handler) PinAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	account, err := h.accountSvc.Pin(c.Request.Context(), user.ID, c.Param("accountId"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"account": account})
}

// UnpinAccount 取消置顶
// @Summary 取消置顶
// @Tags 账号
// @Param accountId path string true "账号ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/accounts/{accountId}/unpin [patch]
func (h *Handler) UnpinAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	account, err := h.accountSvc.Unpin(c.Request.Context(), user.ID, c.Param("accountId"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"account": account})
}

type notificationRequest struct {
	Enabled   bool   `json:"enabled"`
	Frequency string `json:"frequency" binding:"omitempty,oneof=all daily none"`
}

// UpdateNotifications 更新账号通知设置
// @Summary 更新通知设置
// @Tags 账号
// @Param accountId path string true "账号ID"
// @Param request body notificationRequest true "通知设置"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/accounts/{accountId}/notifications [patch]
func (h *Handler) UpdateNotifications(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.Frequency == "" {
		req.Frequency = "all"
	}
	account, err := h.accountSvc.UpdateNotifications(c.Request.Context(), user.ID, c.Param("accountId"),
		model.NotificationSettings{Enabled: req.Enabled, Frequency: req.Frequency})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "account not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"account": account})
}

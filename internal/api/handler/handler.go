package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/feedtamer/internal/service"
	"github.com/d60-Lab/feedtamer/pkg/response"
)

// Handler 聚合全部 HTTP 处理器依赖
type Handler struct {
	authSvc        service.AuthService
	accountSvc     service.AccountService
	feedSvc        service.FeedService
	interactionSvc service.InteractionService
}

func New(authSvc service.AuthService, accountSvc service.AccountService, feedSvc service.FeedService, interactionSvc service.InteractionService) *Handler {
	return &Handler{
		authSvc:        authSvc,
		accountSvc:     accountSvc,
		feedSvc:        feedSvc,
		interactionSvc: interactionSvc,
	}
}

// Health 健康检查
// @Summary 健康检查
// @Tags 系统
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

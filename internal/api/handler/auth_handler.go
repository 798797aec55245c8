package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/feedtamer/internal/api/middleware"
	"github.com/d60-Lab/feedtamer/internal/service"
	"github.com/d60-Lab/feedtamer/pkg/response"
)

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Signup 注册
// @Summary 注册新用户
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body signupRequest true "注册信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.authSvc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 登录
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"token": token, "user": user})
}

// Me 当前用户资料
// @Summary 当前用户
// @Tags 认证
// @Success 200 {object} response.Response
// @Router /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	response.Success(c, gin.H{"user": middleware.CurrentUser(c)})
}

// UpdateMe 更新资料（不含密码）
// @Summary 更新资料
// @Tags 认证
// @Param request body service.UserUpdate true "资料补丁"
// @Success 200 {object} response.Response
// @Router /api/auth/me [patch]
func (h *Handler) UpdateMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var upd service.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	updated, err := h.authSvc.UpdateMe(c.Request.Context(), user.ID, upd)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"user": updated})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdatePassword 修改密码并重新签发 token
// @Summary 修改密码
// @Tags 认证
// @Param request body updatePasswordRequest true "密码信息"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/auth/password [patch]
func (h *Handler) UpdatePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.authSvc.UpdatePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"token": token})
}

// DeleteMe 注销（软删除）
// @Summary 注销当前用户
// @Tags 认证
// @Success 200 {object} response.Response
// @Router /api/auth/me [delete]
func (h *Handler) DeleteMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.authSvc.DeleteMe(c.Request.Context(), user.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

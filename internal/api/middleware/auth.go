package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/feedtamer/internal/model"
	"github.com/d60-Lab/feedtamer/internal/service"
	"github.com/d60-Lab/feedtamer/pkg/response"
)

const contextUserKey = "currentUser"

// Auth Bearer token 鉴权：校验 JWT 并把活跃用户挂到请求上下文
func Auth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "you are not logged in")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				response.Unauthorized(c, "invalid or expired token")
				return
			}
			response.InternalError(c, err)
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser 取出鉴权中间件写入的用户；只在受保护路由内调用
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

package response

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/feedtamer/pkg/logger"
)

// Response 统一响应包体
type Response struct {
	Status  string `json:"status"`
	Results *int   `json:"results,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Status: statusSuccess, Data: data})
}

// SuccessWithResults 附带条目数（列表类接口）
func SuccessWithResults(c *gin.Context, results int, data any) {
	c.JSON(http.StatusOK, Response{Status: statusSuccess, Results: &results, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Status: statusSuccess, Data: data})
}

func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{Status: statusFail, Message: msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Status: statusFail, Message: msg})
}

func NotFound(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusNotFound, Response{Status: statusFail, Message: msg})
}

func TooManyRequests(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{Status: statusFail, Message: msg})
}

// InternalError 存储层等内部错误统一出口：记日志、上报 Sentry，响应不携带底层细节
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	sentry.CaptureException(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
		Status:  statusError,
		Message: "internal server error",
	})
}

package handler

import (
	"errors"
	"net/http"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/middleware"
	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

// fail 错误大类 → HTTP 状态码的唯一换算点
func fail(c *gin.Context, err error) {
	var rl *service.RateLimitedError
	if errors.As(err, &rl) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"msg":         "too many requests",
			"retry_after": rl.RetryAt.Unix(),
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrCapacity), errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}

// viewerID 读上下文里的档案 ID，未登录为 0
func viewerID(c *gin.Context) uint64 {
	v, ok := c.Get(middleware.ContextProfileIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(uint64)
	return id
}

func accountID(c *gin.Context) uint64 {
	v, ok := c.Get(middleware.ContextAccountIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(uint64)
	return id
}

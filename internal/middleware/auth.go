package middleware

import (
	"net/http"
	"strings"

	"Orbit_Community/internal/pkg"
	"Orbit_Community/internal/repository/redis"
	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ContextAccountIDKey = "account_id"
	ContextProfileIDKey = "profile_id"
)

// AuthMiddleware 必须登录的接口用。解析 JWT、对 redis 里的单点 token、
// 然后按 email 解析出档案，把 profile_id 注入请求上下文 —— 身份在这
// 一次解析完毕，后面的协作方只收显式参数，不碰任何全局态
func AuthMiddleware(profiles *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			return
		}

		sessionRep := &redis.SessionRepository{}
		originToken, err := sessionRep.GetUserToken(claims.UserID)
		if err != nil || originToken != bearerToken(c) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "account has been logged in elsewhere"})
			c.Abort()
			return
		}

		// 校验通过后顺延过期时间
		if err = sessionRep.ExtendUserToken(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		profile, err := profiles.Resolve(claims.Email, "")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "identity resolution failed"})
			return
		}

		c.Set(ContextAccountIDKey, claims.UserID)
		c.Set(ContextProfileIDKey, profile.ID)
		c.Next()
	}
}

// OptionalAuthMiddleware 读接口用：没带 token 就按未登录视图走，带了就解析
func OptionalAuthMiddleware(profiles *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Set(ContextProfileIDKey, uint64(0))
			c.Next()
			return
		}
		claims, err := pkg.ParseAccess(token)
		if err != nil {
			c.Set(ContextProfileIDKey, uint64(0))
			c.Next()
			return
		}
		profile, err := profiles.Resolve(claims.Email, "")
		if err != nil {
			c.Set(ContextProfileIDKey, uint64(0))
			c.Next()
			return
		}
		c.Set(ContextAccountIDKey, claims.UserID)
		c.Set(ContextProfileIDKey, profile.ID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func parseBearer(c *gin.Context) (*pkg.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
		c.Abort()
		return nil, false
	}
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
		c.Abort()
		return nil, false
	}
	claims, err := pkg.ParseAccess(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
		c.Abort()
		return nil, false
	}
	return claims, true
}

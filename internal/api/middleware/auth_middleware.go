package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/resume"
	"resumeapi/internal/errcode"
)

const currentUserKey = "currentUser"

// ActiveUserResolver 将 bearer 令牌解析为已启用的账号。
type ActiveUserResolver interface {
	CurrentActiveUser(ctx context.Context, token string) (resume.User, error)
}

// AbortUnauthorized 返回带 Bearer 质询的 401。
func AbortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errcode.ErrUnauthorized.Error()})
}

// BearerToken 从 "Authorization: Bearer <token>" 中提取令牌。
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware 校验访问令牌，并把当前启用的用户注入上下文。
// 令牌缺失或无效返回 401，账号被停用返回 400。
func AuthMiddleware(users ActiveUserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			AbortUnauthorized(c)
			return
		}

		user, err := users.CurrentActiveUser(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, errcode.ErrUnauthorized):
			AbortUnauthorized(c)
			return
		case errors.Is(err, errcode.ErrInactiveUser):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errcode.ErrInactiveUser.Error()})
			return
		default:
			LoggerFromContext(c).Error("resolve current user failed", slog.Any("error", err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser 返回认证中间件注入的用户。
func CurrentUser(c *gin.Context) (resume.User, bool) {
	if value, ok := c.Get(currentUserKey); ok {
		if user, ok := value.(resume.User); ok {
			return user, true
		}
	}
	return resume.User{}, false
}

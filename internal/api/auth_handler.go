package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/api/middleware"
	"resumeapi/internal/controller"
	"resumeapi/internal/errcode"
	"resumeapi/internal/resume"
)

// AuthHandler 处理令牌签发与账号查询。
type AuthHandler struct {
	auth   *controller.AuthController
	logger *slog.Logger
}

// NewAuthHandler 构造认证处理器。
func NewAuthHandler(authController *controller.AuthController, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authController, logger: logger}
}

type tokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Token 校验表单口令并返回访问令牌。失败次数不做限制。
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	logger := h.loggerFromContext(c).With(slog.String("username", req.Username))

	user, err := h.auth.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errcode.ErrInvalidCredentials) {
			BadRequest(c, errcode.ErrInvalidCredentials.Error())
			return
		}
		logger.Error("authenticate user failed", slog.Any("error", err))
		Internal(c)
		return
	}

	token, err := h.auth.CreateAccessToken(user.Username, 0)
	if err != nil {
		logger.Error("sign access token failed", slog.Any("error", err))
		Internal(c)
		return
	}

	logger.Info("access token issued")
	c.JSON(http.StatusOK, resume.Token{AccessToken: token, TokenType: "bearer"})
}

// ListUsers 列出全部账号及其启用状态。
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume.Users{Users: users})
}

// Me 返回当前令牌对应的账号。
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortUnauthorized(c)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger, ok := middleware.RequestLogger(c); ok {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

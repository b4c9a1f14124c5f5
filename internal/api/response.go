package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/api/middleware"
	"resumeapi/internal/errcode"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context)               { Error(c, http.StatusInternalServerError, "internal error") }

// RespondError 将控制器错误映射为 HTTP 状态码，errcode 之外的错误记录日志并返回 500。
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errcode.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, errcode.ErrConflict):
		Conflict(c, err.Error())
	case errors.Is(err, errcode.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, errcode.ErrInvalidCredentials):
		BadRequest(c, errcode.ErrInvalidCredentials.Error())
	case errors.Is(err, errcode.ErrInactiveUser):
		BadRequest(c, errcode.ErrInactiveUser.Error())
	case errors.Is(err, errcode.ErrUnauthorized):
		middleware.AbortUnauthorized(c)
	default:
		middleware.LoggerFromContext(c).Error("request failed", slog.Any("error", err))
		Internal(c)
	}
}

// respondUpsert answers 201 for a new row and 200 for an update.
func respondUpsert(c *gin.Context, body any, created bool) {
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, body)
}

// parseID reads a strictly numeric positive path id.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		BadRequest(c, "invalid "+name+" "+strconv.Quote(raw))
		return 0, false
	}
	return uint(id), true
}

package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"resumeapi/internal/auth"
	"resumeapi/internal/database"
	"resumeapi/internal/errcode"
	"resumeapi/internal/resume"
)

// AuthController 负责校验凭据、签发令牌与管理账号。
// 对外只返回 resume.User，密码哈希不会离开本包。
type AuthController struct {
	db     *gorm.DB
	auth   *auth.AuthService
	logger *slog.Logger
}

// NewAuthController 构造 AuthController。
func NewAuthController(db *gorm.DB, authService *auth.AuthService, logger *slog.Logger) *AuthController {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthController{db: db, auth: authService, logger: logger}
}

// HashPassword 使用 bcrypt 生成密码哈希。
func (a *AuthController) HashPassword(plain string) (string, error) {
	return a.auth.HashPassword(plain)
}

// VerifyPassword 校验密码是否匹配哈希。
func (a *AuthController) VerifyPassword(plain, hash string) bool {
	return a.auth.CheckPasswordHash(plain, hash)
}

func (a *AuthController) findUser(ctx context.Context, username string) (database.User, error) {
	return takeRecord[database.User](ctx, a.db, map[string]any{"username": username}, fmt.Sprintf("user %q", username))
}

// GetUser 按用户名精确查找账号。
func (a *AuthController) GetUser(ctx context.Context, username string) (resume.User, error) {
	row, err := a.findUser(ctx, username)
	if err != nil {
		return resume.User{}, err
	}
	return userDTO(row), nil
}

// AuthenticateUser 仅在密码正确且账号启用时返回用户，其余情况一律返回 ErrInvalidCredentials。
func (a *AuthController) AuthenticateUser(ctx context.Context, username, password string) (resume.User, error) {
	logger := a.logger.With(slog.String("username", username))

	user, err := a.findUser(ctx, username)
	if err != nil {
		if !errors.Is(err, errcode.ErrNotFound) {
			return resume.User{}, err
		}
		logger.Warn("authentication failed: unknown user")
		return resume.User{}, errcode.ErrInvalidCredentials
	}
	if !a.VerifyPassword(password, user.PasswordHash) {
		logger.Warn("authentication failed: incorrect password")
		return resume.User{}, errcode.ErrInvalidCredentials
	}
	if user.Disabled {
		logger.Warn("authentication failed: user disabled")
		return resume.User{}, errcode.ErrInvalidCredentials
	}

	logger.Info("authentication succeeded")
	return userDTO(user), nil
}

// CreateAccessToken 为 subject 签发访问令牌，ttl <= 0 时使用配置的有效期。
func (a *AuthController) CreateAccessToken(subject string, ttl time.Duration) (string, error) {
	return a.auth.GenerateAccessToken(subject, ttl)
}

// ParseAccessToken 校验令牌并返回 subject。
func (a *AuthController) ParseAccessToken(token string) (string, error) {
	claims, err := a.auth.ValidateToken(token)
	if err != nil {
		a.logger.Debug("token rejected", slog.Any("error", err))
		return "", fmt.Errorf("%w: %v", errcode.ErrUnauthorized, err)
	}
	return claims.Subject, nil
}

// CurrentUser 将 bearer 令牌解析为对应账号。
func (a *AuthController) CurrentUser(ctx context.Context, token string) (resume.User, error) {
	subject, err := a.ParseAccessToken(token)
	if err != nil {
		return resume.User{}, err
	}
	user, err := a.GetUser(ctx, subject)
	if err != nil {
		if errors.Is(err, errcode.ErrNotFound) {
			return resume.User{}, fmt.Errorf("%w: unknown subject", errcode.ErrUnauthorized)
		}
		return resume.User{}, err
	}
	return user, nil
}

// CurrentActiveUser 在 CurrentUser 基础上拒绝已停用账号。
func (a *AuthController) CurrentActiveUser(ctx context.Context, token string) (resume.User, error) {
	user, err := a.CurrentUser(ctx, token)
	if err != nil {
		return resume.User{}, err
	}
	if user.Disabled {
		return resume.User{}, errcode.ErrInactiveUser
	}
	return user, nil
}

// CreateUser 以小写用户名保存新账号。
func (a *AuthController) CreateUser(ctx context.Context, username, password string, disabled bool) (resume.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return resume.User{}, fmt.Errorf("empty username: %w", errcode.ErrValidation)
	}

	hash, err := a.HashPassword(password)
	if err != nil {
		return resume.User{}, err
	}

	user := database.User{Username: username, PasswordHash: hash, Disabled: disabled}
	if err := a.db.WithContext(ctx).Create(&user).Error; err != nil {
		return resume.User{}, translate(err, fmt.Sprintf("create user %q", username))
	}

	a.logger.Info("user created", slog.String("username", username), slog.Bool("disabled", disabled))
	return userDTO(user), nil
}

// DeactivateUser 停用账号。
func (a *AuthController) DeactivateUser(ctx context.Context, username string) (resume.User, error) {
	return a.setDisabled(ctx, username, true)
}

// ActivateUser 重新启用账号。
func (a *AuthController) ActivateUser(ctx context.Context, username string) (resume.User, error) {
	return a.setDisabled(ctx, username, false)
}

func (a *AuthController) setDisabled(ctx context.Context, username string, disabled bool) (resume.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	logger := a.logger.With(slog.String("username", username), slog.Bool("disabled", disabled))

	user, err := a.findUser(ctx, username)
	if err != nil {
		logger.Error("failed to change user state", slog.Any("error", err))
		return resume.User{}, err
	}

	if err := a.db.WithContext(ctx).Model(&user).Update("disabled", disabled).Error; err != nil {
		return resume.User{}, translate(err, fmt.Sprintf("update user %q", username))
	}
	user.Disabled = disabled

	logger.Info("user state changed")
	return userDTO(user), nil
}

// ListUsers 按 id 顺序返回全部账号。
func (a *AuthController) ListUsers(ctx context.Context) ([]resume.User, error) {
	rows, err := listRecords[database.User](ctx, a.db, "users")
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, userDTO), nil
}

// EnsureUser 在账号不存在时创建，已存在则原样返回。
func (a *AuthController) EnsureUser(ctx context.Context, username, password string) (resume.User, bool, error) {
	user, err := a.CreateUser(ctx, username, password, false)
	if err == nil {
		return user, true, nil
	}
	if !errors.Is(err, errcode.ErrConflict) {
		return resume.User{}, false, err
	}

	a.logger.Info("user already exists", slog.String("username", strings.ToLower(username)))
	existing, err := a.GetUser(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return resume.User{}, false, err
	}
	return existing, false, nil
}

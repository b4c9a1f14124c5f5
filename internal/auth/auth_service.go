package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL 在调用方与配置都未指定有效期时使用。
const DefaultAccessTokenTTL = 15 * time.Minute

// AuthService 负责密码哈希、JWT 生成与校验。
type AuthService struct {
	secret         []byte
	method         jwt.SigningMethod
	accessTokenTTL time.Duration
	now            func() time.Time
}

// TokenClaims 在标准 subject 字段中携带用户名。
type TokenClaims struct {
	jwt.RegisteredClaims
}

// NewAuthService 接收 HMAC 密钥，算法为 HS256、HS384 或 HS512 之一。
func NewAuthService(secret string, algorithm string, accessTTL time.Duration) (*AuthService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("secret key is required")
	}

	var method jwt.SigningMethod
	switch strings.ToUpper(strings.TrimSpace(algorithm)) {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}

	return &AuthService{
		secret:         []byte(secret),
		method:         method,
		accessTokenTTL: accessTTL,
		now:            time.Now,
	}, nil
}

// HashPassword 使用 bcrypt 生成密码哈希。
func (s *AuthService) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

// CheckPasswordHash 校验密码是否匹配哈希。
func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	return CheckPasswordHash(password, hash)
}

// GenerateAccessToken 为 subject 签发访问令牌，ttl 不为正时使用配置的有效期。
func (s *AuthService) GenerateAccessToken(subject string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("token subject is empty")
	}
	if ttl <= 0 {
		ttl = s.accessTokenTTL
	}

	now := s.now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken 解析并验证 JWT，要求 exp 与 sub 均存在。
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("token subject missing")
	}

	return claims, nil
}

// AccessTokenTTL 暴露访问令牌有效期。
func (s *AuthService) AccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}

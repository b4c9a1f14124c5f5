package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"resumeapi/internal/errcode"
)

// HashPassword 使用 bcrypt 生成带盐哈希。超过 72 字节的口令视为校验错误。
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password: %w", errcode.ErrValidation)
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("hash password: %w", errcode.ErrValidation)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPasswordHash 校验密码是否匹配哈希。
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

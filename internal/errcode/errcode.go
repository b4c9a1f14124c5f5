// Package errcode 定义控制器与处理器共用的错误分类。
package errcode

import "errors"

// 调用方用 %w 附加上下文，并通过 errors.Is 判断。
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrInactiveUser       = errors.New("inactive user")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

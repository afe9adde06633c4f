package service

import "errors"

var (
	// ErrInvalidToken 凭证无效或目标不存在，两者不做区分
	ErrInvalidToken = errors.New("invalid token")
	// ErrActivationFailed 激活失败
	ErrActivationFailed = errors.New("activation failed")
	// ErrPasswordResetFailed 重置密码失败
	ErrPasswordResetFailed = errors.New("password reset failed")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists 用户名或邮箱已被占用
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrNotFound 资源不存在或不属于当前用户
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument 参数不合法
	ErrInvalidArgument = errors.New("invalid argument")
)

// errTargetNotFound 定位目标失败，对外统一为 ErrInvalidToken
var errTargetNotFound = errors.New("target not found")

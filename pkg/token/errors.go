package token

import "errors"

var (
	ErrMalformed         = errors.New("token: malformed token")
	ErrAlgorithmMismatch = errors.New("token: algorithm mismatch")
	ErrBadSignature      = errors.New("token: bad signature")
	ErrIssuerMismatch    = errors.New("token: issuer mismatch")
	ErrExpired           = errors.New("token: expired")
	ErrNotYetValid       = errors.New("token: not yet valid")

	// ErrInvalidTiming 签发时间参数不满足 exp >= iat
	ErrInvalidTiming = errors.New("token: expires before issued")
	// ErrEmptySecret 未配置签名密钥
	ErrEmptySecret = errors.New("token: empty secret")
)

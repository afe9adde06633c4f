package token

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Option Codec 可选配置
type Option func(*Codec)

// WithClock 替换当前时间来源（测试使用）
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// WithPolicy 覆盖用途的默认策略
func WithPolicy(policy Policy) Option {
	return func(c *Codec) {
		c.policy = policy
	}
}

// Codec 按用途参数化的令牌编解码器
type Codec struct {
	purpose Purpose
	policy  Policy
	parser  *jwt.Parser
	now     func() time.Time
}

// NewCodec 创建用途对应的编解码器
func NewCodec(purpose Purpose, opts ...Option) *Codec {
	c := &Codec{
		purpose: purpose,
		policy:  purpose.Policy(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{c.policy.Algorithm.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	return c
}

// Purpose 返回编解码器的用途
func (c *Codec) Purpose() Purpose {
	return c.purpose
}

// Policy 返回编解码器使用的策略
func (c *Codec) Policy() Policy {
	return c.policy
}

// Encode 签发令牌
func (c *Codec) Encode(subject, issuer, keyID, secret string, issuedAt, expiresAt time.Time) (*Value, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if expiresAt.Before(issuedAt) {
		return nil, ErrInvalidTiming
	}

	t := jwt.NewWithClaims(c.policy.Algorithm, newClaims(subject, issuer, issuedAt, expiresAt))
	t.Header["kid"] = keyID

	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	return &Value{
		Token:     signed,
		GrantedAt: issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Decode 解码并校验令牌
func (c *Codec) Decode(tokenString, issuer, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	// 先比对声明的算法，再验证签名
	alg, err := c.declaredAlgorithm(tokenString)
	if err != nil {
		return nil, err
	}
	if alg != c.policy.Algorithm.Alg() {
		return nil, ErrAlgorithmMismatch
	}

	claims := &Claims{}
	_, err = c.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		default:
			return nil, ErrBadSignature
		}
	}

	if err := claims.validate(issuer, c.policy, c.now()); err != nil {
		return nil, err
	}

	return claims, nil
}

// declaredAlgorithm 读取未验证头部中声明的算法
func (c *Codec) declaredAlgorithm(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return "", ErrMalformed
	}

	raw, err := c.parser.DecodeSegment(parts[0])
	if err != nil {
		return "", ErrMalformed
	}

	var header struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return "", ErrMalformed
	}

	return header.Alg, nil
}

package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims 解码并校验后的令牌载荷
type Claims struct {
	jwt.RegisteredClaims
}

// Subject 返回令牌主体
func Subject(c *Claims) string {
	if c == nil {
		return ""
	}
	return c.RegisteredClaims.Subject
}

// Value 对外可见的签名令牌及其时间元数据
type Value struct {
	Token     string    `json:"token"`
	GrantedAt time.Time `json:"granted_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newClaims(subject, issuer string, issuedAt, expiresAt time.Time) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
}

// validate 按固定顺序校验签发者、过期时间与生效时间
func (c *Claims) validate(issuer string, policy Policy, now time.Time) error {
	if c.Issuer != issuer {
		return ErrIssuerMismatch
	}

	if policy.EnforceExpiry {
		if c.ExpiresAt == nil || now.After(c.ExpiresAt.Add(policy.Leeway)) {
			return ErrExpired
		}
	}

	if policy.EnforceNotBefore && c.NotBefore != nil {
		if now.Add(policy.Leeway).Before(c.NotBefore.Time) {
			return ErrNotYetValid
		}
	}

	return nil
}

package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Leeway 所有用途共用的时钟偏差容忍度
const Leeway = 36 * time.Second

// Purpose 凭证用途
type Purpose int

const (
	Activation Purpose = iota + 1
	Authentication
	Authorization
	Verification
)

// String 返回用途名称
func (p Purpose) String() string {
	switch p {
	case Activation:
		return "activation"
	case Authentication:
		return "authentication"
	case Authorization:
		return "authorization"
	case Verification:
		return "verification"
	default:
		return "unknown"
	}
}

// Policy 某一用途固定的签名算法与校验策略
type Policy struct {
	Algorithm        *jwt.SigningMethodHMAC
	Leeway           time.Duration
	EnforceExpiry    bool
	EnforceNotBefore bool
}

// Policy 返回用途对应的策略
//
// 激活类凭证生命周期长，使用 HS512；其余使用 HS256。
// 访问令牌（Authorization）不校验过期时间，吊销由持久化状态负责。
func (p Purpose) Policy() Policy {
	switch p {
	case Activation:
		return Policy{Algorithm: jwt.SigningMethodHS512, Leeway: Leeway, EnforceExpiry: true, EnforceNotBefore: true}
	case Authorization:
		return Policy{Algorithm: jwt.SigningMethodHS256, Leeway: Leeway, EnforceExpiry: false, EnforceNotBefore: true}
	default:
		return Policy{Algorithm: jwt.SigningMethodHS256, Leeway: Leeway, EnforceExpiry: true, EnforceNotBefore: true}
	}
}

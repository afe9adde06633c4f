package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"eloquentlog/internal/session"
	"eloquentlog/pkg/token"
)

const (
	// BearerSchema Bearer认证方案
	BearerSchema = "Bearer "
	// HeaderAuthToken 代理请求携带访问令牌的请求头
	HeaderAuthToken = "X-Eloquentlog-Auth-Token"
	// HeaderRequestedWith 控制台请求必须携带的请求头
	HeaderRequestedWith = "X-Requested-With"
	// XMLHttpRequest HeaderRequestedWith 的唯一合法值
	XMLHttpRequest = "XMLHttpRequest"
)

// 凭证校验的拒绝原因
var (
	ErrMissing  = errors.New("credential: missing")
	ErrBadCount = errors.New("credential: multiple values")
	ErrInvalid  = errors.New("credential: invalid")
	ErrUnknown  = errors.New("credential: unknown session")
	ErrExpired  = errors.New("credential: expired")
)

// StatusOf 拒绝原因对应的HTTP状态码
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrUnknown), errors.Is(err, ErrExpired):
		return http.StatusNotFound
	case errors.Is(err, ErrMissing), errors.Is(err, ErrBadCount), errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Result 通过校验的凭证
type Result struct {
	Credential string
	Subject    string
	Claims     *token.Claims
	SessionKey string // 仅会话存储变体
}

// Verifier 请求凭证校验器，只读取请求与会话存储，不做任何写入
type Verifier interface {
	Verify(r *http.Request) (*Result, error)
}

// HeaderVerifier 完整凭证放在单个请求头中
type HeaderVerifier struct {
	header string
	signer *token.Signer
}

// NewHeaderVerifier 创建请求头校验器
func NewHeaderVerifier(header string, signer *token.Signer) *HeaderVerifier {
	return &HeaderVerifier{header: header, signer: signer}
}

// Verify 校验请求
func (v *HeaderVerifier) Verify(r *http.Request) (result *Result, err error) {
	defer func() { observe("header", err) }()

	values := r.Header.Values(v.header)
	switch {
	case len(values) == 0:
		return nil, ErrMissing
	case len(values) > 1:
		return nil, ErrBadCount
	}

	credential := values[0]
	if !strings.Contains(credential, ".") {
		return nil, ErrInvalid
	}

	claims, err := v.signer.Verify(credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &Result{Credential: credential, Subject: token.Subject(claims), Claims: claims}, nil
}

// SignatureSource 提供凭证的签名部分
type SignatureSource interface {
	// Signature 返回签名部分，key 为会话存储中的键（没有则为空）
	Signature(r *http.Request) (signature, key string, err error)
}

// cookieSource 从Cookie读取签名，缺失时为空
type cookieSource struct {
	name string
}

func (s cookieSource) Signature(r *http.Request) (string, string, error) {
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return "", "", nil
	}
	return cookie.Value, "", nil
}

// sessionSource 从会话存储读取签名，键由请求路径推导
type sessionSource struct {
	store session.Store
}

func (s sessionSource) Signature(r *http.Request) (string, string, error) {
	key := session.KeyFromPath(r.URL.Path)
	if key == "" {
		return "", "", ErrUnknown
	}

	signature, err := s.store.Get(r.Context(), key)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUnknown, err)
	}
	return signature, key, nil
}

// BearerVerifier Authorization 头携带 header.payload，签名部分另行获取
type BearerVerifier struct {
	variant       string
	signer        *token.Signer
	source        SignatureSource
	decodeFailure error
}

// NewAuthenticationVerifier 签名部分来自 sign Cookie
func NewAuthenticationVerifier(signer *token.Signer) *BearerVerifier {
	return &BearerVerifier{
		variant:       "authentication",
		signer:        signer,
		source:        cookieSource{name: token.SignatureCookieName},
		decodeFailure: ErrInvalid,
	}
}

// NewVerificationVerifier 签名部分来自会话存储
func NewVerificationVerifier(signer *token.Signer, store session.Store) *BearerVerifier {
	return &BearerVerifier{
		variant:       "verification",
		signer:        signer,
		source:        sessionSource{store: store},
		decodeFailure: ErrExpired,
	}
}

// Verify 校验请求
func (v *BearerVerifier) Verify(r *http.Request) (result *Result, err error) {
	defer func() { observe(v.variant, err) }()

	if r.Header.Get(HeaderRequestedWith) != XMLHttpRequest {
		return nil, ErrInvalid
	}

	values := r.Header.Values("Authorization")
	switch {
	case len(values) == 0:
		return nil, ErrMissing
	case len(values) > 1:
		return nil, ErrBadCount
	}

	if !strings.HasPrefix(values[0], BearerSchema) {
		return nil, ErrInvalid
	}
	payload := strings.TrimPrefix(values[0], BearerSchema)
	if !strings.Contains(payload, ".") {
		return nil, ErrInvalid
	}

	signature, key, err := v.source.Signature(r)
	if err != nil {
		return nil, err
	}
	if signature == "" {
		return nil, ErrInvalid
	}

	credential := token.Compose(payload, signature)
	claims, err := v.signer.Verify(credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", v.decodeFailure, err)
	}
	return &Result{
		Credential: credential,
		Subject:    token.Subject(claims),
		Claims:     claims,
		SessionKey: key,
	}, nil
}

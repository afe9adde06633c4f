package token

import (
	"net/http"
	"strings"
)

// SignatureCookieName 保存签名片段的会话 Cookie 名称
const SignatureCookieName = "sign"

// Split 将凭证拆分为载荷部分（header.payload）与签名部分
//
// 仅接受恰好三段的凭证，其他情况返回 ok=false。
func Split(credential string) (payload, signature string, ok bool) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return "", "", false
	}
	return parts[0] + "." + parts[1], parts[2], true
}

// Compose 由载荷部分与签名部分重建凭证
func Compose(payload, signature string) string {
	return payload + "." + signature
}

// SignatureCookie 创建承载签名部分的会话 Cookie（无过期时间，随浏览器会话结束）
func SignatureCookie(signature, domain string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SignatureCookieName,
		Value:    signature,
		Path:     "/",
		Domain:   domain,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredSignatureCookie 创建用于清除签名 Cookie 的响应 Cookie
func ExpiredSignatureCookie(domain string, secure bool) *http.Cookie {
	cookie := SignatureCookie("", domain, secure)
	cookie.MaxAge = -1
	return cookie
}

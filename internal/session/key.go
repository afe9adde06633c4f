package session

import (
	"fmt"
	"strings"
)

// MountPrefix 控制台路由的挂载前缀
const MountPrefix = "/_"

const (
	// PasswordResetPrefix 密码重置会话前缀
	PasswordResetPrefix = "pr"
	// UserActivationPrefix 用户激活会话前缀
	UserActivationPrefix = "ua"
)

// Key 组合会话存储键
func Key(prefix, sessionID string) string {
	if sessionID == "" {
		return ""
	}
	return fmt.Sprintf("%s-%s", prefix, sessionID)
}

// KeyFromPath 由请求路径推导会话存储键
//
// password/reset/<id> 取第 3 段，activate/<id> 取第 2 段；无法推导时返回空字符串。
func KeyFromPath(path string) string {
	segments := Segments(path)
	if len(segments) == 0 {
		return ""
	}

	switch {
	case strings.HasPrefix(segments[0], "password"):
		if len(segments) > 2 {
			return Key(PasswordResetPrefix, segments[2])
		}
	case strings.HasPrefix(segments[0], "activate"):
		if len(segments) > 1 {
			return Key(UserActivationPrefix, segments[1])
		}
	}
	return ""
}

// Segments 返回去除挂载前缀后的非空路径段
func Segments(path string) []string {
	if path == MountPrefix || strings.HasPrefix(path, MountPrefix+"/") {
		path = strings.TrimPrefix(path, MountPrefix)
	}

	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

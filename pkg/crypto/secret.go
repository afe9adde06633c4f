package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// MinSecretBytes HMAC密钥的最小长度
const MinSecretBytes = 32

// GenerateSecret 生成随机HMAC密钥，使用无填充的base64url编码
func GenerateSecret(size int) (string, error) {
	if size < MinSecretBytes {
		return "", fmt.Errorf("secret must be at least %d bytes, got %d", MinSecretBytes, size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

package token

import "time"

// Settings 某一用途的签发配置，启动时加载后不再修改
type Settings struct {
	Issuer string
	Secret string
	KeyID  string
	TTL    time.Duration
}

// Signer 绑定了签发配置的编解码器
type Signer struct {
	codec    *Codec
	settings Settings
}

// NewSigner 创建签发器
func NewSigner(purpose Purpose, settings Settings, opts ...Option) *Signer {
	return &Signer{
		codec:    NewCodec(purpose, opts...),
		settings: settings,
	}
}

// Purpose 返回签发器用途
func (s *Signer) Purpose() Purpose {
	return s.codec.Purpose()
}

// TTL 返回令牌有效期
func (s *Signer) TTL() time.Duration {
	return s.settings.TTL
}

// Sign 为主体签发令牌，有效期为配置的 TTL
func (s *Signer) Sign(subject string) (*Value, error) {
	now := s.codec.now().Truncate(time.Second)
	return s.codec.Encode(subject, s.settings.Issuer, s.settings.KeyID, s.settings.Secret, now, now.Add(s.settings.TTL))
}

// Verify 使用配置的签发者与密钥解码令牌
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	return s.codec.Decode(tokenString, s.settings.Issuer, s.settings.Secret)
}

// Signers 四种用途的签发器集合
type Signers struct {
	Activation     *Signer
	Authentication *Signer
	Authorization  *Signer
	Verification   *Signer
}

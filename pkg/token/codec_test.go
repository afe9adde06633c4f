package token_test

import (
	"strings"
	"testing"
	"time"

	"eloquentlog/pkg/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "eloquentlog-console"
	testSecret = "0123456789abcdef0123456789abcdef"
	testKeyID  = "key-1"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func clock() time.Time { return fixedNow }

func newCodec(p token.Purpose) *token.Codec {
	return token.NewCodec(p, token.WithClock(clock))
}

func TestCodecRoundTrip(t *testing.T) {
	purposes := []token.Purpose{token.Activation, token.Authentication, token.Authorization, token.Verification}
	subjects := []string{"foo@example.org", "6b4f8a53-2c1e-4d55-9b8e-0a1f3c2d4e5f", "ユーザー", ""}

	for _, p := range purposes {
		for _, subject := range subjects {
			t.Run(p.String()+"/"+subject, func(t *testing.T) {
				c := newCodec(p)

				v, err := c.Encode(subject, testIssuer, testKeyID, testSecret, fixedNow, fixedNow.Add(time.Hour))
				require.NoError(t, err)
				assert.Equal(t, fixedNow, v.GrantedAt)
				assert.Equal(t, fixedNow.Add(time.Hour), v.ExpiresAt)
				assert.Len(t, strings.Split(v.Token, "."), 3)

				claims, err := c.Decode(v.Token, testIssuer, testSecret)
				require.NoError(t, err)
				assert.Equal(t, subject, token.Subject(claims))
				assert.Equal(t, testIssuer, claims.Issuer)
				assert.Equal(t, fixedNow.Unix(), claims.IssuedAt.Unix())
				assert.Equal(t, fixedNow.Unix(), claims.NotBefore.Unix())
				assert.Equal(t, fixedNow.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
			})
		}
	}
}

func TestCodecHeader(t *testing.T) {
	v, err := newCodec(token.Activation).Encode("foo@example.org", testIssuer, testKeyID, testSecret, fixedNow, fixedNow.Add(time.Hour))
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(v.Token, &jwt.RegisteredClaims{})
	require.NoError(t, err)
	assert.Equal(t, "HS512", parsed.Header["alg"])
	assert.Equal(t, testKeyID, parsed.Header["kid"])

	v, err = newCodec(token.Authentication).Encode("foo", testIssuer, testKeyID, testSecret, fixedNow, fixedNow.Add(time.Hour))
	require.NoError(t, err)
	parsed, _, err = jwt.NewParser().ParseUnverified(v.Token, &jwt.RegisteredClaims{})
	require.NoError(t, err)
	assert.Equal(t, "HS256", parsed.Header["alg"])
}

func signWith(t *testing.T, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "foo@example.org",
		Issuer:    testIssuer,
		IssuedAt:  jwt.NewNumericDate(fixedNow),
		NotBefore: jwt.NewNumericDate(fixedNow),
		ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestCodecAlgorithmPinning(t *testing.T) {
	tests := []struct {
		name    string
		purpose token.Purpose
		token   string
	}{
		{"hs512 for authentication", token.Authentication, signWith(t, jwt.SigningMethodHS512, []byte(testSecret))},
		{"hs384 for verification", token.Verification, signWith(t, jwt.SigningMethodHS384, []byte(testSecret))},
		{"hs256 for activation", token.Activation, signWith(t, jwt.SigningMethodHS256, []byte(testSecret))},
		{"none for authorization", token.Authorization, signWith(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newCodec(tt.purpose).Decode(tt.token, testIssuer, testSecret)
			require.ErrorIs(t, err, token.ErrAlgorithmMismatch)
		})
	}
}

func TestCodecBadSignature(t *testing.T) {
	c := newCodec(token.Authentication)
	v, err := c.Encode("foo", testIssuer, testKeyID, testSecret, fixedNow, fixedNow.Add(time.Hour))
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := c.Decode(v.Token, testIssuer, "another-secret")
		require.ErrorIs(t, err, token.ErrBadSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		other, err := c.Encode("bar", testIssuer, testKeyID, testSecret, fixedNow, fixedNow.Add(time.Hour))
		require.NoError(t, err)

		parts := strings.Split(v.Token, ".")
		forged := strings.Split(other.Token, ".")
		_, err = c.Decode(parts[0]+"."+forged[1]+"."+parts[2], testIssuer, testSecret)
		require.ErrorIs(t, err, token.ErrBadSignature)
	})

	t.Run("signature checked before issuer", func(t *testing.T) {
		_, err := c.Decode(v.Token, "someone-else", "another-secret")
		require.ErrorIs(t, err, token.ErrBadSignature)
	})
}

func TestCodecIssuerMismatch(t *testing.T) {
	c := newCodec(token.Verification)
	v, err := c.Encode("foo", testIssuer, testKeyID, testSecret, fixedNow, fixedNow.Add(time.Hour))
	require.NoError(t, err)

	for _, issuer := range []string{"", "Eloquentlog-Console", "ELOQUENTLOG-CONSOLE", testIssuer + " ", " " + testIssuer, "eloquentlog"} {
		t.Run(issuer, func(t *testing.T) {
			_, err := c.Decode(v.Token, issuer, testSecret)
			require.ErrorIs(t, err, token.ErrIssuerMismatch)
		})
	}
}

func TestCodecExpiry(t *testing.T) {
	c := newCodec(token.Authentication)

	encodeExpiringAt := func(exp time.Time) string {
		v, err := c.Encode("foo", testIssuer, testKeyID, testSecret, exp.Add(-time.Hour), exp)
		require.NoError(t, err)
		return v.Token
	}

	t.Run("boundary is inclusive", func(t *testing.T) {
		_, err := c.Decode(encodeExpiringAt(fixedNow.Add(-token.Leeway)), testIssuer, testSecret)
		require.NoError(t, err)
	})

	t.Run("past leeway", func(t *testing.T) {
		_, err := c.Decode(encodeExpiringAt(fixedNow.Add(-token.Leeway-time.Second)), testIssuer, testSecret)
		require.ErrorIs(t, err, token.ErrExpired)
	})

	t.Run("issuer checked before expiry", func(t *testing.T) {
		_, err := c.Decode(encodeExpiringAt(fixedNow.Add(-time.Hour)), "someone-else", testSecret)
		require.ErrorIs(t, err, token.ErrIssuerMismatch)
	})

	t.Run("authorization ignores expiry", func(t *testing.T) {
		a := newCodec(token.Authorization)
		v, err := a.Encode("foo", testIssuer, testKeyID, testSecret, fixedNow.Add(-48*time.Hour), fixedNow.Add(-24*time.Hour))
		require.NoError(t, err)

		_, err = a.Decode(v.Token, testIssuer, testSecret)
		require.NoError(t, err)
	})
}

func TestCodecNotBefore(t *testing.T) {
	c := newCodec(token.Activation)

	encodeValidFrom := func(nbf time.Time) string {
		v, err := c.Encode("foo", testIssuer, testKeyID, testSecret, nbf, nbf.Add(time.Hour))
		require.NoError(t, err)
		return v.Token
	}

	t.Run("boundary is inclusive", func(t *testing.T) {
		_, err := c.Decode(encodeValidFrom(fixedNow.Add(token.Leeway)), testIssuer, testSecret)
		require.NoError(t, err)
	})

	t.Run("beyond leeway", func(t *testing.T) {
		_, err := c.Decode(encodeValidFrom(fixedNow.Add(token.Leeway+time.Second)), testIssuer, testSecret)
		require.ErrorIs(t, err, token.ErrNotYetValid)
	})
}

func TestCodecMalformed(t *testing.T) {
	c := newCodec(token.Authentication)

	for _, s := range []string{"", "abc", "abc.def", "a.b.c.d", "!!!.def.ghi", "e30.!!!.ghi"} {
		t.Run(s, func(t *testing.T) {
			_, err := c.Decode(s, testIssuer, testSecret)
			require.Error(t, err)
			assert.NotErrorIs(t, err, token.ErrExpired)
		})
	}

	_, err := c.Decode("abc.def", testIssuer, testSecret)
	require.ErrorIs(t, err, token.ErrMalformed)
}

func TestCodecEncodeRejectsInvalidInput(t *testing.T) {
	c := newCodec(token.Authentication)

	_, err := c.Encode("foo", testIssuer, testKeyID, testSecret, fixedNow, fixedNow.Add(-time.Second))
	require.ErrorIs(t, err, token.ErrInvalidTiming)

	_, err = c.Encode("foo", testIssuer, testKeyID, "", fixedNow, fixedNow.Add(time.Hour))
	require.ErrorIs(t, err, token.ErrEmptySecret)
}

func TestSigner(t *testing.T) {
	s := token.NewSigner(token.Verification, token.Settings{
		Issuer: testIssuer,
		Secret: testSecret,
		KeyID:  testKeyID,
		TTL:    time.Hour,
	}, token.WithClock(clock))

	v, err := s.Sign("foo@example.org")
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(time.Hour), v.ExpiresAt)

	claims, err := s.Verify(v.Token)
	require.NoError(t, err)
	assert.Equal(t, "foo@example.org", token.Subject(claims))
	assert.Equal(t, token.Verification, s.Purpose())
}

package token_test

import (
	"net/http"
	"testing"
	"time"

	"eloquentlog/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCompose(t *testing.T) {
	v, err := newCodec(token.Authentication).Encode("foo", testIssuer, testKeyID, testSecret, fixedNow, fixedNow.Add(time.Hour))
	require.NoError(t, err)

	payload, signature, ok := token.Split(v.Token)
	require.True(t, ok)
	assert.NotContains(t, signature, ".")
	assert.Equal(t, v.Token, token.Compose(payload, signature))

	payload, signature, ok = token.Split("abc.def.ghi")
	require.True(t, ok)
	assert.Equal(t, "abc.def", payload)
	assert.Equal(t, "ghi", signature)
}

func TestSplitRejectsOtherSegmentCounts(t *testing.T) {
	for _, s := range []string{"", "abc", "abc.def", "a.b.c.d", "a.b.c.d.e"} {
		t.Run(s, func(t *testing.T) {
			_, _, ok := token.Split(s)
			assert.False(t, ok)
		})
	}
}

func TestSignatureCookie(t *testing.T) {
	c := token.SignatureCookie("ghi", "example.org", true)

	assert.Equal(t, "sign", c.Name)
	assert.Equal(t, "ghi", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, "example.org", c.Domain)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Zero(t, c.MaxAge)
	assert.True(t, c.Expires.IsZero())

	expired := token.ExpiredSignatureCookie("example.org", false)
	assert.Less(t, expired.MaxAge, 0)
	assert.False(t, expired.Secure)
}

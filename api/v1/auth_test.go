package v1

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eloquentlog/internal/model"
	"eloquentlog/internal/service"
	"eloquentlog/pkg/middleware"
	"eloquentlog/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAccounts struct {
	credential string
	sessionKey string
	err        error
}

func (s *stubAccounts) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.User{ID: "user-1", Username: req.Username}, nil
}

func (s *stubAccounts) Activate(ctx context.Context, credential, sessionKey string) error {
	s.credential = credential
	s.sessionKey = sessionKey
	return s.err
}

type stubPasswords struct {
	requested string
	err       error
}

func (s *stubPasswords) RequestReset(ctx context.Context, email string) error {
	s.requested = email
	return s.err
}

func (s *stubPasswords) CheckReset(ctx context.Context, credential string) error {
	return s.err
}

func (s *stubPasswords) Reset(ctx context.Context, credential, sessionKey, newPassword string) error {
	return s.err
}

type stubAuth struct {
	value *token.Value
	err   error
}

func (s *stubAuth) Login(ctx context.Context, req *model.LoginRequest) (*token.Value, error) {
	return s.value, s.err
}

func (s *stubAuth) Authenticate(ctx context.Context, subject string) (*model.User, error) {
	return nil, errors.New("not used")
}

// verified 模拟已通过校验的链接凭证
func verified(c *gin.Context) {
	c.Set(middleware.ContextKeyVerification, &middleware.Result{
		Credential: "h.p.s",
		Subject:    "foo@example.org",
		SessionKey: "ua-1",
	})
	c.Next()
}

func newAuthEngine(accounts *stubAccounts, passwords *stubPasswords, auth *stubAuth) *gin.Engine {
	engine := gin.New()
	handler := NewAuthHandler(accounts, passwords, auth, CookieConfig{Domain: "example.org", Secure: true})
	handler.Register(engine.Group("/_"), verified)
	return engine
}

func serve(engine *gin.Engine, method, path, body string, xhr bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if xhr {
		req.Header.Set(middleware.HeaderRequestedWith, middleware.XMLHttpRequest)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestLoginSplitsCredential(t *testing.T) {
	auth := &stubAuth{value: &token.Value{Token: "head.body.sig", ExpiresAt: time.Now().Add(time.Hour)}}
	engine := newAuthEngine(&stubAccounts{}, &stubPasswords{}, auth)

	w := serve(engine, http.MethodPost, "/_/login", `{"username":"foo","password":"secret-password"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"head.body"`)
	assert.NotContains(t, w.Body.String(), "sig")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, token.SignatureCookieName, cookies[0].Name)
	assert.Equal(t, "sig", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}

func TestLoginRequiresXHR(t *testing.T) {
	engine := newAuthEngine(&stubAccounts{}, &stubPasswords{}, &stubAuth{})

	w := serve(engine, http.MethodPost, "/_/login", `{"username":"foo","password":"secret-password"}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	engine := newAuthEngine(&stubAccounts{}, &stubPasswords{}, &stubAuth{err: service.ErrInvalidCredentials})

	w := serve(engine, http.MethodPost, "/_/login", `{"username":"foo","password":"wrong-password"}`, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestActivate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"activated", nil, http.StatusOK},
		{"unknown link", service.ErrInvalidToken, http.StatusNotFound},
		{"already used", service.ErrActivationFailed, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &stubAccounts{err: tt.err}
			engine := newAuthEngine(accounts, &stubPasswords{}, &stubAuth{})

			w := serve(engine, http.MethodPatch, "/_/activate/1", "", true)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, "h.p.s", accounts.credential)
			assert.Equal(t, "ua-1", accounts.sessionKey)
		})
	}
}

func TestRequestPasswordResetHidesFailures(t *testing.T) {
	passwords := &stubPasswords{err: errors.New("smtp down")}
	engine := newAuthEngine(&stubAccounts{}, passwords, &stubAuth{})

	w := serve(engine, http.MethodPut, "/_/password/reset", `{"email":"foo@example.org"}`, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "foo@example.org", passwords.requested)
}

func TestSignUpConflict(t *testing.T) {
	engine := newAuthEngine(&stubAccounts{err: service.ErrUserAlreadyExists}, &stubPasswords{}, &stubAuth{})

	w := serve(engine, http.MethodPost, "/_/register",
		`{"username":"foo","email":"foo@example.org","password":"secret-password"}`, false)
	assert.Equal(t, http.StatusConflict, w.Code)
}

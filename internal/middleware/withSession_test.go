package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/dodomains/dodomains/internal/app/service"
	"github.com/dodomains/dodomains/internal/mocks"
)

func TestInjectSessionID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	newReq := InjectSessionID(req, "abc123")

	assert.Equal(t, "abc123", SessionIDFromContext(newReq.Context()))
	assert.Equal(t, "", SessionIDFromContext(req.Context()))
}

func TestWithSession(t *testing.T) {
	t.Run("no token cookie - start new session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockAuth := mocks.NewMockAuthIface(ctrl)

		mockAuth.EXPECT().BuildJWTString().Return("mock-token", "generated-id", nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		var got string
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = SessionIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		WithSession(mockAuth, zap.NewNop())(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "generated-id", got)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, service.CookieName, cookies[0].Name)
		assert.Equal(t, "mock-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("valid token cookie - reuse session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockAuth := mocks.NewMockAuthIface(ctrl)
		cookie := &http.Cookie{Name: service.CookieName, Value: "valid-token"}

		mockAuth.EXPECT().ParseClaims(gomock.Any()).Return(&service.Claims{SessionID: "existing-id"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()

		var got string
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = SessionIDFromContext(r.Context())
		})

		WithSession(mockAuth, zap.NewNop())(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "existing-id", got)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("invalid token - start new session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockAuth := mocks.NewMockAuthIface(ctrl)

		gomock.InOrder(
			mockAuth.EXPECT().ParseClaims(gomock.Any()).Return(nil, errors.New("invalid token")),
			mockAuth.EXPECT().BuildJWTString().Return("fresh-token", "fresh-id", nil),
		)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: service.CookieName, Value: "bad-token"})
		rec := httptest.NewRecorder()

		var got string
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = SessionIDFromContext(r.Context())
		})

		WithSession(mockAuth, zap.NewNop())(handler).ServeHTTP(rec, req)

		assert.Equal(t, "fresh-id", got)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "fresh-token", cookies[0].Value)
	})

	t.Run("token generation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockAuth := mocks.NewMockAuthIface(ctrl)

		mockAuth.EXPECT().BuildJWTString().Return("", "", errors.New("fail"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called on error")
		})

		WithSession(mockAuth, zap.NewNop())(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/dodomains/dodomains/internal/app/service"
	"github.com/dodomains/dodomains/internal/storage"
)

const testSecret = "test-secret"

func TestBuildJWTString(t *testing.T) {
	store, err := storage.CreateMemoryStorage()
	require.NoError(t, err)

	auth := service.NewAuth(store, testSecret)

	tokenStr, sessionID, err := auth.BuildJWTString()
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	require.NotEmpty(t, sessionID)
	require.False(t, store.Exists(context.Background(), sessionID))

	token, err := jwt.ParseWithClaims(tokenStr, &service.Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*service.Claims)
	require.True(t, ok)
	require.Equal(t, sessionID, claims.SessionID)
	require.WithinDuration(t, time.Now().Add(service.TokenExp), claims.ExpiresAt.Time, time.Minute)
}

func TestBuildJWTString_UniqueIDs(t *testing.T) {
	auth := service.NewAuth(nil, testSecret)
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		_, id, err := auth.BuildJWTString()
		require.NoError(t, err)
		require.False(t, seen[id])
		seen[id] = true
	}
}

func sign(t *testing.T, claims service.Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestParseClaims(t *testing.T) {
	auth := service.NewAuth(nil, testSecret)

	t.Run("valid token", func(t *testing.T) {
		signed := sign(t, service.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(service.TokenExp)),
			},
			SessionID: "test-session-id",
		}, testSecret)

		claims, err := auth.ParseClaims(&http.Cookie{Name: service.CookieName, Value: signed})
		require.NoError(t, err)
		require.Equal(t, "test-session-id", claims.SessionID)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := auth.ParseClaims(&http.Cookie{Name: service.CookieName, Value: "invalid.token.here"})
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		signed := sign(t, service.Claims{SessionID: "x"}, "another-secret")

		_, err := auth.ParseClaims(&http.Cookie{Name: service.CookieName, Value: signed})
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		signed := sign(t, service.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
			SessionID: "old",
		}, testSecret)

		_, err := auth.ParseRawJWT(signed)
		require.Error(t, err)
	})

	t.Run("missing session id", func(t *testing.T) {
		signed := sign(t, service.Claims{}, testSecret)

		_, err := auth.ParseRawJWT(signed)
		require.ErrorIs(t, err, service.ErrInvalidToken)
	})
}

package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestExpiresSoon(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.True(t, expiresSoon(signedToken(t, now.Add(10*time.Second)), now))
	assert.True(t, expiresSoon(signedToken(t, now.Add(-time.Minute)), now))
	assert.False(t, expiresSoon(signedToken(t, now.Add(time.Hour)), now))

	// opaque tokens are assumed long-lived
	assert.False(t, expiresSoon("not-a-jwt", now))
}

func TestToken_ProactiveRefresh(t *testing.T) {
	var refreshes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		_, _ = w.Write([]byte(`{"access_token":"fresh","refresh_token":"r2"}`))
	}))
	t.Cleanup(srv.Close)

	ts := NewTokenSource(srv.URL, signedToken(t, time.Now().Add(5*time.Second)), "r1")

	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	assert.Equal(t, int32(1), refreshes.Load())

	// "fresh" is opaque, no second refresh
	tok, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	assert.Equal(t, int32(1), refreshes.Load())
}

func TestToken_NoRefreshNeededForLongLivedJWT(t *testing.T) {
	ts := NewTokenSource("http://unused.invalid", signedToken(t, time.Now().Add(time.Hour)), "r1")
	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
}

func TestForceRefresh_WithoutRefreshToken(t *testing.T) {
	ts := NewTokenSource("http://unused.invalid", "static", "")
	require.ErrorIs(t, ts.ForceRefresh(context.Background()), ErrNoRefreshToken)
}

func TestForceRefresh_ServerRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	ts := NewTokenSource(srv.URL, "stale", "r1")
	require.ErrorIs(t, ts.ForceRefresh(context.Background()), ErrUnauthorized)
}

func TestForceRefresh_KeepsOldRefreshTokenWhenOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"fresh"}`))
	}))
	t.Cleanup(srv.Close)

	ts := NewTokenSource(srv.URL, "stale", "r1")
	require.NoError(t, ts.ForceRefresh(context.Background()))
	assert.Equal(t, "r1", ts.refresh)
	assert.Equal(t, "fresh", ts.access)
}

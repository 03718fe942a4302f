package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshLeeway is how close to expiry an access token may get before the
// source refreshes it proactively instead of waiting for a 401.
const refreshLeeway = 30 * time.Second

// ErrNoRefreshToken is returned when a refresh is required but the source
// was constructed without refresh credentials.
var ErrNoRefreshToken = errors.New("no refresh token available")

// TokenSource hands out a valid access token for remote store calls.
//
// Tokens are issued by the host application's session layer; the source only
// keeps them fresh. It inspects the JWT exp claim (without verifying the
// signature — verification is the server's job) and exchanges the refresh
// token at refreshURL when the access token is about to lapse.
//
// Safe for concurrent use.
type TokenSource struct {
	mu         sync.Mutex
	refreshURL string
	access     string
	refresh    string
	client     *http.Client
	now        func() time.Time
}

func NewTokenSource(refreshURL, accessToken, refreshToken string) *TokenSource {
	return &TokenSource{
		refreshURL: refreshURL,
		access:     accessToken,
		refresh:    refreshToken,
		client:     &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// Token returns the current access token, refreshing it first when its exp
// claim is within refreshLeeway. Opaque (non-JWT) tokens are returned as-is.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.refresh != "" && expiresSoon(t.access, t.now()) {
		if err := t.refreshLocked(ctx); err != nil {
			return "", err
		}
	}
	return t.access, nil
}

// ForceRefresh exchanges the refresh token regardless of the access token's
// remaining lifetime. Used after the server answers 401.
func (t *TokenSource) ForceRefresh(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refreshLocked(ctx)
}

func (t *TokenSource) refreshLocked(ctx context.Context) error {
	if t.refresh == "" || t.refreshURL == "" {
		return ErrNoRefreshToken
	}

	body, err := json.Marshal(map[string]string{"refresh_token": t.refresh})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: refresh failed: %s: %s", ErrUnauthorized, resp.Status, string(b))
	}

	var out struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decoding refresh response: %w", err)
	}

	t.access = out.AccessToken
	if out.RefreshToken != "" {
		t.refresh = out.RefreshToken
	}
	return nil
}

// expiresSoon reports whether token is a JWT whose exp claim falls within
// refreshLeeway of now. Tokens without a parseable exp claim are assumed
// long-lived.
func expiresSoon(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return now.Add(refreshLeeway).After(claims.ExpiresAt.Time)
}

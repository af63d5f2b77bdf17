package amadeus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Tokens are considered expired this long before the provider says so,
// so a token handed out near the end of its life still survives the
// request it authorizes.
const tokenExpiryMargin = 60 * time.Second

// TokenManager owns the bearer credential for the provider. It caches
// the token and refreshes it on expiry. Concurrent callers serialize
// on the mutex, so at most one client-credentials exchange is in
// flight at a time; everyone else waits for its result.
type TokenManager struct {
	httpClient   *http.Client
	tokenURL     string
	clientID     string
	clientSecret string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewTokenManager(httpClient *http.Client, baseURL, clientID, clientSecret string) *TokenManager {
	return &TokenManager{
		httpClient:   httpClient,
		tokenURL:     baseURL + "/v1/security/oauth2/token",
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

// Token returns the cached bearer token, refreshing it first when it
// is missing or within the expiry margin. A failed refresh returns an
// *AuthError and leaves the cached token untouched.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && m.now().Before(m.expiresAt) {
		return m.token, nil
	}

	token, expiresIn, err := m.exchange(ctx)
	if err != nil {
		return "", err
	}

	m.token = token
	m.expiresAt = m.now().Add(time.Duration(expiresIn)*time.Second - tokenExpiryMargin)
	return m.token, nil
}

func (m *TokenManager) exchange(ctx context.Context) (string, int, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, &AuthError{Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", 0, &AuthError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", 0, &AuthError{Status: resp.StatusCode, Reason: "token exchange rejected"}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", 0, &AuthError{Reason: "malformed token response: " + err.Error()}
	}
	if payload.AccessToken == "" {
		return "", 0, &AuthError{Reason: "token response missing access_token"}
	}

	return payload.AccessToken, payload.ExpiresIn, nil
}

// File: cocoti/services/session/manager.go
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cocoti/models"
	"cocoti/utils"

	"go.uber.org/zap"
)

// Manager owns the admin token lifecycle: login and refresh against the
// external auth backend, persistence in the TokenStore under the canonical
// keys, and the authentication-state query the route gate relies on.
type Manager interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	CurrentAdmin(ctx context.Context) (*models.AdminUser, error)
	CheckPermissions(ctx context.Context) bool
	Refresh(ctx context.Context) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	ExpiresAt(ctx context.Context) time.Time
}

// DefaultManager is the production implementation.
type DefaultManager struct {
	BaseURL string
	Store   TokenStore
	Client  *http.Client
}

// NewManager builds a DefaultManager talking to the auth backend at baseURL.
func NewManager(baseURL string, store TokenStore) *DefaultManager {
	return &DefaultManager{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Store:   store,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// permittedAdminTypes and permittedRoles define who may use the marketing
// admin surface.
var permittedAdminTypes = map[string]bool{
	models.AdminTypeSuperAdmin:     true,
	models.AdminTypeAdmin:          true,
	models.AdminTypeMarketingAdmin: true,
}

var permittedRoles = map[string]bool{
	models.AdminTypeSuperAdmin: true,
	models.AdminTypeAdmin:      true,
}

// Login exchanges credentials for a token pair and persists it. Non-2xx
// statuses are classified into user-facing errors; a 2xx body missing the
// token fields is a malformed response. No token is written on any failure.
func (m *DefaultManager) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/auth/admin/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		utils.GetLogger().Error("Login request failed", zap.Error(err))
		return nil, ErrBackendUnreachable
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	loginResp, err := decodeTokenResponse(resp)
	if err != nil {
		return nil, err
	}

	if err := m.persistTokens(ctx, loginResp.Tokens); err != nil {
		return nil, err
	}
	return loginResp, nil
}

// CurrentAdmin fetches the authenticated admin's profile. A 401 means the
// session is dead: storage is cleared before ErrSessionExpired is returned.
func (m *DefaultManager) CurrentAdmin(ctx context.Context) (*models.AdminUser, error) {
	token, err := m.Store.Get(ctx, utils.AccessTokenKey)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrSessionExpired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.BaseURL+"/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := m.Client.Do(req)
	if err != nil {
		utils.GetLogger().Error("Profile request failed", zap.Error(err))
		return nil, ErrBackendUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if err := m.Logout(ctx); err != nil {
			utils.GetLogger().Error("Failed to clear expired session", zap.Error(err))
		}
		return nil, ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Impossible de récupérer le profil administrateur (code %d)", resp.StatusCode)
	}

	var admin models.AdminUser
	if err := json.NewDecoder(resp.Body).Decode(&admin); err != nil {
		return nil, ErrMalformedResponse
	}
	return &admin, nil
}

// CheckPermissions reports whether the current admin may use the admin
// surface. Every internal failure collapses to false: access control fails
// closed.
func (m *DefaultManager) CheckPermissions(ctx context.Context) bool {
	admin, err := m.CurrentAdmin(ctx)
	if err != nil {
		return false
	}
	if permittedAdminTypes[admin.AdminType] {
		return true
	}
	for _, role := range admin.Roles {
		if permittedRoles[role] {
			return true
		}
	}
	return false
}

// Refresh exchanges the stored refresh token for a new pair. Any failure
// logs the session out before the error is returned.
func (m *DefaultManager) Refresh(ctx context.Context) (*models.LoginResponse, error) {
	refresh, err := m.Store.Get(ctx, utils.RefreshTokenKey)
	if err != nil || refresh == "" {
		m.Logout(ctx)
		return nil, ErrSessionExpired
	}

	payload, _ := json.Marshal(map[string]string{"refresh_token": refresh})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		m.Logout(ctx)
		return nil, fmt.Errorf("failed to build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		utils.GetLogger().Error("Refresh request failed", zap.Error(err))
		m.Logout(ctx)
		return nil, ErrBackendUnreachable
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		m.Logout(ctx)
		return nil, err
	}

	loginResp, err := decodeTokenResponse(resp)
	if err != nil {
		m.Logout(ctx)
		return nil, err
	}

	if err := m.persistTokens(ctx, loginResp.Tokens); err != nil {
		m.Logout(ctx)
		return nil, err
	}
	return loginResp, nil
}

// Logout unconditionally clears the canonical and legacy token keys.
func (m *DefaultManager) Logout(ctx context.Context) error {
	keys := append([]string{utils.AccessTokenKey, utils.RefreshTokenKey, utils.TokenExpiresAtKey}, utils.LegacyTokenKeys...)
	return m.Store.Delete(ctx, keys...)
}

// IsAuthenticated reports whether a token and an unexpired expiry are both
// stored. Expiry is checked lazily here, there is no timer.
func (m *DefaultManager) IsAuthenticated(ctx context.Context) bool {
	token, err := m.Store.Get(ctx, utils.AccessTokenKey)
	if err != nil || token == "" {
		return false
	}
	raw, err := m.Store.Get(ctx, utils.TokenExpiresAtKey)
	if err != nil || raw == "" {
		return false
	}
	expiry, err := parseExpiry(raw)
	if err != nil {
		return false
	}
	return time.Now().Before(expiry)
}

// ExpiresAt returns the stored expiry, or the zero time when absent or
// unparseable. The session-state endpoint uses it.
func (m *DefaultManager) ExpiresAt(ctx context.Context) time.Time {
	raw, err := m.Store.Get(ctx, utils.TokenExpiresAtKey)
	if err != nil || raw == "" {
		return time.Time{}
	}
	expiry, err := parseExpiry(raw)
	if err != nil {
		return time.Time{}
	}
	return expiry
}

// persistTokens writes the three canonical keys and purges every legacy key
// so stale credentials can never shadow the new ones.
func (m *DefaultManager) persistTokens(ctx context.Context, tokens *models.TokenSet) error {
	expiresAt := time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
	if err := m.Store.Set(ctx, utils.AccessTokenKey, tokens.AccessToken); err != nil {
		return err
	}
	if err := m.Store.Set(ctx, utils.RefreshTokenKey, tokens.RefreshToken); err != nil {
		return err
	}
	if err := m.Store.Set(ctx, utils.TokenExpiresAtKey, expiresAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	if err := m.Store.Delete(ctx, utils.LegacyTokenKeys...); err != nil {
		return err
	}
	return nil
}

// classifyStatus maps a non-2xx auth backend status onto a user-facing error.
func classifyStatus(status int) error {
	if status >= 200 && status <= 299 {
		return nil
	}
	switch status {
	case http.StatusNotFound:
		return ErrBackendUnreachable
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusInternalServerError:
		return ErrServerError
	default:
		return fmt.Errorf("Échec de la connexion (code %d)", status)
	}
}

// decodeTokenResponse parses a login/refresh body and validates the token
// fields are all present.
func decodeTokenResponse(resp *http.Response) (*models.LoginResponse, error) {
	var loginResp models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, ErrMalformedResponse
	}
	t := loginResp.Tokens
	if t == nil || t.AccessToken == "" || t.RefreshToken == "" || t.ExpiresIn <= 0 {
		return nil, ErrMalformedResponse
	}
	return &loginResp, nil
}

// parseExpiry parses a stored RFC3339 expiry. Fractional seconds are
// truncated first: some writers emit microsecond precision the parser does
// not accept.
func parseExpiry(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, truncateFractionalSeconds(raw))
}

func truncateFractionalSeconds(s string) string {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return s
	}
	j := i + 1
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	return s[:i] + s[j:]
}

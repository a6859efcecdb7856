package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cocoti/models"
	"cocoti/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, handler http.HandlerFunc) (*DefaultManager, *MemoryTokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := NewMemoryTokenStore()
	mgr := NewManager(srv.URL, store)
	mgr.Client = srv.Client()
	return mgr, store
}

func tokenResponse(expiresIn int64) models.LoginResponse {
	return models.LoginResponse{
		Success: true,
		Message: "ok",
		Tokens: &models.TokenSet{
			AccessToken:  "access-abc",
			RefreshToken: "refresh-def",
			TokenType:    "bearer",
			ExpiresIn:    expiresIn,
		},
	}
}

func seedSession(t *testing.T, store *MemoryTokenStore, expiresAt string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, utils.AccessTokenKey, "access-abc"))
	require.NoError(t, store.Set(ctx, utils.RefreshTokenKey, "refresh-def"))
	require.NoError(t, store.Set(ctx, utils.TokenExpiresAtKey, expiresAt))
}

func TestLoginPersistsCanonicalKeysAndPurgesLegacy(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/admin/login", r.URL.Path)
		json.NewEncoder(w).Encode(tokenResponse(3600))
	})

	ctx := context.Background()
	for _, legacy := range utils.LegacyTokenKeys {
		require.NoError(t, store.Set(ctx, legacy, "stale"))
	}

	loginTime := time.Now()
	resp, err := mgr.Login(ctx, "admin@cocoti.app", "secret")
	require.NoError(t, err)
	require.NotNil(t, resp.Tokens)

	access, _ := store.Get(ctx, utils.AccessTokenKey)
	refresh, _ := store.Get(ctx, utils.RefreshTokenKey)
	rawExpiry, _ := store.Get(ctx, utils.TokenExpiresAtKey)
	assert.Equal(t, "access-abc", access)
	assert.Equal(t, "refresh-def", refresh)
	require.NotEmpty(t, rawExpiry)

	expiry, err := time.Parse(time.RFC3339, rawExpiry)
	require.NoError(t, err)
	assert.WithinDuration(t, loginTime.Add(3600*time.Second), expiry, 2*time.Second)

	for _, legacy := range utils.LegacyTokenKeys {
		val, _ := store.Get(ctx, legacy)
		assert.Empty(t, val, "legacy key %s must be purged", legacy)
	}

	assert.True(t, mgr.IsAuthenticated(ctx))
}

func TestLoginInvalidCredentials(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	ctx := context.Background()
	_, err := mgr.Login(ctx, "admin@cocoti.app", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect")

	access, _ := store.Get(ctx, utils.AccessTokenKey)
	assert.Empty(t, access, "no token must be written on a failed login")
	assert.False(t, mgr.IsAuthenticated(ctx))
}

func TestLoginStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrBackendUnreachable},
		{http.StatusUnauthorized, ErrInvalidCredentials},
		{http.StatusInternalServerError, ErrServerError},
	}
	for _, tc := range cases {
		mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		_, err := mgr.Login(context.Background(), "a@b.com", "pw")
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}

	// Any other non-2xx status carries a generic status-coded message.
	mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := mgr.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLoginMalformedResponse(t *testing.T) {
	cases := map[string]string{
		"no tokens":       `{"success":true,"message":"ok"}`,
		"missing refresh": `{"success":true,"tokens":{"access_token":"a","expires_in":3600}}`,
		"zero expires_in": `{"success":true,"tokens":{"access_token":"a","refresh_token":"r","expires_in":0}}`,
		"not json":        `<html>oops</html>`,
	}
	for name, body := range cases {
		mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		ctx := context.Background()
		_, err := mgr.Login(ctx, "a@b.com", "pw")
		assert.ErrorIs(t, err, ErrMalformedResponse, name)
		access, _ := store.Get(ctx, utils.AccessTokenKey)
		assert.Empty(t, access, name)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tokenResponse(3600))
	})

	ctx := context.Background()
	_, err := mgr.Login(ctx, "admin@cocoti.app", "secret")
	require.NoError(t, err)
	require.True(t, mgr.IsAuthenticated(ctx))

	require.NoError(t, mgr.Logout(ctx))
	assert.False(t, mgr.IsAuthenticated(ctx))

	for _, key := range []string{utils.AccessTokenKey, utils.RefreshTokenKey, utils.TokenExpiresAtKey} {
		val, _ := store.Get(ctx, key)
		assert.Empty(t, val)
	}
}

func TestIsAuthenticatedExpiredToken(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {})
	past := time.Now().Add(-time.Minute).UTC().Format(time.RFC3339)
	seedSession(t, store, past)

	assert.False(t, mgr.IsAuthenticated(context.Background()))
}

func TestIsAuthenticatedFractionalSecondExpiry(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {})

	// Microsecond precision beyond what RFC3339 parsing accepts must be
	// truncated to whole seconds, not rejected.
	future := time.Now().Add(time.Hour).UTC().Format("2006-01-02T15:04:05") + ".123456+00:00"
	seedSession(t, store, future)
	assert.True(t, mgr.IsAuthenticated(context.Background()))

	past := time.Now().Add(-time.Hour).UTC().Format("2006-01-02T15:04:05") + ".999999Z"
	seedSession(t, store, past)
	assert.False(t, mgr.IsAuthenticated(context.Background()))
}

func TestIsAuthenticatedMissingPieces(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx := context.Background()

	assert.False(t, mgr.IsAuthenticated(ctx), "empty store")

	require.NoError(t, store.Set(ctx, utils.AccessTokenKey, "access-abc"))
	assert.False(t, mgr.IsAuthenticated(ctx), "token without expiry")
}

func TestCurrentAdminExpiredSessionClearsStorage(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer access-abc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	})

	ctx := context.Background()
	seedSession(t, store, time.Now().Add(time.Hour).UTC().Format(time.RFC3339))

	_, err := mgr.CurrentAdmin(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)

	access, _ := store.Get(ctx, utils.AccessTokenKey)
	assert.Empty(t, access, "401 on /auth/me must clear the session")
	assert.False(t, mgr.IsAuthenticated(ctx))
}

func TestCurrentAdminReturnsProfile(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.AdminUser{
			Email:     "admin@cocoti.app",
			AdminType: models.AdminTypeMarketingAdmin,
			Roles:     []string{"editor"},
		})
	})
	seedSession(t, store, time.Now().Add(time.Hour).UTC().Format(time.RFC3339))

	admin, err := mgr.CurrentAdmin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@cocoti.app", admin.Email)
	assert.Equal(t, models.AdminTypeMarketingAdmin, admin.AdminType)
}

func TestCheckPermissions(t *testing.T) {
	cases := []struct {
		name      string
		adminType string
		roles     []string
		want      bool
	}{
		{"super admin type", models.AdminTypeSuperAdmin, nil, true},
		{"admin type", models.AdminTypeAdmin, nil, true},
		{"marketing admin type", models.AdminTypeMarketingAdmin, nil, true},
		{"support type", models.AdminTypeSupport, nil, false},
		{"moderator type", models.AdminTypeModerator, nil, false},
		{"guest type", models.AdminTypeGuest, nil, false},
		{"guest with admin role", models.AdminTypeGuest, []string{"admin"}, true},
		{"guest with super_admin role", models.AdminTypeGuest, []string{"viewer", "super_admin"}, true},
		{"guest with unrelated roles", models.AdminTypeGuest, []string{"viewer", "editor"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(models.AdminUser{
					Email:     "admin@cocoti.app",
					AdminType: tc.adminType,
					Roles:     tc.roles,
				})
			})
			seedSession(t, store, time.Now().Add(time.Hour).UTC().Format(time.RFC3339))
			assert.Equal(t, tc.want, mgr.CheckPermissions(context.Background()))
		})
	}
}

func TestCheckPermissionsFailsClosed(t *testing.T) {
	mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	// No stored token at all: must be false, never an error.
	assert.False(t, mgr.CheckPermissions(context.Background()))
}

func TestRefreshReplacesTokens(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-def", body["refresh_token"])

		json.NewEncoder(w).Encode(models.LoginResponse{
			Success: true,
			Tokens: &models.TokenSet{
				AccessToken:  "access-new",
				RefreshToken: "refresh-new",
				ExpiresIn:    1800,
			},
		})
	})

	ctx := context.Background()
	seedSession(t, store, time.Now().Add(time.Minute).UTC().Format(time.RFC3339))

	_, err := mgr.Refresh(ctx)
	require.NoError(t, err)

	access, _ := store.Get(ctx, utils.AccessTokenKey)
	refresh, _ := store.Get(ctx, utils.RefreshTokenKey)
	assert.Equal(t, "access-new", access)
	assert.Equal(t, "refresh-new", refresh)
	assert.True(t, mgr.IsAuthenticated(ctx))
}

func TestRefreshFailureLogsOut(t *testing.T) {
	mgr, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx := context.Background()
	seedSession(t, store, time.Now().Add(time.Hour).UTC().Format(time.RFC3339))

	_, err := mgr.Refresh(ctx)
	require.Error(t, err)
	assert.False(t, mgr.IsAuthenticated(ctx), "a failed refresh must leave the session logged out")

	access, _ := store.Get(ctx, utils.AccessTokenKey)
	assert.Empty(t, access)
}

func TestRefreshWithoutStoredToken(t *testing.T) {
	mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a stored refresh token")
	})
	_, err := mgr.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestTruncateFractionalSeconds(t *testing.T) {
	cases := map[string]string{
		"2030-01-02T15:04:05Z":              "2030-01-02T15:04:05Z",
		"2030-01-02T15:04:05.123Z":          "2030-01-02T15:04:05Z",
		"2030-01-02T15:04:05.123456+02:00":  "2030-01-02T15:04:05+02:00",
		"2030-01-02T15:04:05.123456789012Z": "2030-01-02T15:04:05Z",
	}
	for in, want := range cases {
		assert.Equal(t, want, truncateFractionalSeconds(in))
	}
}

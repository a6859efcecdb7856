// File: cocoti/utils/constants.go
package utils

// Canonical admin session storage keys. cocoti_access_token is the single
// source of truth for the access token.
const (
	AccessTokenKey    = "cocoti_access_token"
	RefreshTokenKey   = "cocoti_refresh_token"
	TokenExpiresAtKey = "cocoti_token_expires_at"
)

// LegacyTokenKeys are storage keys from earlier iterations of the admin
// surface. They are purged on every token write so a stale credential can
// never shadow the canonical one.
var LegacyTokenKeys = []string{
	"auth_token",
	"admin_token",
	"cocoti_auth_token",
	"token",
}

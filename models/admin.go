package models

// Admin types recognised by the auth backend. Only a subset grants access to
// the marketing admin surface (see services/session).
const (
	AdminTypeSuperAdmin     = "super_admin"
	AdminTypeAdmin          = "admin"
	AdminTypeSupport        = "support"
	AdminTypeModerator      = "moderator"
	AdminTypeMarketingAdmin = "marketing_admin"
	AdminTypeGuest          = "guest"
)

// AdminUser is the profile returned by the auth backend's /auth/me endpoint.
type AdminUser struct {
	Email     string   `json:"email"`
	AdminType string   `json:"admin_type"`
	Roles     []string `json:"roles"`
}

// TokenSet is the token payload of a login or refresh response.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginResponse is the auth backend's response to a login or refresh call.
type LoginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Tokens  *TokenSet  `json:"tokens"`
	User    *AdminUser `json:"user,omitempty"`
}

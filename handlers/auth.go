package handlers

import (
	"errors"
	"net/http"
	"time"

	"cocoti/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminAuthHandler exposes the admin login/session endpoints backed by the
// session manager.
type AdminAuthHandler struct {
	Sessions session.Manager
}

// NewAdminAuthHandler creates a new AdminAuthHandler.
func NewAdminAuthHandler(mgr session.Manager) *AdminAuthHandler {
	return &AdminAuthHandler{Sessions: mgr}
}

// LoginHandler authenticates an admin and enforces the role allow-list. A
// login that passes authentication but fails the permission check is rolled
// back: the session is cleared and a 403 returned.
func (h *AdminAuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	ctx := c.Request.Context()
	resp, err := h.Sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		logger.Warn("Admin login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(loginErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	if !h.Sessions.CheckPermissions(ctx) {
		// Auto-logout: never leave a half-authorized session behind.
		if err := h.Sessions.Logout(ctx); err != nil {
			logger.Error("Failed to clear unauthorized session", zap.Error(err))
		}
		logger.Warn("Admin login rejected by permission check", zap.String("email", req.Email))
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès administrateur refusé pour ce compte"})
		return
	}

	logger.Info("Admin logged in", zap.String("email", req.Email))
	c.JSON(http.StatusOK, resp)
}

// RefreshHandler exchanges the stored refresh token for a new pair.
func (h *AdminAuthHandler) RefreshHandler(c *gin.Context) {
	logger := getLogger(c)

	resp, err := h.Sessions.Refresh(c.Request.Context())
	if err != nil {
		logger.Warn("Token refresh failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler clears the stored session.
func (h *AdminAuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.Sessions.Logout(c.Request.Context()); err != nil {
		getLogger(c).Error("Logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la déconnexion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MeHandler returns the authenticated admin's profile.
func (h *AdminAuthHandler) MeHandler(c *gin.Context) {
	admin, err := h.Sessions.CurrentAdmin(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrSessionExpired) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, admin)
}

// SessionHandler is the authentication-state query the admin frontend polls
// before rendering gated views.
func (h *AdminAuthHandler) SessionHandler(c *gin.Context) {
	ctx := c.Request.Context()
	authenticated := h.Sessions.IsAuthenticated(ctx)
	out := gin.H{"authenticated": authenticated}
	if expiresAt := h.Sessions.ExpiresAt(ctx); !expiresAt.IsZero() {
		out["expiresAt"] = expiresAt.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, out)
}

// loginErrorStatus maps a classified login error onto an HTTP status for the
// frontend.
func loginErrorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrBackendUnreachable):
		return http.StatusServiceUnavailable
	case errors.Is(err, session.ErrServerError), errors.Is(err, session.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

package middleware

import (
	"net/http"
	"strings"

	"cocoti/config"
	"cocoti/services/session"
	"cocoti/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminGate blocks admin routes for unauthenticated visitors. When the admin
// surface is disabled by feature flag the routes behave as if they did not
// exist. API callers get a 401; page requests are redirected to the login
// view instead so the browser never flashes an admin page.
func AdminGate(mgr session.Manager, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.AppConfig.AdminEnabled {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		if !mgr.IsAuthenticated(c.Request.Context()) {
			if loginPath != "" && acceptsHTML(c) {
				c.Redirect(http.StatusFound, loginPath)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentification requise"})
			return
		}

		// Tag the request log with the token subject for the audit trail.
		if dm, ok := mgr.(*session.DefaultManager); ok {
			token, err := dm.Store.Get(c.Request.Context(), utils.AccessTokenKey)
			if err == nil && token != "" {
				if subject := utils.TokenSubject(token); subject != "" {
					zap.L().Info("Admin request", zap.String("admin", subject), zap.String("path", c.Request.URL.Path))
				}
			}
		}
		c.Next()
	}
}

func acceptsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

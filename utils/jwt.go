package utils

import (
	"github.com/golang-jwt/jwt"
)

// TokenSubject extracts the subject (or email) claim from a bearer token
// without verifying its signature. Tokens are issued and verified by the
// external auth backend; this is only used to tag admin audit logs.
func TokenSubject(tokenString string) string {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims); err != nil {
		return ""
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	if email, ok := claims["email"].(string); ok {
		return email
	}
	return ""
}

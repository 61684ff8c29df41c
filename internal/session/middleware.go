package session

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	httperr "github.com/storefront-lab/pulse/internal/core/errors"
)

// ExtractToken reads the session token from the cookie first (browsers),
// then from an Authorization: Bearer header (API clients).
func ExtractToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// Middleware resolves the session, if any, into the request context. It
// never rejects a request: a missing or bad token just means a visitor.
func Middleware(tokens *TokenService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractToken(c.Request, cookieName)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			level := slog.LevelDebug
			if !errors.Is(err, ErrExpiredToken) {
				level = slog.LevelWarn
			}
			slog.Log(c.Request.Context(), level, "[Session] Ignoring session token",
				"path", c.FullPath(),
				"error", err)
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// RequireAdmin rejects requests that do not carry an administrator session.
// Mount it after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{
				ErrorType: httperr.HttpUnauthorizedError,
				Message:   "Admin session required",
			})
			return
		}
		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, httperr.ErrorResponse{
				ErrorType: httperr.HttpForbiddenError,
				Message:   "Admin role required",
			})
			return
		}
		c.Next()
	}
}

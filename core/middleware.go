package core

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// contextUserKey is where RequireUser stores the resolved principal.
const contextUserKey = "current_user"

// OriginRefererMiddleware validates Origin/Referer against allowed list and sets CORS headers.
func OriginRefererMiddleware(cfg Config) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.ToLower(o)] = struct{}{}
	}

	isAllowed := func(origin string) bool {
		if origin == "" {
			// Same-origin navigation (no Origin header) is allowed.
			return true
		}
		if len(allowed) == 0 {
			return false
		}
		origin = strings.ToLower(origin)
		_, ok := allowed[origin]
		return ok
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		referer := c.GetHeader("Referer")
		if origin == "" && referer != "" {
			if u, err := url.Parse(referer); err == nil {
				origin = u.Scheme + "://" + u.Host
			}
		}

		// Preflight handling
		if c.Request.Method == http.MethodOptions && origin != "" {
			if !isAllowed(origin) {
				respondError(c, http.StatusForbidden, "FORBIDDEN", "origin not allowed")
				c.Abort()
				return
			}
			setCORSHeaders(c, origin)
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		if !isAllowed(origin) {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "origin not allowed")
			c.Abort()
			return
		}
		if origin != "" {
			setCORSHeaders(c, origin)
		}
		c.Next()
	}
}

func setCORSHeaders(c *gin.Context, origin string) {
	c.Header("Access-Control-Allow-Origin", origin)
	c.Header("Vary", "Origin")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
}

// RequireUser extracts the bearer token, resolves it to a live account, and
// stores the user in the request context. Token failures map to 401 with a
// WWW-Authenticate challenge; an inactive account maps to 400.
func RequireUser(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			challengeUnauthorized(c)
			c.Abort()
			return
		}

		user, err := auth.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, ErrInactiveUser) {
				respondError(c, http.StatusBadRequest, "INACTIVE_USER", "Inactive user")
			} else {
				challengeUnauthorized(c)
			}
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// currentUser returns the principal stored by RequireUser.
func currentUser(c *gin.Context) (User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return User{}, false
	}
	u, ok := v.(User)
	return u, ok
}

// bearerToken parses an "Authorization: Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func challengeUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
}

package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipegen/internal/session"
)

const (
	// SessionCookieName is the cookie carrying the signed session token
	SessionCookieName = "recipe_session"
	// SessionIDKey is the gin context key holding the session ID
	SessionIDKey = "session_id"
)

// TokenIssuer issues and validates session tokens
type TokenIssuer interface {
	GenerateToken(sessionID string) (string, error)
	ValidateToken(token string) (string, error)
	TTL() time.Duration
}

// Session attaches a session ID to every request, issuing a new signed cookie
// when the request carries none or an invalid one. The cookie lives as long as
// the token it carries.
func Session(tokens TokenIssuer) gin.HandlerFunc {
	maxAge := int(tokens.TTL().Seconds())
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(SessionCookieName); err == nil {
			if id, err := tokens.ValidateToken(cookie); err == nil {
				c.Set(SessionIDKey, id)
				c.Next()
				return
			}
		}

		id := session.NewSessionID()
		token, err := tokens.GenerateToken(id)
		if err != nil {
			log.Printf("[Session] Failed to issue token: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, token, maxAge, "/", "", c.Request.TLS != nil, true)
		c.Set(SessionIDKey, id)
		c.Next()
	}
}

// SessionID returns the session ID attached by the Session middleware
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/response"
)

const ContextIdentityKey = "identity"

// SessionCookie describes the cookie that carries the signed session token.
type SessionCookie struct {
	Name   string
	MaxAge int // seconds
	Secure bool
}

func (s SessionCookie) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(s.Name, token, s.MaxAge, "/", "", s.Secure, true)
}

func (s SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(s.Name, "", -1, "/", "", s.Secure, true)
}

// Authenticate resolves the session cookie into an identity. A missing,
// malformed, forged or expired token, or one whose user no longer exists,
// leaves the request anonymous. Only a failed user lookup stops the request.
func Authenticate(sessions *app.SessionService, users *app.AuthService, cookie SessionCookie, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity := sessions.Verify(token)
		if identity == nil {
			c.Next()
			return
		}

		user, err := users.GetUserByID(identity.UserID)
		if err != nil {
			if errors.Is(err, app.ErrUserNotFound) {
				c.Next()
				return
			}
			response.InternalError(c, logger, "load session user failed", err)
			return
		}

		c.Set(ContextIdentityKey, &app.Identity{UserID: user.ID, Username: user.Username})
		c.Next()
	}
}

// RequireAuth sends anonymous visitors back to the home page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			response.Redirect(c, "/")
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated user of the request, or nil.
func CurrentIdentity(c *gin.Context) *app.Identity {
	v, ok := c.Get(ContextIdentityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*app.Identity)
	return identity
}

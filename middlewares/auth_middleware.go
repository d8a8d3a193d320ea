// middlewares/auth_middleware.go
package middlewares

import (
	"net/http"
	"net/url"

	"github.com/liyunrui/meal-prep/config"
	"github.com/liyunrui/meal-prep/services"
	"github.com/liyunrui/meal-prep/utils"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie  = "session_id"
	RememberCookie = "remember_token"
)

// RequireAuth resolves the session cookie (or a valid remember token)
// to a user ID and stores it in the gin context under "userID".
// Unauthenticated requests are redirected to the login page with a
// next parameter pointing back at the requested path.
func RequireAuth(sessions services.SessionStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := resolveUser(c, sessions, cfg); ok {
			c.Set("userID", uid)
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.Path))
		c.Abort()
	}
}

// RedirectIfAuthenticated sends logged-in users home from the register
// and login pages.
func RedirectIfAuthenticated(sessions services.SessionStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := resolveUser(c, sessions, cfg); ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser exposes the user ID to handlers that render differently
// for guests without forcing a login.
func CurrentUser(sessions services.SessionStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := resolveUser(c, sessions, cfg); ok {
			c.Set("userID", uid)
		}
		c.Next()
	}
}

func resolveUser(c *gin.Context, sessions services.SessionStore, cfg *config.Config) (uint, bool) {
	if sid, err := c.Cookie(SessionCookie); err == nil {
		if uid, err := sessions.Get(c.Request.Context(), sid); err == nil && uid != 0 {
			return uid, true
		}
	}

	// No live session: a valid remember token re-establishes one.
	tok, err := c.Cookie(RememberCookie)
	if err != nil {
		return 0, false
	}
	uid, err := utils.ParseRememberToken(cfg.Session.Secret, tok)
	if err != nil {
		return 0, false
	}
	sid, err := sessions.Create(c.Request.Context(), uid, cfg.Session.TTL())
	if err != nil {
		return 0, false
	}
	c.SetCookie(SessionCookie, sid, int(cfg.Session.TTL().Seconds()), "/", "", false, true)
	return uid, true
}

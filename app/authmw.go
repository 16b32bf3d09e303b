package app

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_lend_tool/models"
	"Gin_postgres_redis_lend_tool/session"

	"github.com/gin-gonic/gin"
)

const (
	AppSessionCookie = "app_session"
	identityKey      = "identity"
)

// ResolveIdentity turns the session cookie into a models.Identity before any
// handler runs. Missing, expired or orphaned sessions resolve to anonymous.
func ResolveIdentity(a *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := models.Anonymous()

		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.Set(identityKey, id)
			c.Next()
			return
		}
		ctx := c.Request.Context()
		as, err := a.appSess.Get(ctx, ck.Value)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				a.Log.Error().Err(err).Msg("session lookup")
			}
			c.Set(identityKey, id)
			c.Next()
			return
		}

		resolved, err := a.Auth.Resolve(ctx, as.UserID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				// user gone: drop the session
				_ = a.appSess.Delete(ctx, ck.Value)
			} else {
				a.Log.Error().Err(err).Uint("user_id", as.UserID).Msg("resolve identity")
			}
		} else {
			id = resolved
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the caller resolved by ResolveIdentity, or anonymous.
func IdentityFrom(c *gin.Context) models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(models.Identity); ok {
			return id
		}
	}
	return models.Anonymous()
}

// RequireCapability redirects callers below need: anonymous callers to the
// login page, signed-in callers without the capability to the landing page.
func RequireCapability(a *App, need models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if id.Has(need) {
			c.Next()
			return
		}
		if id.IsAnonymous() {
			a.AddFlash(c, session.FlashWarning, "Please log in first.")
			c.Redirect(http.StatusSeeOther, "/login")
		} else {
			a.AddFlash(c, session.FlashDanger, "Administrator access required.")
			c.Redirect(http.StatusSeeOther, "/")
		}
		c.Abort()
	}
}

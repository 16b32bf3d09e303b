package app

import (
	"net/http"

	"Gin_postgres_redis_lend_tool/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const FlashCookie = "app_flash"

// flashID returns the per-browser flash queue id, issuing a cookie on first use.
func (a *App) flashID(c *gin.Context) string {
	if ck, err := c.Request.Cookie(FlashCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	id := uuid.NewString()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     FlashCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.SecureCookies(),
	})
	// later reads in the same request see the new id
	c.Request.AddCookie(&http.Cookie{Name: FlashCookie, Value: id})
	return id
}

// AddFlash queues a message for the next rendered page.
func (a *App) AddFlash(c *gin.Context, category, msg string) {
	if err := a.flash.Add(c.Request.Context(), a.flashID(c), session.Flash{Category: category, Message: msg}); err != nil {
		a.Log.Error().Err(err).Msg("flash add")
	}
}

// PopFlashes drains the queued messages.
func (a *App) PopFlashes(c *gin.Context) []session.Flash {
	ck, err := c.Request.Cookie(FlashCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	fs, err := a.flash.Pop(c.Request.Context(), ck.Value)
	if err != nil {
		a.Log.Error().Err(err).Msg("flash pop")
		return nil
	}
	return fs
}

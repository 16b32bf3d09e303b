// controllers/srv.go
package controllers

import (
	"context"
	"net/http"
	"strconv"

	"Gin_postgres_redis_lend_tool/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Srv is shared by every controller.
type Srv struct {
	*app.App
}

func GetSrv(a *app.App) *Srv { return &Srv{App: a} }

// --- helpers ---

// setAppCookie writes the business session cookie. maxAge < 0 clears it.
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.Config.SecureCookies(),
		MaxAge:   maxAge,
	})
}

// issueSession creates a redis session for userID and hands out its cookie.
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID uint) error {
	id := uuid.NewString()
	if err := s.AppSessions().Create(ctx, id, userID); err != nil {
		return err
	}
	s.setAppCookie(w, id, int(s.AppSessions().TTL().Seconds()))
	return nil
}

// page returns the fields every template reads.
func (s *Srv) page(c *gin.Context, title string) gin.H {
	return gin.H{
		"Title":         title,
		"Identity":      app.IdentityFrom(c),
		"AnonymousMode": s.Config.Anonymous(),
		"Flashes":       s.PopFlashes(c),
	}
}

func (s *Srv) render(c *gin.Context, tmpl string, data gin.H) {
	c.HTML(http.StatusOK, tmpl, data)
}

// redirect flashes msg and answers 303 so the browser follows with a GET.
func (s *Srv) redirect(c *gin.Context, to, category, msg string) {
	if msg != "" {
		s.AddFlash(c, category, msg)
	}
	c.Redirect(http.StatusSeeOther, to)
}

// fail maps err to a flash and redirects. Unexpected errors are logged.
func (s *Srv) fail(c *gin.Context, to, subject string, err error) {
	category, msg, known := flashFor(err, subject)
	if !known {
		s.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		_ = c.Error(err)
	}
	s.redirect(c, to, category, msg)
}

// failPage renders nothing and redirects home when a read fails.
func (s *Srv) failPage(c *gin.Context, err error) {
	s.fail(c, "/", "Page", err)
}

func parseID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

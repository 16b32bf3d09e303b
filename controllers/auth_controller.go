package controllers

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_lend_tool/app"
	"Gin_postgres_redis_lend_tool/models"
	"Gin_postgres_redis_lend_tool/session"

	"github.com/gin-gonic/gin"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// GET /login
func (ac *AuthController) LoginPage(c *gin.Context) {
	if !app.IdentityFrom(c).IsAnonymous() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	data := ac.page(c, "Login")
	data["Username"] = c.Query("username")
	ac.render(c, "login.html", data)
}

// POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var in loginForm
	_ = c.ShouldBind(&in)

	u, err := ac.Auth.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		if !errors.Is(err, models.ErrAuthentication) {
			ac.fail(c, "/login", "User", err)
			return
		}
		ac.Log.Info().Str("username", in.Username).Msg("login failed")
		ac.redirect(c, "/login", session.FlashDanger, "Invalid credentials.")
		return
	}

	if err := ac.issueSession(c.Request.Context(), c.Writer, u.ID); err != nil {
		ac.fail(c, "/login", "Session", err)
		return
	}
	ac.redirect(c, "/", session.FlashSuccess, "Logged in successfully.")
}

// GET /logout
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSessions().Delete(c.Request.Context(), ck.Value)
	}
	ac.setAppCookie(c.Writer, "", -1)
	ac.redirect(c, "/", session.FlashInfo, "Logged out.")
}

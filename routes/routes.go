package routes

import (
	"net/http"

	"Gin_postgres_redis_lend_tool/app"
	"Gin_postgres_redis_lend_tool/controllers"
	"Gin_postgres_redis_lend_tool/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// controllers and shared middleware
	s := controllers.GetSrv(a)
	itemCtl := controllers.NewItemController(s)
	loanCtl := controllers.NewLoanController(s)
	authCtl := controllers.NewAuthController(s)

	r.GET("/healthz", func(c *app.Ctx) { c.JSON(http.StatusOK, app.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ------------------------------
	// anonymous mode: no identities, no guards, no admin surface
	// ------------------------------
	if a.Config.Anonymous() {
		r.GET("/", itemCtl.Index)
		r.GET("/inventory", itemCtl.InventoryPage)
		r.GET("/borrow", loanCtl.BorrowPage)
		r.POST("/borrow", loanCtl.Borrow)
		r.GET("/loans", loanCtl.LoansPage)
		r.POST("/return/:loan_id", loanCtl.Return)
		return
	}

	pages := r.Group("", app.ResolveIdentity(a), app.TouchLastSeen(a, a.Config.LastSeenThrottle))

	// public
	pages.GET("/", itemCtl.Index)
	pages.GET("/inventory", itemCtl.InventoryPage)
	pages.GET("/login", authCtl.LoginPage)
	pages.POST("/login", authCtl.Login)
	pages.GET("/logout", authCtl.Logout)

	// signed-in users
	user := pages.Group("", app.RequireCapability(a, models.CapAuthenticated))
	{
		user.GET("/borrow", loanCtl.BorrowPage)
		user.POST("/borrow", loanCtl.Borrow)
		user.GET("/loans", loanCtl.LoansPage)
		user.POST("/return/:loan_id", loanCtl.Return)
	}

	// administrators
	admin := pages.Group("/admin", app.RequireCapability(a, models.CapAdministrator))
	{
		admin.GET("/inventory", itemCtl.AdminInventory)
		admin.POST("/add_item", itemCtl.AddItem)
		admin.GET("/edit_item/:id", itemCtl.EditItemPage)
		admin.POST("/edit_item/:id", itemCtl.EditItem)
		admin.POST("/delete_item/:id", itemCtl.DeleteItem)
	}
}

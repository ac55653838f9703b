package controller

import (
	"net/http"

	"github.com/nenood/watchlist/web/entity"
	"github.com/nenood/watchlist/web/middleware"
	"github.com/nenood/watchlist/web/service"
	"github.com/nenood/watchlist/web/session"

	"github.com/gin-gonic/gin"
)

// SettingController lets the admin change the display name.
type SettingController struct {
	BaseController
}

func NewSettingController(g *gin.RouterGroup, userService *service.UserService) *SettingController {
	a := &SettingController{BaseController{userService: userService}}
	a.initRouter(g)
	return a
}

func (a *SettingController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/settings")
	g.Use(middleware.RequireLogin("/login", flashLoginRequired))

	g.GET("", a.settings)
	g.POST("", a.updateSettings)
}

func (a *SettingController) settings(c *gin.Context) {
	a.html(c, http.StatusOK, "settings.html", "pages.settings.title", nil)
}

func (a *SettingController) updateSettings(c *gin.Context) {
	var form entity.SettingForm
	if err := c.ShouldBind(&form); err != nil || !form.Valid() {
		flashRedirect(c, flashInvalidInput, "/settings")
		return
	}

	user := session.GetLoginUser(c)
	if err := a.userService.UpdateName(user.Id, form.Name); err != nil {
		a.serverError(c, err)
		return
	}
	flashRedirect(c, flashSettingsUpdated, "/settings")
}

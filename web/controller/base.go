// Package controller provides the HTTP handlers of the watchlist pages.
package controller

import (
	"errors"
	"net/http"

	"github.com/nenood/watchlist/logger"
	"github.com/nenood/watchlist/web/locale"
	"github.com/nenood/watchlist/web/service"
	"github.com/nenood/watchlist/web/session"

	"github.com/gin-gonic/gin"
)

// Flash message keys, translated when the next page renders.
const (
	flashInvalidInput       = "flash.invalidInput"
	flashLoginSuccess       = "flash.loginSuccess"
	flashInvalidCredentials = "flash.invalidCredentials"
	flashGoodbye            = "flash.goodbye"
	flashSettingsUpdated    = "flash.settingsUpdated"
	flashNotLoggedIn        = "flash.notLoggedIn"
	flashLoginRequired      = "flash.loginRequired"
	flashItemCreated        = "flash.itemCreated"
	flashItemUpdated        = "flash.itemUpdated"
	flashItemDeleted        = "flash.itemDeleted"
	flashTooManyAttempts    = "flash.tooManyAttempts"
)

// BaseController renders pages with the admin account passed explicitly into
// every template.
type BaseController struct {
	userService *service.UserService
}

// html renders the page name with the shared page context.
func (a *BaseController) html(c *gin.Context, status int, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	lang := locale.GetLang(c)

	admin, err := a.userService.GetAdmin()
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		logger.Warning("get admin err:", err)
	}

	keys, err := session.Flashes(c)
	if err != nil {
		logger.Warning("Unable to save session:", err)
	}
	flashes := make([]string, 0, len(keys))
	for _, key := range keys {
		flashes = append(flashes, locale.I18n(lang, key))
	}

	data["title"] = title
	data["lang"] = lang
	data["user"] = admin
	data["authenticated"] = session.IsLogin(c)
	data["flashes"] = flashes
	c.HTML(status, name, getContext(data))
}

// notFound renders the dedicated 404 page.
func (a *BaseController) notFound(c *gin.Context) {
	a.html(c, http.StatusNotFound, "404.html", "pages.notFound.title", nil)
	c.Abort()
}

func (a *BaseController) serverError(c *gin.Context, err error) {
	logger.Warningf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	a.html(c, http.StatusInternalServerError, "error.html", "pages.error.title", nil)
	c.Abort()
}

// NotFound is the handler for unknown routes.
func (a *BaseController) NotFound(c *gin.Context) {
	a.notFound(c)
}

// flashRedirect queues a flash message and redirects to location.
func flashRedirect(c *gin.Context, flash string, location string) {
	if err := session.AddFlash(c, flash); err != nil {
		logger.Warning("Unable to save session:", err)
	}
	c.Redirect(http.StatusFound, location)
}

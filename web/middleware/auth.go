package middleware

import (
	"net/http"

	"github.com/nenood/watchlist/database/model"
	"github.com/nenood/watchlist/logger"
	"github.com/nenood/watchlist/web/session"

	"github.com/gin-gonic/gin"
)

// UserLoader loads an account by id.
type UserLoader interface {
	GetUser(id int) (*model.User, error)
}

// LoadUser resolves the session's user id to an account on every request.
// Any failure leaves the request anonymous.
func LoadUser(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := session.GetLoginUserID(c); ok {
			user, err := users.GetUser(id)
			if err != nil {
				logger.Debugf("session user %d not resolved: %v", id, err)
			} else {
				session.SetCurrentUser(c, user)
			}
		}
		c.Next()
	}
}

// RequireLogin stops anonymous requests before the handler runs, queues
// flash and redirects to location.
func RequireLogin(location string, flash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.IsLogin(c) {
			c.Next()
			return
		}
		if err := session.AddFlash(c, flash); err != nil {
			logger.Warning("Unable to save session:", err)
		}
		c.Redirect(http.StatusFound, location)
		c.Abort()
	}
}

// Package session stores the login state and flash messages of a browser in
// its gin session.
package session

import (
	"encoding/gob"
	"net/http"

	"github.com/nenood/watchlist/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "watchlist"

	loginUserID = "LOGIN_USER_ID"
	currentUser = "current_user"
)

func init() {
	gob.Register([]any{})
}

// DefaultOptions returns the cookie options used for every session.
func DefaultOptions(maxAge int) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetLoginUser marks the session as belonging to user.
func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUserID, user.Id)
	return s.Save()
}

// SetMaxAge changes the lifetime of the session cookie, in seconds.
func SetMaxAge(c *gin.Context, maxAge int) {
	sessions.Default(c).Options(DefaultOptions(maxAge))
}

// GetLoginUserID returns the user id stored in the session.
func GetLoginUserID(c *gin.Context) (int, bool) {
	s := sessions.Default(c)
	id, ok := s.Get(loginUserID).(int)
	return id, ok
}

// SetCurrentUser records the user resolved from the session for the rest of
// the request.
func SetCurrentUser(c *gin.Context, user *model.User) {
	c.Set(currentUser, user)
}

// GetLoginUser returns the user resolved for this request, or nil when the
// request is anonymous.
func GetLoginUser(c *gin.Context) *model.User {
	if obj, ok := c.Get(currentUser); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// ClearSession logs the browser out. The cookie is kept so that flash
// messages added afterwards still reach the next page.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	c.Set(currentUser, nil)
	return s.Save()
}

// AddFlash queues a one-shot message for the next rendered page.
func AddFlash(c *gin.Context, msg string) error {
	s := sessions.Default(c)
	s.AddFlash(msg)
	return s.Save()
}

// Flashes returns and discards the queued flash messages.
func Flashes(c *gin.Context) ([]string, error) {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs, s.Save()
}

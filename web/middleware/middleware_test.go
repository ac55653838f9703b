package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/nenood/watchlist/caching"
	"github.com/nenood/watchlist/database/model"
	"github.com/nenood/watchlist/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers map[int]*model.User

func (s stubUsers) GetUser(id int) (*model.User, error) {
	if user, ok := s[id]; ok {
		return user, nil
	}
	return nil, errors.New("not found")
}

func newEngine(users UserLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions(session.CookieName, cookie.NewStore([]byte("secret"))))
	engine.Use(LoadUser(users))

	engine.GET("/login/:id", func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		if err := session.SetLoginUser(c, &model.User{Id: id}); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	guarded := engine.Group("/private", RequireLogin("/login", "flash.loginRequired"))
	guarded.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, session.GetLoginUser(c).Username)
	})
	engine.GET("/flashes", func(c *gin.Context) {
		flashes, err := session.Flashes(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, flashes)
	})
	return engine
}

func serve(engine *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	engine := newEngine(stubUsers{})

	w := serve(engine, "/private", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = serve(engine, "/flashes", w.Result().Cookies())
	assert.JSONEq(t, `["flash.loginRequired"]`, w.Body.String())
}

func TestRequireLoginPassesLoggedInUser(t *testing.T) {
	engine := newEngine(stubUsers{1: {Id: 1, Username: "admin"}})

	w := serve(engine, "/login/1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = serve(engine, "/private", w.Result().Cookies())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestLoadUserIgnoresUnknownUser(t *testing.T) {
	engine := newEngine(stubUsers{1: {Id: 1, Username: "admin"}})

	w := serve(engine, "/login/2", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = serve(engine, "/private", w.Result().Cookies())
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestDomainValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(DomainValidatorMiddleware("watchlist.example.com"))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for host, status := range map[string]int{
		"watchlist.example.com":      http.StatusOK,
		"watchlist.example.com:5000": http.StatusOK,
		"other.example.com":          http.StatusForbidden,
		"127.0.0.1:5000":             http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = host
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, host)
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestLogger())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := serve(engine, "/", nil)
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions(session.CookieName, cookie.NewStore([]byte("secret"))))
	config := DefaultRateLimitConfig(2)
	config.Location = "/login"
	config.Flash = "flash.tooManyAttempts"
	engine.POST("/login", RateLimitMiddleware(caching.NewCache(time.Minute), config), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	post := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		return w
	}

	w := post()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusNoContent, post().Code)

	w = post()
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/login", RateLimitMiddleware(nil, DefaultRateLimitConfig(0)), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

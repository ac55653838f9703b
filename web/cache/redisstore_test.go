package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, r *Redis) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(sessions.Sessions("watchlist", NewRedisStore(r.Client(), []byte("secret"))))
	engine.GET("/set", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set("id", 1)
		require.NoError(t, s.Save())
		c.Status(http.StatusNoContent)
	})
	engine.GET("/get", func(c *gin.Context) {
		id, _ := sessions.Default(c).Get("id").(int)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	engine.GET("/clear", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Options(sessions.Options{Path: "/", MaxAge: -1})
		require.NoError(t, s.Save())
		c.Status(http.StatusNoContent)
	})
	return engine
}

func openEmbedded(t *testing.T) *Redis {
	t.Helper()
	r, err := OpenRedis(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	require.NoError(t, r.Client().Ping(context.Background()).Err())
	return r
}

func TestRedisStoreRoundTrip(t *testing.T) {
	r := openEmbedded(t)
	engine := newTestEngine(t, r)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "watchlist", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	keys, err := r.Client().Keys(context.Background(), sessionKeyPrefix+"*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}

func TestRedisStoreRejectsForgedCookie(t *testing.T) {
	r := openEmbedded(t)
	engine := newTestEngine(t, r)

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(&http.Cookie{Name: "watchlist", Value: "forged"})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.JSONEq(t, `{"id":0}`, w.Body.String())
}

func TestRedisStoreDeletesOnNegativeMaxAge(t *testing.T) {
	r := openEmbedded(t)
	engine := newTestEngine(t, r)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookie := w.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/clear", nil)
	req.AddCookie(cookie)
	engine.ServeHTTP(httptest.NewRecorder(), req)

	keys, err := r.Client().Keys(context.Background(), sessionKeyPrefix+"*").Result()
	require.NoError(t, err)
	assert.Empty(t, keys)

	req = httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.JSONEq(t, `{"id":0}`, w.Body.String())
}

package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"translation/active.en-US.toml": {Data: []byte(`
[pages.index]
watchlist = "{{.Name}}'s Watchlist"
title = "Home"
`)},
		"translation/active.zh-CN.toml": {Data: []byte(`
[pages.index]
watchlist = "{{.Name}} 的观影清单"
title = "首页"
`)},
	}
}

func TestI18n(t *testing.T) {
	require.NoError(t, InitLocalizer(testFS()))

	assert.Equal(t, "Home", I18n("", "pages.index.title"))
	assert.Equal(t, "Home", I18n("fr-FR", "pages.index.title"))
	assert.Equal(t, "首页", I18n("zh-CN,zh;q=0.9,en;q=0.8", "pages.index.title"))
	assert.Equal(t, "Grey's Watchlist", I18n("en-US", "pages.index.watchlist", "Name==Grey"))
	assert.Equal(t, "Grey 的观影清单", I18n("zh-CN", "pages.index.watchlist", "Name==Grey"))
}

func TestI18nUnknownKey(t *testing.T) {
	require.NoError(t, InitLocalizer(testFS()))

	assert.Equal(t, "pages.missing", I18n("en-US", "pages.missing"))
}

func TestInitLocalizerRejectsBrokenFile(t *testing.T) {
	fsys := fstest.MapFS{
		"translation/active.en-US.toml": {Data: []byte(`title = "unterminated`)},
	}
	assert.Error(t, InitLocalizer(fsys))
}

func TestCreateTemplateData(t *testing.T) {
	data := createTemplateData([]string{"Name==Grey", "Count==3", "broken"})
	assert.Equal(t, map[string]any{"Name": "Grey", "Count": "3"}, data)
}

func TestLocalizerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(LocalizerMiddleware())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetLang(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "zh-CN")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "zh-CN", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "zh-CN")
	req.AddCookie(&http.Cookie{Name: "lang", Value: "en-US"})
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "en-US", w.Body.String())
}

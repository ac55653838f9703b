// Package web provides the watchlist web server: routing, templates, sessions
// and static assets.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/nenood/watchlist/caching"
	"github.com/nenood/watchlist/config"
	"github.com/nenood/watchlist/logger"
	"github.com/nenood/watchlist/util/common"
	"github.com/nenood/watchlist/web/cache"
	"github.com/nenood/watchlist/web/controller"
	"github.com/nenood/watchlist/web/locale"
	"github.com/nenood/watchlist/web/middleware"
	"github.com/nenood/watchlist/web/service"
	"github.com/nenood/watchlist/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

var startTime = time.Now()

type wrapAssetsFS struct {
	embed.FS
}

func (f *wrapAssetsFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open("assets/" + name)
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFile{File: file}, nil
}

type wrapAssetsFile struct {
	fs.File
}

func (f *wrapAssetsFile) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFileInfo{FileInfo: info}, nil
}

type wrapAssetsFileInfo struct {
	fs.FileInfo
}

func (f *wrapAssetsFileInfo) ModTime() time.Time {
	return startTime
}

// Server is the watchlist web server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index   *controller.IndexController
	setting *controller.SettingController
	movie   *controller.MovieController

	userService *service.UserService
	redis       *cache.Redis

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		userService: service.NewUserService(caching.NewCache(caching.DefaultTTL)),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// getHtmlTemplate parses the page templates under html/ in fsys.
func getHtmlTemplate(fsys fs.FS, funcMap template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(fsys, "html/*.html", "html/common/*.html")
}

// newSessionStore builds the configured session backend.
func (s *Server) newSessionStore() (sessions.Store, error) {
	secret := []byte(config.GetSecret())
	maxAge, err := config.GetSessionMaxAge()
	if err != nil {
		return nil, err
	}

	var store sessions.Store
	switch config.GetSessionStore() {
	case config.SessionStoreCookie:
		store = cookie.NewStore(secret)
	case config.SessionStoreRedis:
		r, err := cache.OpenRedis(s.ctx, config.GetRedisAddr())
		if err != nil {
			return nil, err
		}
		s.redis = r
		store = cache.NewRedisStore(r.Client(), secret)
	default:
		return nil, fmt.Errorf("unknown session store: %s", config.GetSessionStore())
	}
	store.Options(session.DefaultOptions(maxAge * 60))
	return store, nil
}

// initRouter initializes gin, registers middleware, templates, static assets
// and controllers, and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if err := engine.SetTrustedProxies(config.GetTrustedProxies()); err != nil {
		return nil, err
	}
	engine.Use(gin.Recovery(), middleware.RequestLogger())

	if domain := config.GetDomain(); domain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(domain))
	}

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	store, err := s.newSessionStore()
	if err != nil {
		return nil, err
	}
	engine.Use(sessions.Sessions(session.CookieName, store))

	var pages fs.FS = htmlFS
	var assets http.FileSystem = http.FS(&wrapAssetsFS{FS: assetsFS})
	var translations fs.FS = i18nFS
	if config.IsDebug() {
		pages = os.DirFS("web")
		assets = http.Dir("web/assets")
		translations = os.DirFS("web")
	}

	if err := locale.InitLocalizer(translations); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware())

	funcMap := template.FuncMap{"i18n": locale.I18n}
	tpl, err := getHtmlTemplate(pages, funcMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)
	engine.StaticFS("/assets", assets)

	engine.Use(middleware.LoadUser(s.userService))

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, s.userService)
	s.setting = controller.NewSettingController(g, s.userService)
	s.movie = controller.NewMovieController(g, s.userService)

	engine.NoRoute(s.index.NotFound)

	return engine, nil
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	port, err := config.GetPort()
	if err != nil {
		return err
	}
	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		defer common.Recover("web server")
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()

	return nil
}

// Stop shuts down the HTTP server and releases the session backend.
func (s *Server) Stop() error {
	var errs []error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
		errs = append(errs, s.httpServer.Shutdown(ctx))
		cancel()
	} else if s.listener != nil {
		errs = append(errs, s.listener.Close())
	}
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
		s.redis = nil
	}
	s.cancel()
	return common.Combine(errs...)
}

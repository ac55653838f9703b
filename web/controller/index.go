package controller

import (
	"errors"
	"net/http"
	"text/template"
	"time"

	"github.com/nenood/watchlist/caching"
	"github.com/nenood/watchlist/config"
	"github.com/nenood/watchlist/database/model"
	"github.com/nenood/watchlist/logger"
	"github.com/nenood/watchlist/web/entity"
	"github.com/nenood/watchlist/web/middleware"
	"github.com/nenood/watchlist/web/service"
	"github.com/nenood/watchlist/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController serves the movie list and the login routes.
type IndexController struct {
	BaseController

	movieService service.MovieService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup, userService *service.UserService) *IndexController {
	a := &IndexController{BaseController: BaseController{userService: userService}}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.POST("/", middleware.RequireLogin("/", flashNotLoggedIn), a.addMovie)

	g.GET("/login", a.loginPage)
	g.POST("/login", a.loginRateLimit(), a.login)
	g.GET("/logout", a.logout)
	g.POST("/logout", a.logout)
}

// loginRateLimit throttles login attempts per client IP.
func (a *IndexController) loginRateLimit() gin.HandlerFunc {
	limit, err := config.GetLoginRateLimit()
	if err != nil {
		logger.Warning("Unable to get login rate limit:", err)
		limit = 0
	}
	cfg := middleware.DefaultRateLimitConfig(limit)
	cfg.Location = "/login"
	cfg.Flash = flashTooManyAttempts
	return middleware.RateLimitMiddleware(caching.NewCache(time.Minute), cfg)
}

func (a *IndexController) index(c *gin.Context) {
	movies, err := a.movieService.GetMovies()
	if err != nil {
		a.serverError(c, err)
		return
	}
	a.html(c, http.StatusOK, "index.html", "pages.index.title", gin.H{"movies": movies})
}

func (a *IndexController) addMovie(c *gin.Context) {
	var form entity.MovieForm
	if err := c.ShouldBind(&form); err != nil || !form.ValidForCreate() {
		flashRedirect(c, flashInvalidInput, "/")
		return
	}

	movie := &model.Movie{}
	form.Apply(movie)
	if err := a.movieService.AddMovie(movie); err != nil {
		a.serverError(c, err)
		return
	}
	logger.Infof("movie %d created: %s (%s)", movie.Id, movie.Title, movie.Year)
	flashRedirect(c, flashItemCreated, "/")
}

func (a *IndexController) loginPage(c *gin.Context) {
	a.html(c, http.StatusOK, "login.html", "pages.login.title", nil)
}

// login checks the posted credentials against the admin account. Missing
// input goes back to the movie list; wrong credentials back to the form.
func (a *IndexController) login(c *gin.Context) {
	var form entity.LoginForm
	if err := c.ShouldBind(&form); err != nil || form.Empty() {
		flashRedirect(c, flashInvalidInput, "/")
		return
	}

	safeUser := template.HTMLEscapeString(form.Username)
	user, err := a.userService.CheckUser(form.Username, form.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		logger.Warningf("wrong username or password: \"%s\", IP: \"%s\"", safeUser, getRemoteIp(c))
		flashRedirect(c, flashInvalidCredentials, "/login")
		return
	} else if err != nil {
		a.serverError(c, err)
		return
	}

	maxAge, err := config.GetSessionMaxAge()
	if err != nil {
		logger.Warning("Unable to get session's max age:", err)
	}
	session.SetMaxAge(c, maxAge*60)
	if err := session.SetLoginUser(c, user); err != nil {
		a.serverError(c, err)
		return
	}

	logger.Infof("%s logged in successfully, Ip Address: %s", safeUser, getRemoteIp(c))
	flashRedirect(c, flashLoginSuccess, "/")
}

func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out successfully", user.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	flashRedirect(c, flashGoodbye, "/")
}

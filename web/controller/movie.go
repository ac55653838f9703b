package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nenood/watchlist/logger"
	"github.com/nenood/watchlist/web/entity"
	"github.com/nenood/watchlist/web/middleware"
	"github.com/nenood/watchlist/web/service"

	"github.com/gin-gonic/gin"
)

// MovieController edits and deletes single movies.
type MovieController struct {
	BaseController

	movieService service.MovieService
}

func NewMovieController(g *gin.RouterGroup, userService *service.UserService) *MovieController {
	a := &MovieController{BaseController: BaseController{userService: userService}}
	a.initRouter(g)
	return a
}

func (a *MovieController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/movie")
	g.Use(middleware.RequireLogin("/login", flashLoginRequired))

	g.GET("/edit/:id", a.editPage)
	g.POST("/edit/:id", a.edit)
	g.POST("/delete/:id", a.delete)
}

func (a *MovieController) editPage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		a.notFound(c)
		return
	}
	movie, err := a.movieService.GetMovie(id)
	if errors.Is(err, service.ErrNotFound) {
		a.notFound(c)
		return
	} else if err != nil {
		a.serverError(c, err)
		return
	}
	a.html(c, http.StatusOK, "edit.html", "pages.edit.title", gin.H{"movie": movie})
}

func (a *MovieController) edit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		a.notFound(c)
		return
	}
	movie, err := a.movieService.GetMovie(id)
	if errors.Is(err, service.ErrNotFound) {
		a.notFound(c)
		return
	} else if err != nil {
		a.serverError(c, err)
		return
	}

	var form entity.MovieForm
	if err := c.ShouldBind(&form); err != nil || !form.ValidForUpdate() {
		flashRedirect(c, flashInvalidInput, fmt.Sprintf("/movie/edit/%d", id))
		return
	}

	form.Apply(movie)
	err = a.movieService.UpdateMovie(movie)
	if errors.Is(err, service.ErrNotFound) {
		a.notFound(c)
		return
	} else if err != nil {
		a.serverError(c, err)
		return
	}
	logger.Infof("movie %d updated: %s (%s)", movie.Id, movie.Title, movie.Year)
	flashRedirect(c, flashItemUpdated, "/")
}

func (a *MovieController) delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		a.notFound(c)
		return
	}
	err := a.movieService.DeleteMovie(id)
	if errors.Is(err, service.ErrNotFound) {
		a.notFound(c)
		return
	} else if err != nil {
		a.serverError(c, err)
		return
	}
	logger.Infof("movie %d deleted", id)
	flashRedirect(c, flashItemDeleted, "/")
}

package service

import (
	"github.com/nenood/watchlist/database"
	"github.com/nenood/watchlist/database/model"
)

// SampleMovies returns the fixed records inserted by Forge.
func SampleMovies() []model.Movie {
	return []model.Movie{
		{Title: "My Neighbor Totoro", Year: "1988"},
		{Title: "Dead Poets Society", Year: "1989"},
		{Title: "A Perfect World", Year: "1993"},
		{Title: "Leon", Year: "1994"},
		{Title: "Mahjong", Year: "1996"},
		{Title: "Swallowtail Butterfly", Year: "1996"},
		{Title: "King of Comedy", Year: "1999"},
		{Title: "Devils on the Doorstep", Year: "1999"},
		{Title: "WALL-E", Year: "2008"},
		{Title: "The Pork of Music", Year: "2012"},
	}
}

type MovieService struct{}

// GetMovies returns every movie in insertion order.
func (s *MovieService) GetMovies() ([]*model.Movie, error) {
	db := database.GetDB()
	var movies []*model.Movie
	err := db.Model(model.Movie{}).Order("id asc").Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (s *MovieService) GetMovie(id int) (*model.Movie, error) {
	db := database.GetDB()
	movie := &model.Movie{}
	err := db.Model(model.Movie{}).Where("id = ?", id).First(movie).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) CountMovies() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.Movie{}).Count(&count).Error
	return count, err
}

func (s *MovieService) AddMovie(movie *model.Movie) error {
	db := database.GetDB()
	return db.Create(movie).Error
}

// UpdateMovie saves the title and year of an existing movie.
func (s *MovieService) UpdateMovie(movie *model.Movie) error {
	db := database.GetDB()
	result := db.Model(model.Movie{}).
		Where("id = ?", movie.Id).
		Updates(map[string]any{"title": movie.Title, "year": movie.Year})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMovie removes the movie with the given id. An unknown id returns
// ErrNotFound without touching the table.
func (s *MovieService) DeleteMovie(id int) error {
	if _, err := s.GetMovie(id); err != nil {
		return err
	}
	db := database.GetDB()
	return db.Delete(&model.Movie{}, id).Error
}

// Forge inserts the sample movies. It does not check for existing rows, so
// every call adds another full set.
func (s *MovieService) Forge() (int, error) {
	db := database.GetDB()
	movies := SampleMovies()
	if err := db.Create(&movies).Error; err != nil {
		return 0, err
	}
	return len(movies), nil
}

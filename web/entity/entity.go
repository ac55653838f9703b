// Package entity defines the forms posted to the watchlist pages.
package entity

import (
	"unicode/utf8"

	"github.com/nenood/watchlist/database/model"
)

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Empty reports whether either credential is missing.
func (f *LoginForm) Empty() bool {
	return f.Username == "" || f.Password == ""
}

type MovieForm struct {
	Title string `form:"title"`
	Year  string `form:"year"`
}

// ValidForCreate accepts a non-empty title of at most 60 characters and a
// non-empty year of at most 4 characters.
func (f *MovieForm) ValidForCreate() bool {
	return f.validTitle() && f.Year != "" && utf8.RuneCountInString(f.Year) <= model.YearLength
}

// ValidForUpdate is stricter than ValidForCreate: the year must be exactly 4
// characters.
func (f *MovieForm) ValidForUpdate() bool {
	return f.validTitle() && utf8.RuneCountInString(f.Year) == model.YearLength
}

func (f *MovieForm) validTitle() bool {
	return f.Title != "" && utf8.RuneCountInString(f.Title) <= model.MaxTitleLength
}

// Apply copies the form fields onto movie.
func (f *MovieForm) Apply(movie *model.Movie) {
	movie.Title = f.Title
	movie.Year = f.Year
}

type SettingForm struct {
	Name string `form:"name"`
}

func (f *SettingForm) Valid() bool {
	return f.Name != "" && utf8.RuneCountInString(f.Name) <= model.MaxNameLength
}

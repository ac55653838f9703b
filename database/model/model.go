// Package model defines the records kept in the watchlist database.
package model

// AdminID is the reserved primary key of the single admin account.
const AdminID = 1

// DefaultAdminName is the display name given to a newly created admin.
const DefaultAdminName = "NeNoOD"

const (
	MaxNameLength  = 20
	MaxTitleLength = 60
	YearLength     = 4
)

type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"size:20"`
	Username     string `json:"username" gorm:"size:128"`
	PasswordHash string `json:"-" gorm:"size:128"`
}

type Movie struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Title string `json:"title" form:"title" gorm:"size:60"`
	Year  string `json:"year" form:"year" gorm:"size:4"`
}

// Package database owns the gorm handle to the SQLite store.
package database

import (
	"errors"
	"log"

	"github.com/nenood/watchlist/config"
	"github.com/nenood/watchlist/database/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func models() []any {
	return []any{
		&model.User{},
		&model.Movie{},
	}
}

// MigrateModels creates any missing tables and columns.
func MigrateModels() error {
	for _, m := range models() {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// DropModels drops every table owned by the application.
func DropModels() error {
	return db.Migrator().DropTable(models()...)
}

// InitDB opens the store at dbPath and makes sure the schema exists.
func InitDB(dbPath string) error {
	cfg := config.NewDatabaseConfig(dbPath)
	if err := cfg.ValidateConfig(); err != nil {
		return err
	}
	if err := cfg.EnsureDirectoryExists(); err != nil {
		return err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	var err error
	db, err = gorm.Open(sqlite.Open(cfg.GetDSN()), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if _, err = sqlDB.Exec("PRAGMA temp_store = MEMORY;"); err != nil {
		return err
	}

	return MigrateModels()
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	if err := Checkpoint(); err != nil {
		log.Printf("error executing checkpoint: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Checkpoint folds the WAL back into the main database file.
func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}

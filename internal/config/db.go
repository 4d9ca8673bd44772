package config

import (
	"fmt"
	"log"
	"time"

	"github.com/tkesgar/javelin/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the Postgres connection described by cfg. The handle is
// passed explicitly to the repositories; there is no package-level DB.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("database connected")
	return db, nil
}

// MigrateAllModels runs GORM auto-migration for every model.
func MigrateAllModels(db *gorm.DB, run bool) error {
	if !run {
		log.Println("skipping migration")
		return nil
	}

	err := db.AutoMigrate(
		&models.Board{},
		&models.Section{},
		&models.Card{},
		&models.BoardUser{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("database migration completed")
	return nil
}

func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package database

import (
	"fmt"
	"time"

	"warbler/backend/internal/models"
	"warbler/backend/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the PostgreSQL database at dsn, runs migrations and installs it as DB.
func Connect(dsn string) error {
	db, err := Open(postgres.Open(dsn))
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	log.L.Info("database connection established")

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	return nil
}

// Open configures gorm for the given dialector. Driver errors are translated
// so unique violations surface as gorm.ErrDuplicatedKey on every backend.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		zap.NewStdLog(log.L.Named("gorm")),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	return gorm.Open(dialector, &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	})
}

// Migrate creates or updates the schema of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.L.Info("database migrated successfully")
	return nil
}

package infra

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"travelplan/internal/config"
	"travelplan/internal/models/db_models"
)

func InitPostgresql(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	gormLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Local development only. Deployed schemas are managed outside this service.
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&db_models.TravelPlan{}); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info().Msg("database schema auto-migrated")
	}

	log.Info().Int("max_open_conns", cfg.DBMaxOpenConns).Msg("connected to PostgreSQL")
	return db, nil
}

func ClosePostgresql(db *gorm.DB, log zerolog.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database connection: %w", err)
	}
	log.Info().Msg("PostgreSQL database connection closed successfully")
	return nil
}

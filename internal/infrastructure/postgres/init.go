package postgres

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hazbase/kit/internal/config"
	"github.com/hazbase/kit/internal/infrastructure/postgres/models"
)

func MustInitDB(cfg *config.EngineConfig) *gorm.DB {
	dsn := cfg.EngineDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.OfferModel{}, &models.DisputeModel{}, &models.NonceModel{})

	return db
}

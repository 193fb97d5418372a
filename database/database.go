package database

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jasonmoraesteodoro/tmmarinhosports/config"
	"github.com/jasonmoraesteodoro/tmmarinhosports/logger"
	"github.com/jasonmoraesteodoro/tmmarinhosports/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Get().Fatal("failed to connect database", zap.Error(err))
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Class{},
		&models.StudentClass{},
		&models.Payment{},
		&models.Settings{},
	); err != nil {
		logger.Get().Fatal("auto migrate failed", zap.Error(err))
	}
}

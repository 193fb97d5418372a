// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jasonmoraesteodoro/tmmarinhosports/config"
	"github.com/jasonmoraesteodoro/tmmarinhosports/database"
	"github.com/jasonmoraesteodoro/tmmarinhosports/logger"
	"github.com/jasonmoraesteodoro/tmmarinhosports/models"
)

// Seeds the first admin account so the login page works before anyone
// registered. Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD.
func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.LogLevel, cfg.AppEnv); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	database.Connect(cfg)

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("set ADMIN_EMAIL and ADMIN_PASSWORD")
	}

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("admin already exists:", email)
		os.Exit(0)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := models.User{Email: email, PasswordHash: string(hashed), Name: "Administrador"}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		return tx.Create(&models.Settings{
			AccountID:         u.ID,
			CourtName:         "TM Marinho Sports",
			DefaultMonthlyFee: models.DefaultMonthlyFee,
		}).Error
	})
	if err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin created:", email)
}

// Seeds the first super admin account.
//
// Registration is invitation-only, so a fresh deployment has no way to log
// in until an admin exists. Run once after the first migration.
//
// Usage: ARRURRU_ADMIN_EMAIL=... ARRURRU_ADMIN_PASSWORD=... go run scripts/seed_admin.go

package main

import (
	"log"
	"os"

	"arrurru_training_backend/internal/config"
	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/pkg/database"
	"arrurru_training_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

func main() {
	email := os.Getenv("ARRURRU_ADMIN_EMAIL")
	password := os.Getenv("ARRURRU_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ARRURRU_ADMIN_EMAIL and ARRURRU_ADMIN_PASSWORD must be set")
	}
	if len(password) < 8 {
		log.Fatal("admin password must be at least 8 characters")
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("cannot read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("cannot parse config file: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Fatalf("account %s already exists", email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hashing failed: %v", err)
	}

	admin := model.User{
		FullName: "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     model.SuperAdmin,
		Position: "Администратор",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	log.Printf("super admin %s created (id=%d)", email, admin.ID)
}

package main

import (
	"flag"
	"log"
	"time"

	"planhaus/internal/config"
	"planhaus/internal/logger"
	"planhaus/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migrates the schema and seeds a demo account with a starter project.
func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	demoEmail := flag.String("demo-email", "demo@planhaus.local", "demo account email")
	demoPass := flag.String("demo-password", "planhaus", "demo account password")
	flag.Parse()

	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	db, err := cfg.OpenGormDB()
	if err != nil {
		log.Fatal("db connect failed: ", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatal("migrate failed: ", err)
	}
	logger.Info("schema migrated", "tables", len(model.All()))

	if err := seedDemo(db, *demoEmail, *demoPass); err != nil {
		log.Fatal("seed failed: ", err)
	}

	logger.Info("=== all done ===")
}

func seedDemo(db *gorm.DB, email, password string) error {
	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		logger.Info("demo user exists, skipping", "email", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := model.User{Email: email, Password: string(hash), Name: "Demo Couple"}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	date := time.Now().AddDate(1, 0, 0)
	project := model.Project{
		OwnerID:     user.ID,
		Title:       "Demo Wedding",
		WeddingDate: &date,
		Location:    "Asheville, NC",
		GuestCount:  120,
	}
	if err := db.Create(&project).Error; err != nil {
		return err
	}
	logger.Info("demo account seeded", "email", email, "project_id", project.ID)
	return nil
}

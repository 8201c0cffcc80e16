package main

import (
	"log"
	"os"

	"workflow-hub-be/internal/model"
	"workflow-hub-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Extensions (Postgres only; harmless failure elsewhere)
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
			log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	models := model.All()
	log.Printf("Running AutoMigrate for %d tables...", len(models))
	database.MustMigrate(db, models...)

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}

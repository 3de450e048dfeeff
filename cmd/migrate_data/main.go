package main

import (
	"log"

	"whatsapp-bridge/internal/config"
	"whatsapp-bridge/internal/database"
	"whatsapp-bridge/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// One-shot copy of call and message records from a local SQLite file
// into the configured PostgreSQL instance.
func main() {
	cfg := config.LoadConfig()

	// 1. Connect to SQLite (source)
	sqliteDB, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to SQLite: %v", err)
	}
	log.Printf("Connected to SQLite at %s", cfg.DBPath)

	// 2. Connect to PostgreSQL (destination)
	cfg.DBDriver = "postgres"
	pgDB, err := database.Init(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	log.Println("Starting data migration...")

	migrateTable := func(tableName string, source interface{}) {
		log.Printf("Migrating table: %s", tableName)

		if err := sqliteDB.Find(source).Error; err != nil {
			log.Printf("Error reading %s from SQLite: %v", tableName, err)
			return
		}

		err := pgDB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(source).Error
		})
		if err != nil {
			log.Printf("Error writing %s to Postgres: %v", tableName, err)
		} else {
			log.Printf("Successfully migrated %s", tableName)
		}
	}

	var callRecords []models.Call
	migrateTable("calls", &callRecords)

	var messageRecords []models.Message
	migrateTable("messages", &messageRecords)

	log.Println("Migration completed!")
}

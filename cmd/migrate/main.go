// Command main runs schema migration for the Quill database.
package main

import (
	"log"

	"quill/internal/config"
	"quill/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Connect already migrates outside production; run explicitly so
	// production operators have a deliberate migration step.
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Schema migration complete")
}

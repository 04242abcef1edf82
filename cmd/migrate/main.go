// Command migrate applies the database schema explicitly. Development
// environments automigrate on connect; production deployments run this
// before rolling out a new server build.
package main

import (
	"fmt"
	"log"

	"quill/internal/config"
	"quill/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("schema apply failed: %w", err)
	}

	log.Println("schema applied")
	return nil
}

package main

import (
	"flag"
	"log"

	"technician-tracker/config"
	"technician-tracker/migration"
)

func main() {
	configPath := flag.String("config", ".", "config file or directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := migration.RunMigrations(cfg.DB); err != nil {
		log.Fatalf("Migration error: %v", err)
	}
}

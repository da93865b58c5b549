package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/app"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/config"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}

package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/eliteconnect/userservice/internal/users/app"
)

func main() {
	// A missing .env file is fine, configuration falls back to the
	// process environment and built-in defaults.
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/you/ordersvc/internal/app"
	"github.com/you/ordersvc/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}

package main

import (
	"log"

	"github.com/example/laundromate/internal/config"
	"github.com/example/laundromate/internal/routes"
)

func main() {
	cfg := config.Load()

	app := routes.NewApp(cfg)

	log.Printf("Starting gateway on :%s (backend %s)", cfg.AppPort, cfg.BackendBaseURL())
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}

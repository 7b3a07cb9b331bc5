package main

import (
	"log"

	"pulsecheck-backend/internal/config"
	"pulsecheck-backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	srv := server.New(cfg)
	if err := srv.Initialize(); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	srv.Echo.Logger.Fatal(srv.Start())
}

package main

import (
	"log"

	"microservice-loadtest/internal/api"
	"microservice-loadtest/internal/config"
	"microservice-loadtest/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize logger
	logger := logger.New(false)

	// Initialize and start server
	server := api.NewServer(cfg, logger)

	logger.Info("Starting server on "+cfg.ServerPort, "Server initialization")
	if err := server.Start(); err != nil {
		logger.Error(err.Error(), "Server failed to start")
		log.Fatal(err)
	}
}

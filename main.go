package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"microservice-loadtest/internal/config"
	"microservice-loadtest/internal/logger"
	"microservice-loadtest/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadLoadTestConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize logger
	logger := logger.New(cfg.Debug)

	// Initialize prober
	prober := service.NewProber(cfg, logger, os.Stdout)

	logger.Debug(fmt.Sprintf("Probing %s %d times across %v", cfg.BaseURL, cfg.RequestCount, cfg.Endpoints), "Load test initialization")

	summary, err := prober.Execute(context.Background())
	if err != nil {
		logger.Debug(err.Error(), "Metrics summary unavailable")
	}

	logger.Debug(fmt.Sprintf("%d probe attempts, %d transport failures", summary.Attempts, summary.Failures), "Load test finished")
}

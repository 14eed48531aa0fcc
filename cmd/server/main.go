package main

import (
	"context"
	"log"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/logging"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer func() { _ = logger.Sync() }()

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, err.Error())
		return
	}

	app.Run(ctx)

}

package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/credvault/internal/client/cli"
	"github.com/dmitrijs2005/credvault/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("config: %v", err)
		return
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}

package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/parishkeep/parishsync/internal/app"
	"github.com/parishkeep/parishsync/internal/config"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	a, err := app.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	a.Run(ctx)

}

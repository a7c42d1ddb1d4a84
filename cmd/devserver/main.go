package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/udlm/internal/buildinfo"
	"github.com/dmitrijs2005/udlm/internal/devserver"
	"github.com/dmitrijs2005/udlm/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := devserver.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := devserver.NewServer(cfg, logger).Run(ctx); err != nil {
		log.Fatalf("devserver: %v", err)
	}

}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wandb/timechart/cmd/timechart/root"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.NewRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/it407/it-assets/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Execute(ctx)
}

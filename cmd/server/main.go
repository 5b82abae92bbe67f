package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"paystub/internal/app/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		slog.Error("server exited", "err", err)
		stop()
		os.Exit(1)
	}
}

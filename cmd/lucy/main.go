package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var server srv

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.loadApp()
	if err := server.app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

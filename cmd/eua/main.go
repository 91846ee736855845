package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if errors.Is(err, errNotReady) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "eua: %v\n", err)
		os.Exit(1)
	}
}

// Command factctl manages the fact store from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errTooSimilar) {
			fmt.Fprintf(os.Stderr, "factctl: %v\n", err)
		}
		os.Exit(1)
	}
}

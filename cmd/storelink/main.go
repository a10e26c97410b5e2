// Command storelink is a command-line companion for StoreLink B2B
// integrations: it lists stores and products, inspects orders, tails
// event feeds, and reports delivery statuses.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	storelink "github.com/storelink/client-go"
	"github.com/storelink/client-go/internal/cli"
)

// Injected at build time via ldflags.
var version = "dev"

// Exit codes.
const (
	exitOK        = 0
	exitGeneral   = 1
	exitSetup     = 3
	exitAPI       = 4
	exitInterrupt = 130
)

func main() {
	// Load .env if present; a missing file is fine.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := cli.RootCmd(cli.DefaultEnv(), version)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to exit codes so scripts can tell setup problems
// from API failures.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupt
	case errors.Is(err, cli.ErrAuthTokenMissing), errors.Is(err, storelink.ErrMissingAuthToken):
		return exitSetup
	}

	var apiErr *storelink.APIError
	if errors.As(err, &apiErr) {
		return exitAPI
	}
	return exitGeneral
}

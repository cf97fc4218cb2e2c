// Command hollow-seed loads the hollow test fixtures into a database.
//
// With no arguments it clears the users, boxes, messages and avatar
// collections of the local MongoDB "hollow" database, inserts two users,
// three boxes, three messages and two avatar images, and prints how many
// documents each collection holds afterwards.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := run(); err != nil {
		slog.Error("hollow-seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gopak/scoopx/cmd"
	"github.com/gopak/scoopx/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Execute(ctx)
	stop()
	code := cmd.ExitCode(err)
	logging.Close()
	os.Exit(code)
}

// Command cinesched plans cinema showtimes on a timeline grid.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/duc19092005/cinesched/internal/config"
	"github.com/duc19092005/cinesched/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cinesched:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app := ui.NewApp(nil, cfg)
	defer func() { _ = app.Close() }()
	return app.ExecuteContext(ctx)
}

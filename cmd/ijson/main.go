package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leukeleu/ijson/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, exitResult := cli.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if res := cli.Run(ctx, cfg, os.Stdout); res != nil {
		res.Print()
		return res.ExitCode
	}

	return 0
}

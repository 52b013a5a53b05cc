package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/matrixrain/internal/cli"
	errs "github.com/matzehuels/matrixrain/pkg/errors"
	"github.com/matzehuels/matrixrain/pkg/terminal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A panic must not leave the terminal without a cursor.
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			panic(r)
		}
	}()

	err := run(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		os.Exit(130) // Standard shell convention for SIGINT
	}
	if !cli.IsReported(err) {
		fmt.Fprintln(os.Stderr, err)
	}
	// A failing script's status becomes ours.
	if code := errs.ExitCode(err); code > 0 {
		os.Exit(code)
	}
	os.Exit(1)
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}

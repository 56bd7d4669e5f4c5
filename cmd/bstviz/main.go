// Command bstviz is an educational binary search tree visualizer.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/bstviz/internal/cli"
	bsterrors "github.com/matzehuels/bstviz/pkg/errors"
)

// Exit codes.
const (
	exitError       = 1
	exitUsage       = 2
	exitInterrupted = 130 // Standard shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	cancel()

	if err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode reports err and picks the process exit status. Input that the
// user can fix exits with exitUsage.
func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	cli.PrintError(err)
	switch bsterrors.GetCode(err) {
	case bsterrors.ErrCodeInvalidInput, bsterrors.ErrCodeInvalidFormat,
		bsterrors.ErrCodeInvalidTraversal, bsterrors.ErrCodeInvalidCommand,
		bsterrors.ErrCodeInvalidConfig:
		return exitUsage
	}
	return exitError
}

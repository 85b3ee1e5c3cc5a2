package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bluefish/internal/cli"
	"github.com/matzehuels/bluefish/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx, os.Args[1:])
	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "bluefish:", err)
	}
	os.Exit(exitCode(ctx, err))
}

func run(ctx context.Context, args []string) error {
	var verbose, quiet bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.SetArgs(args)

	flags := root.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log layout passes, cache lookups and config loading")
	flags.BoolVarP(&quiet, "quiet", "q", false, "log warnings and errors only")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// The level must be in place before the root pre-run loads the config,
	// which logs at debug level.
	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c.SetLogLevel(logLevel(verbose, quiet))
		return loadConfig(cmd, args)
	}

	return root.ExecuteContext(ctx)
}

func logLevel(verbose, quiet bool) log.Level {
	switch {
	case verbose:
		return cli.LogDebug
	case quiet:
		return cli.LogWarn
	}
	return cli.LogInfo
}

// Exit codes. Scripts rendering many diagrams use them to tell a broken
// document from a layout that did not settle.
const (
	exitOK          = 0
	exitFailure     = 1
	exitBadInput    = 2
	exitUnsettled   = 3
	exitUnsupported = 4
	exitInterrupted = 130
)

func exitCode(ctx context.Context, err error) int {
	if err == nil {
		return exitOK
	}
	if ctx.Err() != nil {
		return exitInterrupted
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidElementID, errors.ErrCodeInvalidNumber, errors.ErrCodeFileNotFound,
		errors.ErrCodeDuplicateID, errors.ErrCodeReferenceCycle, errors.ErrCodeInvalidStructure:
		return exitBadInput
	case errors.ErrCodeNonConvergent:
		return exitUnsettled
	case errors.ErrCodeUnsupported:
		return exitUnsupported
	}
	return exitFailure
}

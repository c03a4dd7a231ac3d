package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joseph-ayodele/pdf2csv/internal/common"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the CLI and maps the outcome to an exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "Error: %v\n\n%s", uerr.err, cmd.UsageString())
		return 2
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	var appErr *common.AppError
	if errors.As(err, &appErr) && appErr.Hint != "" {
		fmt.Fprintf(stderr, "Hint: %s\n", appErr.Hint)
	}
	return common.ExitCode(err)
}

// usageError marks command-line parsing failures, which exit with 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

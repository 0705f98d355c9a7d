package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"evaluator/internal/errdefs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, defaultOptions())
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, opts options) int {
	a := newApp(opts)
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	var validationErr *errdefs.ValidationError
	switch {
	case errors.As(err, &validationErr):
		for _, f := range validationErr.Fields {
			fmt.Fprintln(w, f.Message)
		}
	case errors.Is(err, errdefs.ErrNotConfirmed):
		fmt.Fprintln(w, "Delete cancelled.")
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

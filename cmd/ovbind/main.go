// Command ovbind inspects the ovbind runtime binding: the canonical namespace, the deprecated
// namespaces re-exported from it, and the warning filters that govern their notices.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lggr, err := newLogger(parseGlobalFlags(args))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = lggr.Sync() }()

	root, err := newRootCmd(lggr)
	if err != nil {
		return fmt.Errorf("build commands: %w", err)
	}
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}

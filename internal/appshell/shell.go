// Package appshell is the process wrapper shared by the commands.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is an app entry point returning a process exit code.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs fn with a context cancelled on SIGINT/SIGTERM and exits with its
// code. A run interrupted by a signal exits 130 even if fn reported success.
func Main(fn RunFunc) {
	os.Exit(Exec(fn, os.Args[1:], os.Stdout, os.Stderr))
}

// Exec is Main without the os.Exit.
func Exec(fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := fn(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}

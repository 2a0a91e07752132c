package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"

	"compart/internal/output"
)

// Args is what every registered format receives.
type Args struct {
	Header bool
	In     <-chan output.Record
}

// FormatFunc drains args.In and writes it to w.
type FormatFunc func(w io.Writer, args Args) error

// Writer registry (format → handler). Formats register in init() blocks.
var compartmentWriters = map[string]FormatFunc{}

// Register adds or replaces (last wins) the handler for format.
func Register(format string, fn FormatFunc) { compartmentWriters[format] = fn }

// Formats lists the registered format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(compartmentWriters))
	for k := range compartmentWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Write dispatches to the handler registered for format.
func Write(format string, w io.Writer, args Args) error {
	fn, ok := compartmentWriters[format]
	if !ok {
		// keep the producer from blocking on an unread channel
		for range args.In {
		}
		return fmt.Errorf("unknown compartment format %q (no writer registered)", format)
	}
	err := fn(w, args)
	// a writer that stopped early must not strand the producer
	for range args.In {
	}
	return err
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

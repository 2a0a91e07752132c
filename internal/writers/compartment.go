package writers

import (
	"io"

	"compart/internal/jsonlutil"
	"compart/internal/output"
)

func drain(ch <-chan output.Record) []output.Record {
	list := make([]output.Record, 0, 128)
	for r := range ch {
		list = append(list, r)
	}
	return list
}

func init() {
	// JSON array
	Register(output.FormatJSON, func(w io.Writer, args Args) error {
		return output.WriteJSON(w, drain(args.In))
	})

	// JSONL streaming
	Register(output.FormatJSONL, func(w io.Writer, args Args) error {
		pipe, done := StartJSONLWriter(w, 64)
		for r := range args.In {
			pipe <- r
		}
		close(pipe)
		return <-done
	})

	// TSV streaming
	Register(output.FormatText, func(w io.Writer, args Args) error {
		return output.StreamText(w, args.In, args.Header)
	})
}

// StartJSONLWriter streams each record as one JSON line (v1).
func StartJSONLWriter(out io.Writer, bufSize int) (chan<- output.Record, <-chan error) {
	return jsonlutil.Start[output.Record](out, bufSize,
		func(r output.Record) any { return output.ToAPICompartment(r) },
		IsBrokenPipe,
	)
}

// StartCompartmentWriter spins up a writer goroutine for ranked records.
// Records arrive already ranked; the writer never reorders them.
func StartCompartmentWriter(out io.Writer, format string, header bool, bufSize int) (chan<- output.Record, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan output.Record, bufSize)
	errCh := make(chan error, 1)
	go func() {
		errCh <- Write(format, out, Args{Header: header, In: in})
	}()
	return in, errCh
}

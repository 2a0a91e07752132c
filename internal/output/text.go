package output

import (
	"fmt"
	"io"
)

// StreamText writes one TSV row per record as records arrive.
func StreamText(w io.Writer, in <-chan Record, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// WriteText prints one line per record.
func WriteText(w io.Writer, list []Record, header bool) error {
	ch := make(chan Record, len(list))
	for _, r := range list {
		ch <- r
	}
	close(ch)
	return StreamText(w, ch, header)
}

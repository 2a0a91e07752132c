package appcore

import (
	"io"

	"compart/internal/output"
	"compart/internal/writers"
)

// CompartmentWriterFactory starts a registered compartment writer.
type CompartmentWriterFactory struct {
	Format string
	Header bool
}

func NewCompartmentWriterFactory(format string, header bool) CompartmentWriterFactory {
	return CompartmentWriterFactory{Format: format, Header: header}
}

func (w CompartmentWriterFactory) Start(out io.Writer, bufSize int) (chan<- output.Record, <-chan error) {
	return writers.StartCompartmentWriter(out, w.Format, w.Header, bufSize)
}

// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"io"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"compart/internal/cmdutil"
	"compart/internal/engine"
	"compart/internal/hitfile"
	"compart/internal/metrics"
	"compart/internal/pipeline"
	"compart/internal/writers"
)

// Exit codes shared by the commands.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitIO       = 3
	ExitCanceled = 130
)

type Options struct {
	HitFiles []string
	Format   hitfile.Format

	Engine engine.Config

	Threads int

	MetricsFile     string
	NoMatchExitCode int
}

type VisitorFunc[T any] func(rank int, c engine.Compartment) (keep bool, out T, err error)

type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// Run reads the hit files, compartmentalizes them and streams visitor output
// through the writer. It returns the process exit code.
func Run[T any](
	parent context.Context,
	stdout io.Writer,
	log logrus.FieldLogger,
	o Options,
	visit VisitorFunc[T],
	wf WriterFactory[T],
) int {
	began := time.Now()
	m := metrics.New()
	defer func() {
		if o.MetricsFile == "" {
			return
		}
		m.ObserveRun(time.Since(began))
		if err := m.WriteTextfile(o.MetricsFile); err != nil {
			log.WithError(err).WithField("path", o.MetricsFile).Warn("metrics not written")
		}
	}()

	eng, err := engine.New(o.Engine)
	if err != nil {
		log.WithError(err).Error("invalid engine configuration")
		return ExitUsage
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	hits, err := hitfile.ReadFiles(ctx, o.HitFiles, o.Format, func(path string, used hitfile.Format, n int) {
		m.ObserveHits(string(used), n)
		log.WithFields(logrus.Fields{"action": "read", "path": path, "format": used, "hits": n}).Info("hits loaded")
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return ExitCanceled
		}
		log.WithError(err).Error("reading hits failed")
		return ExitIO
	}

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	outw := bufio.NewWriter(stdout)
	inCh, writeErr := wf.Start(outw, thr*4)

	total, st, perr := cmdutil.RunStream[T](
		ctx,
		pipeline.Config{Threads: thr, Logger: log, Metrics: m},
		hits,
		eng,
		visit,
		func(x T) error {
			select {
			case inCh <- x:
				m.ObserveAccepted()
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		log.WithError(werr).Error("writing output failed")
		return ExitIO
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return ExitOK
	} else if e != nil {
		log.WithError(e).Error("writing output failed")
		return ExitIO
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return ExitCanceled
		}
		log.WithError(perr).Error("compartmentalization failed")
		return ExitIO
	}

	log.WithFields(logrus.Fields{
		"action":       "done",
		"hits":         st.Hits,
		"compartments": st.Compartments,
		"splits":       st.Splits(),
		"written":      total,
		"took":         time.Since(began),
	}).Info("run complete")

	if total == 0 {
		return o.NoMatchExitCode
	}
	return ExitOK
}

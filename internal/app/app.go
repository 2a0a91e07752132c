// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"compart/internal/appcore"
	"compart/internal/cli"
	"compart/internal/cmdutil"
	"compart/internal/hitfile"
	"compart/internal/output"
	"compart/internal/version"
	"compart/internal/visitors"
	"compart/internal/writers"
)

// flushed maps the outcome of flushing usage/version text to an exit code.
func flushed(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return appcore.ExitOK
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return appcore.ExitIO
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("compart")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flushed(outw, stderr, appcore.ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flushed(outw, stderr, appcore.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flushed(outw, stderr, appcore.ExitUsage)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "compart version %s\n", version.Version)
		return flushed(outw, stderr, appcore.ExitOK)
	}

	logger, err := cmdutil.NewLogger(stderr, opts.LogLevel, opts.Quiet)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return appcore.ExitUsage
	}
	log := logger.WithFields(logrus.Fields{"run_id": uuid.NewString()})

	engCfg, err := opts.EngineConfig()
	if err != nil {
		log.WithError(err).Error("invalid engine configuration")
		return appcore.ExitUsage
	}
	format, err := hitfile.ParseFormat(opts.Format)
	if err != nil {
		log.WithError(err).Error("invalid input format")
		return appcore.ExitUsage
	}
	log.WithFields(logrus.Fields{
		"action":              "start",
		"version":             version.Version,
		"files":               len(opts.HitFiles),
		"sort_by":             engCfg.SortKey,
		"overlap":             engCfg.Overlap,
		"require_consistency": engCfg.RequireConsistency,
		"gap_filter":          engCfg.GapFilter,
		"gap_filter_ratio":    engCfg.GapFilterRatio,
	}).Debug("run configured")

	coreOpts := appcore.Options{
		HitFiles:        opts.HitFiles,
		Format:          format,
		Engine:          engCfg,
		Threads:         opts.Threads,
		MetricsFile:     opts.MetricsFile,
		NoMatchExitCode: opts.NoMatchExitCode,
	}
	visit := visitors.Accept{
		MinScore:     opts.MinScore,
		MinIdentity:  opts.MinIdentity,
		JoinGapRatio: opts.JoinGapRatio,
	}
	writer := appcore.NewCompartmentWriterFactory(opts.Output, opts.Header)
	return appcore.Run[output.Record](parent, stdout, log, coreOpts, visit.Visit, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

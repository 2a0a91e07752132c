// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"compart/internal/cliutil"
	"compart/internal/config"
	"compart/internal/hitfile"
	"compart/internal/version"
	"compart/internal/writers"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	HitFiles   []string
	ConfigFile string

	// Engine, acceptance, performance and format settings
	config.Settings

	// Output
	Header      bool // true unless --no-header
	MetricsFile string

	// Logging and exit behaviour
	LogLevel        string
	Quiet           bool
	NoMatchExitCode int

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: group alignment hits into co-linear compartments

Version: %s

Usage of %s:
  %s [options] --hits FILE [--hits FILE ...]
  %s [options] FILE...   (globs are expanded, '-' reads stdin)

`, name, version.Version, name, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, layers an optional --config file
// underneath the flags that were set explicitly, and validates the result.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	opt := Options{Settings: config.Defaults()}
	d := opt.Settings
	var help bool

	// Input
	var hits stringSlice
	fs.Var(&hits, "hits", "hit file(s): BLAST -outfmt 6 or JSONL (repeatable, '-' = stdin) [*]")
	fs.Var(&hits, "i", "hit file (shorthand)")
	fs.StringVar(&opt.Format, "format", d.Format, "hit input format: auto | tab | jsonl ["+d.Format+"]")
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML run file; explicit flags override it")

	// Engine
	fs.StringVar(&opt.SortBy, "sort-by", d.SortBy, "greedy placement order: size | score | identity ["+d.SortBy+"]")
	fs.StringVar(&opt.Overlap, "overlap", d.Overlap, "overlap allowed inside a compartment: none | query | subject | both ["+d.Overlap+"]")
	fs.BoolVar(&opt.RequireConsistency, "require-consistency", d.RequireConsistency, "overlapping neighbours must also be co-linear [true]")
	fs.Float64Var(&opt.GapFilterRatio, "gap-filter-ratio", d.GapFilterRatio, "split where a gap exceeds ratio x hit length [1.0]")
	noGapFilter := false
	fs.BoolVar(&noGapFilter, "no-gap-filter", false, "do not split compartments at large gaps [false]")
	fs.Float64Var(&opt.JoinGapRatio, "join-gap-ratio", 0, "report composite segments joined within ratio x total length (0 = off) [0]")

	// Acceptance
	fs.IntVar(&opt.MinScore, "min-score", 0, "drop compartments with total score below N [0]")
	fs.Float64Var(&opt.MinIdentity, "min-identity", 0, "drop compartments with mean %identity below X [0]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")
	fs.IntVar(&opt.Threads, "t", 0, "number of worker threads (shorthand)")

	// Output
	fs.StringVar(&opt.Output, "output", d.Output, "output format: "+strings.Join(writers.Formats(), " | ")+" ["+d.Output+"]")
	fs.StringVar(&opt.Output, "o", d.Output, "output format (shorthand)")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.StringVar(&opt.MetricsFile, "metrics-file", "", "write run metrics in Prometheus text format to FILE")

	// Logging and exit codes
	fs.StringVar(&opt.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "only log errors [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "only log errors (shorthand)")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no compartment is reported [1]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader
	opt.GapFilter = !noGapFilter

	if opt.ConfigFile != "" {
		f, err := config.Load(opt.ConfigFile)
		if err != nil {
			return opt, err
		}
		set := map[string]bool{}
		fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
		f.Apply(&opt.Settings, func(name string) bool { return set[name] })
	}

	pos, err := cliutil.ExpandPositionals(append(fs.Args(), posArgs...))
	if err != nil {
		return opt, err
	}
	opt.HitFiles = append([]string(hits), pos...)

	return opt, opt.Validate()
}

// Validate checks the settings the engine does not own. Engine tunables are
// checked by engine.Config.Validate.
func (o Options) Validate() error {
	if len(o.HitFiles) == 0 {
		return errors.New("at least one --hits file is required")
	}
	if _, err := hitfile.ParseFormat(o.Format); err != nil {
		return err
	}
	if !isFormat(o.Output) {
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.MinScore < 0 {
		return errors.New("--min-score must be ≥ 0")
	}
	if o.MinIdentity < 0 || o.MinIdentity > 100 {
		return errors.New("--min-identity must be within [0, 100]")
	}
	if o.JoinGapRatio < 0 {
		return errors.New("--join-gap-ratio must be ≥ 0")
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be within [0, 255]")
	}
	if _, err := logrus.ParseLevel(o.LogLevel); err != nil {
		return fmt.Errorf("invalid --log-level %q", o.LogLevel)
	}
	return nil
}

func isFormat(s string) bool {
	for _, f := range writers.Formats() {
		if f == s {
			return true
		}
	}
	return false
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }

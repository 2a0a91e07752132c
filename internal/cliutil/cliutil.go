// Package cliutil lets hit files be given as positionals mixed with flags.
package cliutil

import (
	"flag"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Stdin is the positional that reads hits from standard input.
const Stdin = "-"

// BoolFlags returns names of flags that don't require a value.
func BoolFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			m[f.Name] = true
		}
	})
	return m
}

// SplitFlagsAndPositionals separates flag-like args from positionals so that
// "compart -t 4 a.tsv --sort-by score b.tsv" parses as expected. A bare "-"
// is a positional and "--" ends flag parsing. Call before fs.Parse(flagArgs).
func SplitFlagsAndPositionals(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	boolFlags := BoolFlags(fs)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			return flagArgs, append(posArgs, argv[i+1:]...)
		case arg == Stdin || !strings.HasPrefix(arg, "-"):
			posArgs = append(posArgs, arg)
		case strings.Contains(arg, "="):
			flagArgs = append(flagArgs, arg)
		default:
			flagArgs = append(flagArgs, arg)
			name := strings.TrimLeft(arg, "-")
			if !boolFlags[name] && i+1 < len(argv) {
				flagArgs = append(flagArgs, argv[i+1])
				i++
			}
		}
	}
	return flagArgs, posArgs
}

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands globs among path positionals. A glob that
// matches nothing is an error.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		if a == Stdin || !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, errors.Wrapf(err, "bad glob %q", a)
		}
		if len(m) == 0 {
			return nil, errors.Errorf("no input matched %q", a)
		}
		out = append(out, m...)
	}
	return out, nil
}

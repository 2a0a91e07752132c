// Package config holds the run settings shared by the CLI and the optional
// YAML run file. Precedence is defaults, then the file, then flags that were
// set explicitly on the command line.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"compart/internal/engine"
)

// Settings are the tunables of one run.
type Settings struct {
	SortBy             string
	Overlap            string
	RequireConsistency bool
	GapFilterRatio     float64
	GapFilter          bool
	JoinGapRatio       float64 // 0 disables composite segments
	MinScore           int
	MinIdentity        float64
	Threads            int
	Format             string // hit input format
	Output             string
}

// Defaults mirrors engine.DefaultConfig plus the CLI-only settings.
func Defaults() Settings {
	d := engine.DefaultConfig()
	return Settings{
		SortBy:             d.SortKey.String(),
		Overlap:            d.Overlap.String(),
		RequireConsistency: d.RequireConsistency,
		GapFilterRatio:     d.GapFilterRatio,
		GapFilter:          d.GapFilter,
		Format:             "auto",
		Output:             "text",
	}
}

// EngineConfig parses the enum settings and validates the result. Every
// failure wraps engine.ErrInvalidConfiguration.
func (s Settings) EngineConfig() (engine.Config, error) {
	var problems *multierror.Error
	sk, err := engine.ParseSortKey(s.SortBy)
	if err != nil {
		problems = multierror.Append(problems, err)
	}
	ov, err := engine.ParseOverlapPolicy(s.Overlap)
	if err != nil {
		problems = multierror.Append(problems, err)
	}
	if err := problems.ErrorOrNil(); err != nil {
		return engine.Config{}, fmt.Errorf("%w: %v", engine.ErrInvalidConfiguration, joined(problems))
	}
	c := engine.Config{
		SortKey:            sk,
		Overlap:            ov,
		RequireConsistency: s.RequireConsistency,
		GapFilterRatio:     s.GapFilterRatio,
		GapFilter:          s.GapFilter,
	}
	return c, c.Validate()
}

func joined(m *multierror.Error) string {
	parts := make([]string, len(m.Errors))
	for i, e := range m.Errors {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// File is the YAML run file. Absent keys leave settings untouched.
type File struct {
	SortBy             *string  `yaml:"sort_by"`
	Overlap            *string  `yaml:"overlap"`
	RequireConsistency *bool    `yaml:"require_consistency"`
	GapFilterRatio     *float64 `yaml:"gap_filter_ratio"`
	GapFilter          *bool    `yaml:"gap_filter"`
	JoinGapRatio       *float64 `yaml:"join_gap_ratio"`
	MinScore           *int     `yaml:"min_score"`
	MinIdentity        *float64 `yaml:"min_identity"`
	Threads            *int     `yaml:"threads"`
	Format             *string  `yaml:"format"`
	Output             *string  `yaml:"output"`
}

// Load reads a YAML run file. Unknown keys are an error.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var f File
	if err := yaml.UnmarshalStrict(b, &f); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return &f, nil
}

// Apply copies every key present in f onto s, except those whose CLI flag
// locked reports as explicitly set.
func (f *File) Apply(s *Settings, locked func(flag string) bool) {
	if locked == nil {
		locked = func(string) bool { return false }
	}
	set(f.SortBy, &s.SortBy, locked("sort-by"))
	set(f.Overlap, &s.Overlap, locked("overlap"))
	set(f.RequireConsistency, &s.RequireConsistency, locked("require-consistency"))
	set(f.GapFilterRatio, &s.GapFilterRatio, locked("gap-filter-ratio"))
	set(f.GapFilter, &s.GapFilter, locked("no-gap-filter"))
	set(f.JoinGapRatio, &s.JoinGapRatio, locked("join-gap-ratio"))
	set(f.MinScore, &s.MinScore, locked("min-score"))
	set(f.MinIdentity, &s.MinIdentity, locked("min-identity"))
	set(f.Threads, &s.Threads, locked("threads") || locked("t"))
	set(f.Format, &s.Format, locked("format"))
	set(f.Output, &s.Output, locked("output") || locked("o"))
}

// set copies *v to dst when the key is present and not locked.
func set[T any](v *T, dst *T, skip bool) {
	if v != nil && !skip {
		*dst = *v
	}
}

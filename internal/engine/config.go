package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ErrInvalidConfiguration is matched (errors.Is) by every Config.Validate failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// SortKey selects the order in which the builder places hits.
type SortKey int

const (
	SortBySize SortKey = iota
	SortByScore
	SortByIdentity
)

var sortKeyNames = [...]string{"size", "score", "identity"}

func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
	return sortKeyNames[k]
}

// ParseSortKey maps "size", "score" or "identity" to a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	for i, n := range sortKeyNames {
		if strings.EqualFold(s, n) {
			return SortKey(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sort key %q (want size|score|identity)", s)
}

// OverlapPolicy says on which axes two neighbouring hits may intersect.
type OverlapPolicy int

const (
	OverlapNone OverlapPolicy = iota
	OverlapQuery
	OverlapSubject
	OverlapBoth
)

var overlapNames = [...]string{"none", "query", "subject", "both"}

func (p OverlapPolicy) String() string {
	if p < 0 || int(p) >= len(overlapNames) {
		return fmt.Sprintf("OverlapPolicy(%d)", int(p))
	}
	return overlapNames[p]
}

func (p OverlapPolicy) AllowsQuery() bool   { return p == OverlapQuery || p == OverlapBoth }
func (p OverlapPolicy) AllowsSubject() bool { return p == OverlapSubject || p == OverlapBoth }

// ParseOverlapPolicy maps "none", "query", "subject" or "both" to a policy.
func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	for i, n := range overlapNames {
		if strings.EqualFold(s, n) {
			return OverlapPolicy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown overlap policy %q (want none|query|subject|both)", s)
}

// Config is the run-scoped engine configuration.
type Config struct {
	SortKey            SortKey
	Overlap            OverlapPolicy
	RequireConsistency bool    // intersecting neighbours must still be order-consistent
	GapFilterRatio     float64 // allowed gap as a fraction of the neighbouring hit length
	GapFilter          bool    // run the gap-based splitter
}

// DefaultConfig returns size ordering, no overlaps and the splitter on at ratio 1.
func DefaultConfig() Config {
	return Config{
		SortKey:            SortBySize,
		Overlap:            OverlapNone,
		RequireConsistency: true,
		GapFilterRatio:     1.0,
		GapFilter:          true,
	}
}

// ConfigError lists every problem found by Validate.
type ConfigError struct {
	problems *multierror.Error
}

func (e *ConfigError) Error() string {
	return ErrInvalidConfiguration.Error() + ": " + e.problems.Error()
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfiguration }

func (e *ConfigError) Unwrap() error { return e.problems }

// Problems returns the individual validation failures.
func (e *ConfigError) Problems() []error { return e.problems.WrappedErrors() }

// Validate checks c once, before any hit is processed.
func (c Config) Validate() error {
	var problems *multierror.Error
	if c.SortKey < SortBySize || c.SortKey > SortByIdentity {
		problems = multierror.Append(problems, fmt.Errorf("unknown sort key %v", c.SortKey))
	}
	if c.Overlap < OverlapNone || c.Overlap > OverlapBoth {
		problems = multierror.Append(problems, fmt.Errorf("unknown overlap policy %v", c.Overlap))
	}
	switch {
	case math.IsNaN(c.GapFilterRatio) || math.IsInf(c.GapFilterRatio, 0):
		problems = multierror.Append(problems, fmt.Errorf("gap filter ratio must be finite, got %v", c.GapFilterRatio))
	case c.GapFilterRatio < 0:
		problems = multierror.Append(problems, fmt.Errorf("gap filter ratio must be >= 0, got %v", c.GapFilterRatio))
	}
	if problems == nil {
		return nil
	}
	problems.ErrorFormat = joinProblems
	return &ConfigError{problems: problems}
}

func joinProblems(es []error) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

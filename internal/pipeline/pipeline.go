package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"compart/internal/engine"
	"compart/internal/hit"
	"compart/internal/metrics"
)

// Config controls the group worker pool.
type Config struct {
	Threads int                // number of worker goroutines (>=1)
	Logger  logrus.FieldLogger // nil discards
	Metrics *metrics.Run       // nil records nothing
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Compartmentalize groups hits, runs eng on every group with up to
// cfg.Threads workers and returns all compartments ranked by engine.Rank.
// Results do not depend on the number of workers. Cancellation is checked
// before each group starts; the first error (ctx.Err()) is returned.
func Compartmentalize(ctx context.Context, cfg Config, hits []hit.Hit, eng Compartmenter) ([]engine.Compartment, engine.Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	log := cfg.logger()
	groups := hit.GroupByPair(hits)

	type slot struct {
		cs []engine.Compartment
		st engine.Stats
	}
	slots := make([]slot, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	for i := range groups {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			cs, st := eng.Group(groups[i])
			d := time.Since(start)
			cfg.Metrics.ObserveGroup(st, d)
			log.WithFields(logrus.Fields{
				"action":       "group",
				"query":        groups[i].Key.QueryID,
				"subject":      groups[i].Key.SubjectID,
				"strand":       groups[i].Key.SubjectStrand.String(),
				"hits":         st.Hits,
				"compartments": st.Compartments,
				"took":         d,
			}).Debug("group done")
			slots[i] = slot{cs: cs, st: st}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, engine.Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, engine.Stats{}, err
	}

	var (
		all []engine.Compartment
		st  engine.Stats
	)
	for _, s := range slots {
		all = append(all, s.cs...)
		st.Add(s.st)
	}
	engine.Rank(all)
	return all, st, nil
}

// ForEachCompartment streams ranked compartments to visit, stopping at the
// first error visit returns.
func ForEachCompartment(
	ctx context.Context,
	cfg Config,
	hits []hit.Hit,
	eng Compartmenter,
	visit func(engine.Compartment) error,
) (engine.Stats, error) {
	cs, st, err := Compartmentalize(ctx, cfg, hits, eng)
	if err != nil {
		return st, err
	}
	for _, c := range cs {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		if err := visit(c); err != nil {
			return st, err
		}
	}
	return st, nil
}

package cmdutil

import (
	"context"

	"compart/internal/engine"
	"compart/internal/hit"
	"compart/internal/pipeline"
)

// RunStream runs the shared pipeline, applies a visitor to each ranked
// compartment, and streams kept results via send. rank is 1-based and counts
// every compartment, kept or not. It returns the number of kept outputs, the
// engine stats and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	hits []hit.Hit,
	eng pipeline.Compartmenter,
	visit func(rank int, c engine.Compartment) (bool, T, error),
	send func(T) error,
) (int, engine.Stats, error) {
	total, rank := 0, 0
	st, err := pipeline.ForEachCompartment(ctx, cfg, hits, eng, func(c engine.Compartment) error {
		rank++
		keep, out, vErr := visit(rank, c)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, st, err
}

package stages

import (
	"context"

	"github.com/clampline/tenantctl/pkg/types"
)

// Stage represents a pipeline stage that processes input of type I and
// produces output of type O. It takes a context for cancellation, a
// slice of options for configuration, and an input channel of type I.
type Stage[I any, O any] func(ctx context.Context, opts []*types.Option, in <-chan I) <-chan O

// Chain composes two stages into one, feeding the output channel of
// the first into the second. Type compatibility is enforced at compile
// time by the type parameters.
func Chain[I any, M any, O any](first Stage[I, M], second Stage[M, O]) Stage[I, O] {
	return func(ctx context.Context, opts []*types.Option, in <-chan I) <-chan O {
		return second(ctx, opts, first(ctx, opts, in))
	}
}

// Generator converts a fixed input slice into the channel a pipeline's
// first stage consumes. The channel is closed once drained.
func Generator[T any](inputs []T) <-chan T {
	out := make(chan T, len(inputs))
	for _, input := range inputs {
		out <- input
	}
	close(out)
	return out
}

// Map lifts a per-item function into a stage. Items for which fn
// returns an error are dropped after onErr is invoked, so one bad item
// never aborts the rest of the pipeline.
func Map[I any, O any](fn func(ctx context.Context, opts []*types.Option, item I) (O, error), onErr func(I, error)) Stage[I, O] {
	return func(ctx context.Context, opts []*types.Option, in <-chan I) <-chan O {
		out := make(chan O)
		go func() {
			defer close(out)
			for item := range in {
				result, err := fn(ctx, opts, item)
				if err != nil {
					if onErr != nil {
						onErr(item, err)
					}
					continue
				}
				select {
				case out <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	}
}

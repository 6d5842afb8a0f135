package stages

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clampline/tenantctl/pkg/types"
)

func collect[T any](ch <-chan T) []T {
	var out []T
	for v := range ch {
		out = append(out, v)
	}
	return out
}

func TestGeneratorDrainsInputOrder(t *testing.T) {
	got := collect(Generator([]int{3, 1, 2}))
	assert.Equal(t, []int{3, 1, 2}, got)
}

func TestMapTransformsEveryItem(t *testing.T) {
	double := Map(func(ctx context.Context, _ []*types.Option, n int) (int, error) {
		return n * 2, nil
	}, nil)

	got := collect(double(context.Background(), nil, Generator([]int{1, 2, 3})))
	assert.Equal(t, []int{2, 4, 6}, got)
}

func TestMapDropsFailingItemsAndReportsThem(t *testing.T) {
	var failed []string
	parse := Map(func(ctx context.Context, _ []*types.Option, s string) (int, error) {
		return strconv.Atoi(s)
	}, func(s string, err error) {
		failed = append(failed, s)
	})

	got := collect(parse(context.Background(), nil, Generator([]string{"1", "nope", "3"})))
	assert.Equal(t, []int{1, 3}, got)
	assert.Equal(t, []string{"nope"}, failed)
}

func TestChainComposesStages(t *testing.T) {
	parse := Map(func(ctx context.Context, _ []*types.Option, s string) (int, error) {
		return strconv.Atoi(s)
	}, nil)
	label := Map(func(ctx context.Context, _ []*types.Option, n int) (string, error) {
		return fmt.Sprintf("item-%d", n), nil
	}, nil)

	pipeline := Chain(parse, label)
	got := collect(pipeline(context.Background(), nil, Generator([]string{"7", "8"})))
	require.Equal(t, []string{"item-7", "item-8"}, got)
}

func TestMapStopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := Map(func(ctx context.Context, _ []*types.Option, n int) (int, error) {
		return n, nil
	}, nil)

	// unbuffered output plus a cancelled context: the stage must close
	// its channel instead of blocking on the send
	out := slow(ctx, nil, Generator([]int{1, 2, 3}))
	got := collect(out)
	assert.LessOrEqual(t, len(got), 3)
}

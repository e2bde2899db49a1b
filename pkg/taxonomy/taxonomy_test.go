package taxonomy_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/taxonomy"
)

const seed = `
borough:
  - code: VM
    label: {fr: Ville-Marie}
  - code: RDP
projectType:
  - code: integrated
  - code: nonIntegrated
`

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src, err := taxonomy.LoadYAML(strings.NewReader(seed))
	require.NoError(t, err)

	codes, err := src.Codes(ctx, taxonomy.GroupBorough)
	require.NoError(t, err)
	assert.Equal(t, []string{"VM", "RDP"}, codes)
	assert.Equal(t, []taxonomy.Group{taxonomy.GroupBorough, taxonomy.GroupProjectType}, src.Groups())

	codes, err = src.Codes(ctx, taxonomy.GroupExecutor)
	require.NoError(t, err)
	assert.Empty(t, codes)

	_, err = taxonomy.LoadYAML(strings.NewReader("borough:\n  - label: {fr: x}\n"))
	require.ErrorIs(t, err, taxonomy.ErrInvalidSeed)

	_, err = taxonomy.LoadYAML(strings.NewReader("borough: [\n"))
	require.ErrorIs(t, err, taxonomy.ErrInvalidSeed)

	empty, err := taxonomy.LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Groups())
}

type countingSource struct {
	calls atomic.Int32
	codes map[taxonomy.Group][]string
	err   error
}

func (s *countingSource) Codes(_ context.Context, group taxonomy.Group) ([]string, error) {
	s.calls.Add(1)
	time.Sleep(time.Millisecond)
	return s.codes[group], s.err
}

// gatedSource blocks every load until release is closed and fails loads
// whose context was cancelled meanwhile.
type gatedSource struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *gatedSource) Codes(ctx context.Context, _ taxonomy.Group) ([]string, error) {
	s.once.Do(func() { close(s.started) })
	<-s.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []string{"VM"}, nil
}

func TestCachedSharedLoadOutlivesCaller(t *testing.T) {
	t.Parallel()

	src := &gatedSource{started: make(chan struct{}), release: make(chan struct{})}
	cached := taxonomy.NewCached(src, 8, time.Hour)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cached.Codes(first, taxonomy.GroupBorough)
		firstErr <- err
	}()
	<-src.started

	type outcome struct {
		codes []string
		err   error
	}
	second := make(chan outcome, 1)
	go func() {
		codes, err := cached.Codes(context.Background(), taxonomy.GroupBorough)
		second <- outcome{codes, err}
	}()
	time.Sleep(10 * time.Millisecond)

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)
	close(src.release)

	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, []string{"VM"}, got.codes)
}

func TestCached(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := &countingSource{codes: map[taxonomy.Group][]string{taxonomy.GroupBorough: {"VM"}}}
	cached := taxonomy.NewCached(src, 8, time.Hour)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes, err := cached.Codes(ctx, taxonomy.GroupBorough)
			assert.NoError(t, err)
			assert.Equal(t, []string{"VM"}, codes)
		}()
	}
	wg.Wait()
	calls := src.calls.Load()
	assert.LessOrEqual(t, calls, int32(10))

	_, err := cached.Codes(ctx, taxonomy.GroupBorough)
	require.NoError(t, err)
	assert.Equal(t, calls, src.calls.Load(), "served from cache")

	cached.Invalidate(taxonomy.GroupBorough)
	_, err = cached.Codes(ctx, taxonomy.GroupBorough)
	require.NoError(t, err)
	assert.Equal(t, calls+1, src.calls.Load())

	cached.Invalidate()
	_, err = cached.Codes(ctx, taxonomy.GroupBorough)
	require.NoError(t, err)
	assert.Equal(t, calls+2, src.calls.Load())
}

func TestCachedDoesNotKeepErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := &countingSource{err: errors.New("redis down")}
	cached := taxonomy.NewCached(src, 8, 0)

	_, err := cached.Codes(ctx, taxonomy.GroupBorough)
	require.Error(t, err)
	_, err = cached.Codes(ctx, taxonomy.GroupBorough)
	require.Error(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestValidator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	v := taxonomy.NewValidator(taxonomy.NewMemorySource(map[taxonomy.Group][]string{
		taxonomy.GroupBorough:     {"VM", "RDP"},
		taxonomy.GroupProjectType: {"integrated"},
	}))

	t.Run("known codes", func(t *testing.T) {
		t.Parallel()

		res := v.Check(ctx,
			taxonomy.Ref{Target: "boroughId", Group: taxonomy.GroupBorough, Value: "VM"},
			taxonomy.Ref{Target: "boroughIds", Group: taxonomy.GroupBorough, Value: []string{"VM", "RDP"}},
			taxonomy.Ref{Target: "typeId", Group: taxonomy.GroupProjectType, Value: nil},
			taxonomy.Ref{Target: "executorId", Group: taxonomy.GroupExecutor, Value: ""},
		)
		assert.True(t, res.IsSuccess())
	})

	t.Run("unknown codes", func(t *testing.T) {
		t.Parallel()

		res := v.Check(ctx,
			taxonomy.Ref{Target: "boroughId", Group: taxonomy.GroupBorough, Value: "XX"},
			taxonomy.Ref{Target: "typeId", Group: taxonomy.GroupProjectType, Value: []string{"integrated", "other"}},
		)
		require.True(t, res.IsFailure())

		failures := res.Failures()
		require.Len(t, failures, 2)
		assert.Equal(t, core.CodeTaxonomy, failures[0].Code)
		assert.Equal(t, "boroughId 'XX' is not a valid borough", failures[0].Message)
		assert.Equal(t, "typeId", failures[1].Target)
	})

	t.Run("source errors are unexpected", func(t *testing.T) {
		t.Parallel()

		broken := taxonomy.NewValidator(&countingSource{err: errors.New("redis down")})
		res := broken.Check(ctx, taxonomy.Ref{Target: "boroughId", Group: taxonomy.GroupBorough, Value: "VM"})
		require.True(t, res.IsFailure())
		assert.Equal(t, core.CodeUnexpected, res.Failures()[0].Code)
	})
}

package pipe

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Philanthropists/resolve/internal/logging"
	"github.com/Philanthropists/resolve/pkg/resolve"
)

func generate[T any](values ...T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, v := range values {
			out <- v
		}
	}()
	return out
}

func collect[T any](in <-chan T) []T {
	var values []T
	for v := range in {
		values = append(values, v)
	}
	return values
}

func parse(s string) (int, error) {
	if s == "panic" {
		panic(s)
	}
	return strconv.Atoi(s)
}

func Test_MapCapturesMapperFailures(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	results := collect(Map(done, generate("1", "x", "panic", "4"), parse))
	require.Len(t, results, 4)

	assert.Equal(t, 1, results[0].Value())

	var numErr *strconv.NumError
	assert.ErrorAs(t, results[1].Err(), &numErr)

	assert.EqualError(t, results[2].Err(), `An error of type "string" was thrown: panic`)

	assert.Equal(t, 4, results[3].Value())
}

func Test_ConcurrentMapProcessesEveryValue(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	in := generate("1", "2", "3", "4", "5", "panic")
	values := collect(IgnoreOnError(done, ConcurrentMap(done, 3, in, parse)))

	sort.Ints(values)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, values)
}

func Test_ConcurrentMapWithoutCoroutinesUsesOne(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	results := collect(ConcurrentMap(done, 0, generate("7"), parse))

	require.Len(t, results, 1)
	assert.Equal(t, 7, results[0].Value())
}

func Test_OnErrorHandsFailuresToHandler(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	failure := errors.New("failure")
	in := generate(resolve.Ok(1), resolve.Fail[int](failure), resolve.Ok(3))

	errs := make(chan error, 1)
	values := collect(OnError(done, in, func(err error) {
		errs <- err
	}))

	assert.Equal(t, []int{1, 3}, values)
	assert.Same(t, failure, <-errs)
}

func Test_LogErrorsLogsEveryFailure(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	core, logs := observer.New(zapcore.WarnLevel)
	ctx, cancel := context.WithCancel(WithLogger(context.Background(), zap.New(core)))
	defer cancel()

	values := collect(LogErrors(ctx, Map(done, generate("1", "x", "panic"), parse)))
	assert.Equal(t, []int{1}, values)

	assert.Eventually(t, func() bool {
		return logs.Len() == 2
	}, time.Second, 10*time.Millisecond)

	thrown := logs.FilterField(zap.String("thrown_type", "string")).All()
	require.Len(t, thrown, 1)
	assert.Equal(t, "pipeline stage failed", thrown[0].Message)
	assert.Equal(t, "panic", thrown[0].ContextMap()["thrown_value"])
}

func Test_LogErrorsFallsBackToDefaultLogger(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	ctx := WithLogger(context.Background(), nil)
	assert.Equal(t, context.Background(), ctx)

	var failed atomic.Bool
	results := Map(done, generate("x", "2"), func(s string) (int, error) {
		v, err := parse(s)
		if err != nil {
			failed.Store(true)
		}
		return v, err
	})

	values := collect(LogErrors(ctx, results))

	assert.Equal(t, []int{2}, values)
	assert.True(t, failed.Load())
	assert.Same(t, logging.New(), logging.FromContext(ctx))
}

func Test_FanInMergesChannels(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	values := collect(FanIn(done, generate(1, 2), generate(3), generate[int]()))

	sort.Ints(values)
	assert.Equal(t, []int{1, 2, 3}, values)
}

func Test_TeeDuplicatesStream(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	a, b := Tee(done, generate(1, 2, 3))

	var fromA, fromB []int
	for a != nil || b != nil {
		select {
		case v, ok := <-a:
			if !ok {
				a = nil
				continue
			}
			fromA = append(fromA, v)
		case v, ok := <-b:
			if !ok {
				b = nil
				continue
			}
			fromB = append(fromB, v)
		}
	}

	assert.Equal(t, []int{1, 2, 3}, fromA)
	assert.Equal(t, []int{1, 2, 3}, fromB)
}

func Test_WaitClosedReturnsOnDone(t *testing.T) {
	done := make(chan struct{})
	close(done)

	var pending <-chan int = make(chan int)
	WaitClosed(done, pending)
	WaitClosed[int](done, nil)
}

func Test_AsyncResultSettlesThroughResolve(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	ctx := context.Background()

	value, err := resolve.Async[int](ctx, AsyncResult(done, func() (int, error) {
		return parse("42")
	})).Unwrap()
	assert.NoError(t, err)
	assert.Equal(t, 42, value)

	_, err = resolve.Async[int](ctx, AsyncResult(done, func() (int, error) {
		panic(42)
	})).Unwrap()
	assert.EqualError(t, err, `An error of type "number" was thrown: 42`)
}

func Test_FutureIsConsumedOnce(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	f := AsyncResult(done, func() (string, error) {
		return "once", nil
	})

	value, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "once", value)

	_, err = f.Await(context.Background())
	assert.ErrorIs(t, err, ErrUnsettled)
	assert.True(t, Error.Has(err))
}

func Test_FutureDropsResultAfterDone(t *testing.T) {
	done := make(chan struct{})
	close(done)

	f := AsyncResult(done, func() (int, error) {
		return 1, nil
	})

	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, ErrUnsettled)
}

func Test_FutureAwaitHonoursContext(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	release := make(chan struct{})
	defer close(release)

	f := AsyncResult(done, func() (int, error) {
		<-release
		return 0, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := resolve.Async[int](ctx, f).Unwrap()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

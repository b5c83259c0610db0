package panel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type kindErr struct{ kind string }

func (e *kindErr) Error() string { return e.kind + " failure" }
func (e *kindErr) Kind() string  { return e.kind }

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func waitCtx(t *testing.T, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}

func TestNew_StartsLoading(t *testing.T) {
	p := New[[]int]("volume", LoaderFunc[[]int](func(ctx context.Context) ([]int, error) {
		return []int{1}, nil
	}))

	snap := p.Snapshot()
	assert.Equal(t, Loading, snap.State)
	assert.Nil(t, snap.Data)
	assert.Equal(t, "volume", snap.Name)
}

func TestMount_Success(t *testing.T) {
	p := New[[]int]("volume", LoaderFunc[[]int](func(ctx context.Context) ([]int, error) {
		return []int{1, 2, 3}, nil
	}))
	p.Mount(context.Background())

	snap := p.Wait(waitCtx(t, time.Second))
	assert.Equal(t, Ready, snap.State)
	assert.Equal(t, []int{1, 2, 3}, snap.Data)
}

func TestMount_NeverResolvingStaysLoading(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	p := New[string]("hang", LoaderFunc[string](func(ctx context.Context) (string, error) {
		<-release
		return "late", nil
	}))
	p.Mount(context.Background())

	snap := p.Wait(waitCtx(t, 50*time.Millisecond))
	assert.Equal(t, Loading, snap.State)
	assert.Equal(t, "", snap.Data)

	select {
	case <-p.Done():
		t.Fatal("panel settled without a result")
	default:
	}
	p.Unmount()
}

func TestMount_FailureLogsOnceAndEndsEmpty(t *testing.T) {
	logger, logs := observed()

	p := New[[]int]("gas", LoaderFunc[[]int](func(ctx context.Context) ([]int, error) {
		return []int{9}, &kindErr{kind: "status"}
	}), WithLogger(logger))
	p.Mount(context.Background())

	snap := p.Wait(waitCtx(t, time.Second))
	require.Equal(t, Empty, snap.State)
	assert.Nil(t, snap.Data, "data stays at its zero value on failure")
	<-p.finished

	warns := logs.FilterLevelExact(zapcore.WarnLevel)
	require.Equal(t, 1, warns.Len())
	fields := warns.All()[0].ContextMap()
	assert.Equal(t, "gas", fields["panel"])
	assert.Equal(t, "status", fields["kind"])
}

func TestMount_PlainErrorIsUnknownKind(t *testing.T) {
	logger, logs := observed()

	p := New[int]("x", LoaderFunc[int](func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	}), WithLogger(logger))
	p.Mount(context.Background())
	p.Wait(waitCtx(t, time.Second))
	<-p.finished

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "unknown", warns[0].ContextMap()["kind"])
}

func TestMount_PanicIsFailure(t *testing.T) {
	logger, logs := observed()

	p := New[int]("panicky", LoaderFunc[int](func(ctx context.Context) (int, error) {
		panic("bad loader")
	}), WithLogger(logger))
	p.Mount(context.Background())

	snap := p.Wait(waitCtx(t, time.Second))
	<-p.finished
	assert.Equal(t, Empty, snap.State)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestMount_OnlyOnce(t *testing.T) {
	var calls atomic.Int32
	p := New[int]("once", LoaderFunc[int](func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	}))

	p.Mount(context.Background())
	p.Mount(context.Background())
	p.Wait(waitCtx(t, time.Second))
	p.Mount(context.Background())
	<-p.finished

	assert.Equal(t, int32(1), calls.Load())
}

func TestUnmount_DiscardsLateResult(t *testing.T) {
	logger, logs := observed()
	started := make(chan struct{})
	release := make(chan struct{})

	p := New[string]("late", LoaderFunc[string](func(ctx context.Context) (string, error) {
		close(started)
		<-release
		return "", &kindErr{kind: "transport"}
	}), WithLogger(logger))
	p.Mount(context.Background())
	<-started

	p.Unmount()
	close(release)
	<-p.finished

	snap := p.Snapshot()
	assert.Equal(t, Loading, snap.State, "late result must not change state")
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.WarnLevel).Len(), "no failure diagnostic after unmount")
	assert.Equal(t, 1, logs.FilterMessage("panel result discarded after unmount").Len())
}

func TestUnmount_CancelsLoadContext(t *testing.T) {
	cancelled := make(chan struct{})
	p := New[int]("cancel", LoaderFunc[int](func(ctx context.Context) (int, error) {
		<-ctx.Done()
		close(cancelled)
		return 0, ctx.Err()
	}))
	p.Mount(context.Background())
	p.Unmount()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("load context was not cancelled by Unmount")
	}
	<-p.Done()
}

func TestUnmount_BeforeMount(t *testing.T) {
	var calls atomic.Int32
	p := New[int]("never", LoaderFunc[int](func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	}))
	p.Unmount()
	p.Mount(context.Background())

	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, Loading, p.Snapshot().State)
}

func TestParentContextEnd_DiscardsResult(t *testing.T) {
	logger, logs := observed()
	ctx, cancel := context.WithCancel(context.Background())

	p := New[int]("abandoned", LoaderFunc[int](func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}), WithLogger(logger))
	p.Mount(ctx)
	cancel()
	<-p.finished

	assert.Equal(t, Loading, p.Snapshot().State)
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestPanels_AreIndependent(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	slow := New[int]("slow", LoaderFunc[int](func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	}))
	failing := New[int]("failing", LoaderFunc[int](func(ctx context.Context) (int, error) {
		return 0, &kindErr{kind: "payload"}
	}))
	fast := New[int]("fast", LoaderFunc[int](func(ctx context.Context) (int, error) {
		return 42, nil
	}))

	for _, m := range []interface{ Mount(context.Context) }{slow, failing, fast} {
		m.Mount(context.Background())
	}

	assert.Equal(t, Ready, fast.Wait(waitCtx(t, time.Second)).State)
	assert.Equal(t, Empty, failing.Wait(waitCtx(t, time.Second)).State)
	assert.Equal(t, Loading, slow.Snapshot().State)
	slow.Unmount()
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "empty", Empty.String())
	b, err := Ready.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ready", string(b))
}

// Package panel implements the async resource panel: a unit that loads one
// resource from a Loader, starts in the Loading state, and settles exactly
// once into Ready (with data) or Empty (after logging one diagnostic).
//
// A panel never retries and never times out on its own. A loader that never
// returns keeps the panel Loading until it is unmounted. A result that
// arrives after Unmount, or after the mount context ends, is discarded.
package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/stratametrics/internal/app/system/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the lifecycle state of a panel.
type State int

const (
	Loading State = iota
	Ready
	Empty
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText renders the state name in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Loader fetches the resource behind a panel.
type Loader[T any] interface {
	Load(ctx context.Context) (T, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc[T any] func(ctx context.Context) (T, error)

// Load calls f(ctx).
func (f LoaderFunc[T]) Load(ctx context.Context) (T, error) {
	return f(ctx)
}

// Snapshot is a point-in-time view of a panel.
type Snapshot[T any] struct {
	Name  string `json:"name"`
	State State  `json:"state"`
	Data  T      `json:"data"`
}

// Option configures a panel.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for the failure diagnostic.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Panel is one async resource panel. It is safe for concurrent use.
type Panel[T any] struct {
	name   string
	id     string
	loader Loader[T]
	logger *zap.Logger

	mu        sync.Mutex
	state     State
	data      T
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc
	started   time.Time

	done      chan struct{} // closed when settled or unmounted
	closeDone sync.Once
	finished  chan struct{} // closed when the load goroutine exits
}

// New creates a panel in the Loading state. Nothing is fetched until Mount.
func New[T any](name string, loader Loader[T], opts ...Option) *Panel[T] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Panel[T]{
		name:     name,
		id:       uuid.NewString(),
		loader:   loader,
		logger:   o.logger,
		state:    Loading,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Name returns the panel name.
func (p *Panel[T]) Name() string { return p.name }

// Mount starts the single load on its own goroutine. The load runs under a
// context derived from ctx that ends on Unmount. Calls after the first, or
// after Unmount, do nothing.
func (p *Panel[T]) Mount(ctx context.Context) {
	p.mu.Lock()
	if p.mounted || p.unmounted {
		p.mu.Unlock()
		return
	}
	p.mounted = true
	loadCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.started = time.Now()
	p.mu.Unlock()

	go p.load(loadCtx)
}

// Unmount tears the panel down: the in-flight load is cancelled and any
// late result is dropped. The state stays whatever it was.
func (p *Panel[T]) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unmounted {
		return
	}
	p.unmounted = true
	if p.cancel != nil {
		p.cancel()
	}
	p.closeDoneLocked()
}

// Snapshot returns the current state and data.
func (p *Panel[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot[T]{Name: p.name, State: p.state, Data: p.data}
}

// Done is closed once the panel has settled or been unmounted.
func (p *Panel[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the panel settles, is unmounted, or ctx ends, and then
// returns the current snapshot. A panel that is still loading when ctx ends
// is reported as Loading.
func (p *Panel[T]) Wait(ctx context.Context) Snapshot[T] {
	select {
	case <-p.done:
	case <-ctx.Done():
	}
	return p.Snapshot()
}

func (p *Panel[T]) load(ctx context.Context) {
	defer close(p.finished)

	data, err := p.safeLoad(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.started)

	if p.unmounted || ctx.Err() != nil {
		p.unmounted = true
		p.closeDoneLocked()
		metrics.ObservePanel(p.name, metrics.OutcomeDiscarded, elapsed)
		p.logger.Debug("panel result discarded after unmount",
			zap.String("panel", p.name),
			zap.String("panel_id", p.id),
			zap.Duration("duration", elapsed))
		return
	}
	p.cancel()

	if err != nil {
		p.state = Empty
		metrics.ObservePanel(p.name, metrics.OutcomeEmpty, elapsed)
		p.logger.Warn("panel load failed",
			zap.String("panel", p.name),
			zap.String("panel_id", p.id),
			zap.String("kind", kindOf(err)),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		p.closeDoneLocked()
		return
	}

	p.data = data
	p.state = Ready
	metrics.ObservePanel(p.name, metrics.OutcomeReady, elapsed)
	p.closeDoneLocked()
}

// safeLoad runs the loader and converts a panic into an error.
func (p *Panel[T]) safeLoad(ctx context.Context) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			data = zero
			err = fmt.Errorf("panel %s: loader panicked: %v", p.name, r)
		}
	}()
	return p.loader.Load(ctx)
}

func (p *Panel[T]) closeDoneLocked() {
	p.closeDone.Do(func() { close(p.done) })
}

// kindOf reports the failure kind carried by err, or "unknown".
func kindOf(err error) string {
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "unknown"
}

package fftpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-mixcheck/dsp/fft"
	"github.com/cwbudde/algo-mixcheck/logging"
)

var (
	// ErrAlreadySpawned is returned by a second Spawn.
	ErrAlreadySpawned = errors.New("fftpool: already spawned")
	// ErrShutdown is returned by Spawn after Shutdown.
	ErrShutdown = errors.New("fftpool: pool is shut down")
	// ErrWorkerPanic marks a task whose worker panicked.
	ErrWorkerPanic = errors.New("fftpool: worker panic")
)

// Task is a transform request.
type Task struct {
	ID     uint64
	Signal []float64
}

// Result answers the Task with the same ID.
type Result struct {
	ID       uint64
	Spectrum *fft.Spectrum
	Err      error
	// Fallback is set when the caller computed the transform itself.
	Fallback bool
}

// Stats counts pool activity.
type Stats struct {
	Dispatched uint64
	Completed  uint64 // answered by a worker
	Fallbacks  uint64 // computed by the caller
	Timeouts   uint64
	Panics     uint64
}

type state int32

const (
	stateIdle state = iota
	stateRunning
	stateStopped
)

// Pool is a fixed set of FFT workers. Create it with New, start it with
// Spawn and stop it with Shutdown. All methods are safe for concurrent use.
type Pool struct {
	cfg Config
	log logging.Logger

	tasks chan Task
	done  chan struct{}
	wg    sync.WaitGroup

	state    atomic.Int32
	stopOnce sync.Once
	nextID   atomic.Uint64

	mu      sync.Mutex
	pending map[uint64]chan Result

	// work computes one transform on a worker; tests replace it.
	work func(*fft.Transformer, []float64) (*fft.Spectrum, error)

	dispatched, completed, fallbacks, timeouts, panics atomic.Uint64
}

// New returns an idle pool.
func New(opts ...Option) *Pool {
	cfg := ApplyOptions(opts...)

	return &Pool{
		cfg:     cfg,
		log:     cfg.Logger.WithFields(logging.Fields{"component": "fftpool"}),
		tasks:   make(chan Task, cfg.QueueSize),
		done:    make(chan struct{}),
		pending: make(map[uint64]chan Result),
		work:    (*fft.Transformer).Transform,
	}
}

// Config returns the effective configuration.
func (p *Pool) Config() Config {
	return p.cfg
}

// Spawn starts the workers.
func (p *Pool) Spawn() error {
	if !p.state.CompareAndSwap(int32(stateIdle), int32(stateRunning)) {
		if state(p.state.Load()) == stateStopped {
			return ErrShutdown
		}

		return ErrAlreadySpawned
	}

	p.wg.Add(p.cfg.Workers)

	for range p.cfg.Workers {
		go p.worker()
	}

	p.log.Debug("workers spawned", logging.Fields{"workers": p.cfg.Workers})

	return nil
}

// Shutdown stops the workers and waits for them to exit. Callers waiting
// on a result fall back to a synchronous transform. Shutdown is
// idempotent.
func (p *Pool) Shutdown() {
	p.stopOnce.Do(func() {
		p.state.Store(int32(stateStopped))
		close(p.done)
		p.wg.Wait()
		p.log.Debug("workers stopped", logging.Fields{"stats": p.Stats()})
	})
}

// ShutdownOnDone shuts the pool down once ctx is done, typically a
// context from signal.NotifyContext.
func (p *Pool) ShutdownOnDone(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
			p.Shutdown()
		case <-p.done:
		}
	}()
}

// Running reports whether workers accept tasks.
func (p *Pool) Running() bool {
	return state(p.state.Load()) == stateRunning
}

// Stats returns a snapshot of the counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Dispatched: p.dispatched.Load(),
		Completed:  p.completed.Load(),
		Fallbacks:  p.fallbacks.Load(),
		Timeouts:   p.timeouts.Load(),
		Panics:     p.panics.Load(),
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	tr := fft.NewTransformer()

	for {
		select {
		case <-p.done:
			return
		case task := <-p.tasks:
			p.deliver(p.run(tr, task))
		}
	}
}

func (p *Pool) run(tr *fft.Transformer, task Task) (res Result) {
	res.ID = task.ID

	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			res.Spectrum = nil
			res.Err = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
		}
	}()

	res.Spectrum, res.Err = p.work(tr, task.Signal)

	return res
}

// deliver routes a result to its waiting caller. Results whose caller has
// given up are dropped.
func (p *Pool) deliver(res Result) {
	p.mu.Lock()
	ch, ok := p.pending[res.ID]
	delete(p.pending, res.ID)
	p.mu.Unlock()

	if ok {
		ch <- res
	}
}

func (p *Pool) register() (uint64, chan Result) {
	id := p.nextID.Add(1)
	ch := make(chan Result, 1)

	p.mu.Lock()
	p.pending[id] = ch
	p.mu.Unlock()

	return id, ch
}

func (p *Pool) unregister(id uint64) {
	p.mu.Lock()
	delete(p.pending, id)
	p.mu.Unlock()
}

// Dispatch sends x to a worker and waits for the answer. On timeout, a
// full queue, a stopped pool or a worker panic the transform is computed
// in the calling goroutine. Input validation errors are returned as is.
// Cancelling ctx abandons the wait and returns ctx.Err().
func (p *Pool) Dispatch(ctx context.Context, x []float64) Result {
	if err := fft.ValidateSize(len(x)); err != nil {
		return Result{Err: err}
	}

	if !p.Running() {
		return p.fallback(0, x, "not running")
	}

	id, ch := p.register()
	p.dispatched.Add(1)

	select {
	case p.tasks <- Task{ID: id, Signal: x}:
	default:
		p.unregister(id)
		return p.fallback(id, x, "queue full")
	}

	timer := time.NewTimer(p.cfg.Timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if errors.Is(res.Err, ErrWorkerPanic) {
			p.log.Warn("worker panicked", logging.Fields{"task": id, "error": res.Err.Error()})
			return p.fallback(id, x, "worker panic")
		}

		p.completed.Add(1)

		return res
	case <-timer.C:
		p.unregister(id)
		p.timeouts.Add(1)

		return p.fallback(id, x, "timeout")
	case <-p.done:
		p.unregister(id)
		return p.fallback(id, x, "shutdown")
	case <-ctx.Done():
		p.unregister(id)
		return Result{ID: id, Err: ctx.Err()}
	}
}

func (p *Pool) fallback(id uint64, x []float64, reason string) Result {
	p.fallbacks.Add(1)
	p.log.Debug("synchronous fallback", logging.Fields{"task": id, "reason": reason, "size": len(x)})

	sp, err := fft.NewTransformer().Transform(x)

	return Result{ID: id, Spectrum: sp, Err: err, Fallback: true}
}

// Transform returns the spectrum of x, computed by a worker when possible.
func (p *Pool) Transform(ctx context.Context, x []float64) (*fft.Spectrum, error) {
	res := p.Dispatch(ctx, x)
	return res.Spectrum, res.Err
}

// TransformFrames transforms every frame and returns the spectra in frame
// order. At most QueueSize frames are in flight at once. It implements
// fft.FrameTransformer.
func (p *Pool) TransformFrames(ctx context.Context, frames [][]float64) ([]*fft.Spectrum, error) {
	out := make([]*fft.Spectrum, len(frames))
	errs := make([]error, len(frames))
	sem := make(chan struct{}, p.cfg.QueueSize)

	var wg sync.WaitGroup

	for i, frame := range frames {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			out[i], errs[i] = p.Transform(ctx, frame)
		}()
	}

	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("fftpool: %w", err)
	}

	return out, nil
}

var _ fft.FrameTransformer = (*Pool)(nil)

// Package flock owns the agents and runs the per-tick update:
// rebuild the spatial grid, evaluate every boid in parallel against a frozen
// snapshot, then commit all results at once.
package flock

import (
	"errors"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/spatial"
)

// FrameSource reports the current size of the surface the flock lives on.
// Windows get resized, so the Flock asks before every tick.
type FrameSource interface {
	FrameSize() (width, height float64)
}

// worker is the private scratch of one parallel unit.
type worker struct {
	rng        *rand.Rand
	candidates []int
}

// Flock is the tick orchestrator. It is not safe for concurrent use:
// one goroutine calls Step, and reads agents between steps.
type Flock struct {
	params   Params
	settings behavior.Settings
	store    *Store
	grid     *spatial.Grid
	next     []behavior.State
	workers  []worker
	frame    FrameSource
	ticks    uint64
}

// Option configures a Flock.
type Option func(*Flock)

// WithWorkers sets the size of the evaluation pool. n <= 0 keeps the default, GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(f *Flock) {
		if n > 0 {
			f.workers = make([]worker, n)
		}
	}
}

// WithFrameSource makes the flock follow the size reported by src.
func WithFrameSource(src FrameSource) Option {
	return func(f *Flock) {
		f.frame = src
	}
}

// New validates p and returns a flock driving the agents of store.
func New(p Params, store *Store, opts ...Option) (*Flock, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("flock: nil store")
	}
	f := &Flock{
		params:   p,
		settings: p.Settings(),
		store:    store,
		grid:     spatial.NewGrid(p.CellSize),
		next:     make([]behavior.State, store.Len()),
	}
	for _, opt := range opts {
		opt(f)
	}
	if len(f.workers) == 0 {
		f.workers = make([]worker, runtime.GOMAXPROCS(0))
	}
	for i := range f.workers {
		f.workers[i].rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		f.workers[i].candidates = make([]int, 0, 64)
	}
	return f, nil
}

// Step advances the simulation by one tick.
// When it returns, every agent holds its new state and nothing from the
// evaluation phase is still running.
func (f *Flock) Step() {
	f.refreshFrame()
	f.rebuildGrid()
	f.evaluate()
	if err := f.store.Commit(f.next); err != nil {
		// next is sized from the store in evaluate, this is a bug
		panic(err)
	}
	f.ticks++
}

func (f *Flock) refreshFrame() {
	if f.frame == nil {
		return
	}
	w, h := f.frame.FrameSize()
	// a minimised window reports nothing useful, keep the last good size
	if w <= 0 || h <= 0 {
		return
	}
	f.params.Width, f.params.Height = w, h
	f.settings.Width, f.settings.Height = w, h
}

func (f *Flock) rebuildGrid() {
	f.grid.Reset()
	for i, st := range f.store.States() {
		f.grid.Insert(i, st.Pos)
	}
}

// evaluate splits the agents in contiguous chunks, one per worker.
// Workers read the store and the grid, and each writes only its own
// slots of f.next, so no locking is needed.
func (f *Flock) evaluate() {
	states := f.store.States()
	n := len(states)
	if cap(f.next) < n {
		f.next = make([]behavior.State, n)
	}
	f.next = f.next[:n]
	if n == 0 {
		return
	}

	chunk := (n + len(f.workers) - 1) / len(f.workers)
	var wg sync.WaitGroup
	for w := range f.workers {
		start := w * chunk
		end := min(start+chunk, n)
		if start >= end {
			break
		}
		wk := &f.workers[w]
		wg.Go(func() {
			for i := start; i < end; i++ {
				wk.candidates = f.grid.AppendCandidates(wk.candidates[:0], states[i].Pos)
				f.next[i] = behavior.Evaluate(i, states, wk.candidates, &f.settings, wk.rng)
			}
		})
	}
	wg.Wait()
}

// Ticks returns how many ticks have been committed.
func (f *Flock) Ticks() uint64 {
	return f.ticks
}

// Len returns the number of agents.
func (f *Flock) Len() int {
	return f.store.Len()
}

// Workers returns the size of the evaluation pool.
func (f *Flock) Workers() int {
	return len(f.workers)
}

// Params returns the parameters in use, with the last frame size seen.
func (f *Flock) Params() Params {
	return f.params
}

// Grid exposes the spatial index of the last tick, for overlays and stats.
func (f *Flock) Grid() *spatial.Grid {
	return f.grid
}

// Snapshot appends a copy of every agent to dst. Renderers own the copy
// and can keep drawing it while the next tick runs.
func (f *Flock) Snapshot(dst []Agent) []Agent {
	return f.store.AppendAgents(dst)
}

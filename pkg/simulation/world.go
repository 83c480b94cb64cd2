package simulation

import (
	"math/rand/v2"
	"time"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Snapshot is what the world hands to the UI after a tick.
// Agents is a private copy, the renderer may keep it as long as it wants.
type Snapshot struct {
	Tick          uint64
	Width, Height float64
	DrawRadius    float64
	CellSize      float64
	Agents        []flock.Agent
}

// WorldActor is the "Brain". It owns the flock and runs one tick per
// request, so ticks never overlap and the mailbox orders them.
type WorldActor struct {
	params  flock.Params
	workers int
	frame   flock.FrameSource
	flock   *flock.Flock
	// Communication with UI
	snapshotCh chan *Snapshot
	// --- Benchmark Stats ---
	tickCount   int
	stepTime    time.Duration
	lastLogTime time.Time
}

// NewWorldActor creates the world logic unit
func NewWorldActor(snapshotCh chan *Snapshot, p flock.Params, workers int, frame flock.FrameSource) *WorldActor {
	return &WorldActor{
		params:      p,
		workers:     workers,
		frame:       frame,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	// The World is responsible for creating its inhabitants
	ctx.ActorSystem().Logger().Infof("World is spawning %d boids...", w.params.BoidCount)
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	store := flock.NewStore(flock.Seed(w.params, rng))
	f, err := flock.New(w.params, store,
		flock.WithWorkers(w.workers),
		flock.WithFrameSource(w.frame),
	)
	if err != nil {
		return err
	}
	w.flock = f
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("World Started: %d boids, %d workers, cell size %.1f",
			w.flock.Len(), w.flock.Workers(), w.params.CellSize)

	// The Main Simulation Step (Driven by Game Loop)
	case *timestamppb.Timestamp:
		start := time.Now()
		w.flock.Step()
		w.stepTime += time.Since(start)
		w.tickCount++

		w.logBenchmarks(ctx)
		w.pushSnapshot()
		ctx.Response(wrapperspb.UInt64(w.flock.Ticks()))

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		mean := w.stepTime / time.Duration(max(w.tickCount, 1))
		p := w.flock.Params()
		ctx.Logger().Infof("📊 TICK RATE: %d/sec | step %.2fms | boids: %d | frame %.0fx%.0f | cells: %d",
			w.tickCount, float64(mean.Microseconds())/1000.0, w.flock.Len(), p.Width, p.Height, w.flock.Grid().Cells())
		w.tickCount = 0
		w.stepTime = 0
		w.lastLogTime = time.Now()
	}
}

// pushSnapshot never blocks the world: a slow UI only sees the latest tick.
func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	snap := w.buildSnapshot()
	select {
	case w.snapshotCh <- snap:
		return
	default:
	}
	// UI busy, drop the stale frame it has not read yet
	select {
	case <-w.snapshotCh:
	default:
	}
	select {
	case w.snapshotCh <- snap:
	default:
	}
}

func (w *WorldActor) buildSnapshot() *Snapshot {
	p := w.flock.Params()
	return &Snapshot{
		Tick:       w.flock.Ticks(),
		Width:      p.Width,
		Height:     p.Height,
		DrawRadius: p.DrawRadius,
		CellSize:   p.CellSize,
		Agents:     w.flock.Snapshot(make([]flock.Agent, 0, w.flock.Len())),
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is shutdown after %d ticks...", w.ticks())
	return nil
}

func (w *WorldActor) ticks() uint64 {
	if w.flock == nil {
		return 0
	}
	return w.flock.Ticks()
}

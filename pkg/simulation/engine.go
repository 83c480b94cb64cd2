package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// stepTimeout bounds one tick; 5000 boids take a few milliseconds.
const stepTimeout = 5 * time.Second

// Engine is what frontends drive: it hosts the world actor and
// hands back snapshots after every tick.
type Engine struct {
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan *Snapshot
	params     flock.Params
}

// Start validates cfg, starts the actor system and spawns the world.
// frame may be nil, the flock then keeps the configured world size.
func Start(ctx context.Context, cfg *Config, frame flock.FrameSource, logger golog.Logger) (*Engine, error) {
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = golog.DiscardLogger
	}

	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	// Buffer of one: the UI only ever wants the latest tick
	snapshotCh := make(chan *Snapshot, 1)
	world := NewWorldActor(snapshotCh, p, cfg.Workers, frame)
	// a paused frontend sends nothing for minutes, the world must not passivate
	worldPID, err := system.Spawn(ctx, "world", world, actor.WithLongLived())
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	return &Engine{
		System:     system,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		params:     p,
	}, nil
}

// Step runs one tick and waits for it to be committed.
// It returns the number of ticks committed so far.
func (e *Engine) Step(ctx context.Context) (uint64, error) {
	reply, err := actor.Ask(ctx, e.worldPID, timestamppb.Now(), stepTimeout)
	if err != nil {
		return 0, fmt.Errorf("tick failed: %w", err)
	}
	tick, ok := reply.(*wrapperspb.UInt64Value)
	if !ok {
		return 0, fmt.Errorf("tick failed: unexpected reply %T", reply)
	}
	return tick.GetValue(), nil
}

// Snapshots delivers the state after each tick. A reader that falls behind
// only gets the most recent one.
func (e *Engine) Snapshots() <-chan *Snapshot {
	return e.snapshotCh
}

// Params returns the parameters the engine started with.
func (e *Engine) Params() flock.Params {
	return e.params
}

// Stop shuts the actor system down.
func (e *Engine) Stop(ctx context.Context) error {
	return e.System.Stop(ctx)
}

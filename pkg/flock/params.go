package flock

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
)

var (
	// ErrSpeedBounds is returned when MaxSpeed is below MinSpeed.
	ErrSpeedBounds = errors.New("max speed is less than min speed")
	// ErrCellSize is returned when the grid cell side is not strictly positive.
	ErrCellSize = errors.New("cell size must be greater than zero")
	// ErrBoidCount is returned for a negative population.
	ErrBoidCount = errors.New("boid count cannot be negative")
	// ErrCommitLength is returned when a commit buffer does not match the store.
	ErrCommitLength = errors.New("commit length does not match the number of agents")
)

// Params are the simulation parameters shared by every component.
// They are fixed for a run, except Width and Height which the Flock
// refreshes from its FrameSource before each tick.
type Params struct {
	BoidCount int

	Width, Height float64
	Margin        float64

	MinSpeed float64
	MaxSpeed float64

	ProtectedRange float64
	VisibleRange   float64

	AvoidFactor     float64
	MatchingFactor  float64
	CenteringFactor float64
	TurnFactor      float64

	CellSize   float64
	DrawRadius float64
}

// Validate reports the parameter combinations a simulation cannot start with.
// Everything else, like a margin wider than the frame or a zero visible range,
// is legal and just produces degenerate motion.
func (p Params) Validate() error {
	if p.MaxSpeed < p.MinSpeed {
		return fmt.Errorf("%w: max %v < min %v", ErrSpeedBounds, p.MaxSpeed, p.MinSpeed)
	}
	if !(p.CellSize > 0) {
		return fmt.Errorf("%w: got %v", ErrCellSize, p.CellSize)
	}
	if p.BoidCount < 0 {
		return fmt.Errorf("%w: got %d", ErrBoidCount, p.BoidCount)
	}
	return nil
}

// Settings extracts what the steering rules need.
func (p Params) Settings() behavior.Settings {
	return behavior.Settings{
		Width:           p.Width,
		Height:          p.Height,
		Margin:          p.Margin,
		VisibleRange:    p.VisibleRange,
		ProtectedRange:  p.ProtectedRange,
		CenteringFactor: p.CenteringFactor,
		AvoidFactor:     p.AvoidFactor,
		MatchingFactor:  p.MatchingFactor,
		TurnFactor:      p.TurnFactor,
		MinSpeed:        p.MinSpeed,
		MaxSpeed:        p.MaxSpeed,
	}
}

// Package behavior holds the boids steering rules.
//
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" is a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
package behavior

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// State is the kinematic part of a boid: what one tick reads and produces.
// Speed caches Vel.Len() so renderers and stats don't recompute it.
type State struct {
	Pos   geometry.Vector2D
	Vel   geometry.Vector2D
	Speed float64
}

// Settings controls the physics constants for the rules.
// Width and Height are the current frame size and may change between ticks.
type Settings struct {
	Width, Height float64
	Margin        float64 // distance from an edge where boids start turning back

	VisibleRange   float64 // How far can they see?
	ProtectedRange float64 // Personal space radius

	CenteringFactor float64 // Cohesion strength
	AvoidFactor     float64 // Separation strength
	MatchingFactor  float64 // Alignment strength
	TurnFactor      float64 // Edge turning strength

	MinSpeed float64
	MaxSpeed float64
}

// Evaluate computes the next state of flock[self] from the candidate
// neighbours (indices into flock, usually from the spatial grid).
// It only reads flock and candidates; rng is used to kick a stalled boid
// and must not be shared with another goroutine.
func Evaluate(self int, flock []State, candidates []int, s *Settings, rng *rand.Rand) State {
	me := flock[self]
	protectedSq := s.ProtectedRange * s.ProtectedRange
	visibleSq := s.VisibleRange * s.VisibleRange

	// Initialize force accumulators
	var closeOffset, posSum, velSum geometry.Vector2D
	neighbors := 0

	for _, idx := range candidates {
		if idx == self {
			continue
		}
		other := &flock[idx]

		offset := me.Pos.Sub(other.Pos)
		// cheap box test before the real distance
		if math.Abs(offset.X) >= s.VisibleRange || math.Abs(offset.Y) >= s.VisibleRange {
			continue
		}

		distSq := offset.LenSqr()
		if distSq < protectedSq {
			// 1. Separation: raw sum of offsets, not averaged
			closeOffset = closeOffset.Add(offset)
		} else if distSq < visibleSq {
			// 2. Alignment and Cohesion candidates
			posSum = posSum.Add(other.Pos)
			velSum = velSum.Add(other.Vel)
			neighbors++
		}
	}

	vel := me.Vel
	if neighbors > 0 {
		n := float64(neighbors)
		posAvg := posSum.Div(n)
		velAvg := velSum.Div(n)
		vel = vel.
			Add(posAvg.Sub(me.Pos).Mul(s.CenteringFactor)).
			Add(velAvg.Sub(me.Vel).Mul(s.MatchingFactor))
	}
	vel = vel.Add(closeOffset.Mul(s.AvoidFactor))

	vel = turnFromEdges(me.Pos, vel, s)

	vel, speed := limitSpeed(vel, s, rng)

	// Keep them drawable: hard clamp, no bounce and no wrap.
	pos := me.Pos.Add(vel).Clamp(
		geometry.Zero,
		geometry.Vector2D{X: max(s.Width-1, 0), Y: max(s.Height-1, 0)},
	)

	return State{Pos: pos, Vel: vel, Speed: speed}
}

// turnFromEdges nudges the velocity away from any frame edge closer than Margin.
// Both axes are handled independently so a corner gets two nudges.
func turnFromEdges(pos, vel geometry.Vector2D, s *Settings) geometry.Vector2D {
	if pos.Y > s.Height-s.Margin {
		vel.Y -= s.TurnFactor
	}
	if pos.X > s.Width-s.Margin {
		vel.X -= s.TurnFactor
	}
	if pos.X < s.Margin {
		vel.X += s.TurnFactor
	}
	if pos.Y < s.Margin {
		vel.Y += s.TurnFactor
	}
	return vel
}

// limitSpeed keeps a moving boid inside [MinSpeed, MaxSpeed].
// A boid that stopped dead gets a random kick in (-MinSpeed, MinSpeed) on
// each axis, unless MinSpeed is zero in which case it is allowed to rest.
func limitSpeed(vel geometry.Vector2D, s *Settings, rng *rand.Rand) (geometry.Vector2D, float64) {
	speed := vel.Len()
	switch {
	case speed > 0 && speed < s.MinSpeed:
		return vel.Mul(s.MinSpeed / speed), s.MinSpeed
	case speed > s.MaxSpeed:
		return vel.Mul(s.MaxSpeed / speed), s.MaxSpeed
	case speed == 0 && s.MinSpeed > 0:
		kick := geometry.Vector2D{
			X: (rng.Float64()*2 - 1) * s.MinSpeed,
			Y: (rng.Float64()*2 - 1) * s.MinSpeed,
		}
		return kick, s.MinSpeed
	}
	return vel, speed
}

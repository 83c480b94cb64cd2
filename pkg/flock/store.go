package flock

import (
	"fmt"
	"image/color"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
)

// Agent is one boid as seen from outside the tick loop.
type Agent struct {
	ID int
	behavior.State
	Color color.RGBA
}

// Store is the ordered agent sequence.
// Kinematic state lives in its own slice so the rules can read it without
// touching identity or colour, and so a commit is a single copy.
type Store struct {
	ids    []int
	states []behavior.State
	colors []color.RGBA
}

// NewStore builds a store from agents, keeping their order.
func NewStore(agents []Agent) *Store {
	s := &Store{
		ids:    make([]int, len(agents)),
		states: make([]behavior.State, len(agents)),
		colors: make([]color.RGBA, len(agents)),
	}
	for i, a := range agents {
		s.ids[i] = a.ID
		s.states[i] = a.State
		s.colors[i] = a.Color
	}
	return s
}

// Len returns the number of agents.
func (s *Store) Len() int {
	return len(s.states)
}

// States exposes the current kinematic states, indexed like the agents.
// The slice is read-only for callers; only Commit writes to it.
func (s *Store) States() []behavior.State {
	return s.states
}

// Agent returns a copy of the i-th agent.
func (s *Store) Agent(i int) Agent {
	return Agent{ID: s.ids[i], State: s.states[i], Color: s.colors[i]}
}

// AppendAgents appends a copy of every agent to dst, in order.
func (s *Store) AppendAgents(dst []Agent) []Agent {
	for i := range s.states {
		dst = append(dst, s.Agent(i))
	}
	return dst
}

// Commit replaces the state of every agent with next, the i-th entry going to
// the i-th agent. It writes nothing unless len(next) matches the store.
func (s *Store) Commit(next []behavior.State) error {
	if len(next) != len(s.states) {
		return fmt.Errorf("%w: got %d states for %d agents", ErrCommitLength, len(next), len(s.states))
	}
	copy(s.states, next)
	return nil
}

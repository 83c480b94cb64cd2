package flock

import (
	"errors"
	"image/color"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

func threeAgents() []Agent {
	return []Agent{
		{ID: 7, State: behavior.State{Pos: geometry.NewVector(1, 1), Vel: geometry.NewVector(1, 0), Speed: 1}, Color: color.RGBA{R: 255, A: 255}},
		{ID: 8, State: behavior.State{Pos: geometry.NewVector(2, 2), Vel: geometry.NewVector(0, 1), Speed: 1}, Color: color.RGBA{G: 255, A: 255}},
		{ID: 9, State: behavior.State{Pos: geometry.NewVector(3, 3)}, Color: color.RGBA{B: 255, A: 255}},
	}
}

func TestStore_KeepsOrderAndIdentity(t *testing.T) {
	in := threeAgents()
	s := NewStore(in)

	if s.Len() != len(in) {
		t.Fatalf("Len() = %d; want %d", s.Len(), len(in))
	}
	out := s.AppendAgents(nil)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("agent %d = %+v; want %+v", i, out[i], in[i])
		}
	}
}

func TestStore_Commit(t *testing.T) {
	s := NewStore(threeAgents())
	next := []behavior.State{
		{Pos: geometry.NewVector(10, 10), Speed: 2},
		{Pos: geometry.NewVector(20, 20), Speed: 2},
		{Pos: geometry.NewVector(30, 30), Speed: 2},
	}

	if err := s.Commit(next); err != nil {
		t.Fatalf("Commit() = %v", err)
	}
	for i, a := range s.AppendAgents(nil) {
		if a.State != next[i] {
			t.Errorf("agent %d state = %+v; want %+v", i, a.State, next[i])
		}
		if a.ID != 7+i {
			t.Errorf("agent %d id = %d; commit must not touch identity", i, a.ID)
		}
	}

	// the store keeps its own copy
	next[0].Pos = geometry.NewVector(-1, -1)
	if s.Agent(0).Pos.Eq(next[0].Pos) {
		t.Error("store aliases the committed slice")
	}
}

func TestStore_CommitLengthMismatch(t *testing.T) {
	s := NewStore(threeAgents())
	before := s.AppendAgents(nil)

	for _, n := range []int{0, 2, 4} {
		err := s.Commit(make([]behavior.State, n))
		if !errors.Is(err, ErrCommitLength) {
			t.Errorf("Commit(%d states) = %v; want ErrCommitLength", n, err)
		}
	}
	for i, a := range s.AppendAgents(nil) {
		if a != before[i] {
			t.Errorf("agent %d changed after rejected commit: %+v", i, a)
		}
	}
}

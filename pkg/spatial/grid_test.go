package spatial

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

func TestGrid_KeyOf(t *testing.T) {
	g := NewGrid(100)

	tests := []struct {
		name string
		p    geometry.Vector2D
		want Key
	}{
		{"origin", geometry.Vector2D{X: 0, Y: 0}, Key{0, 0}},
		{"inside first cell", geometry.Vector2D{X: 99.99, Y: 50}, Key{0, 0}},
		{"on a boundary", geometry.Vector2D{X: 100, Y: 200}, Key{1, 2}},
		{"far cell", geometry.Vector2D{X: 250, Y: 950}, Key{2, 9}},
		{"negative floors down", geometry.Vector2D{X: -0.5, Y: -150}, Key{-1, -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.KeyOf(tt.p); got != tt.want {
				t.Errorf("KeyOf(%v) = %v; want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestGrid_Rebuild(t *testing.T) {
	g := NewGrid(100)

	points := []geometry.Vector2D{
		{X: 50, Y: 50},   // 0,0
		{X: 150, Y: 50},  // 1,0
		{X: 50, Y: 150},  // 0,1
		{X: 250, Y: 250}, // 2,2
		{X: 60, Y: 10},   // 0,0
	}
	g.Rebuild(points)

	tests := []struct {
		key  Key
		want []int
	}{
		{Key{0, 0}, []int{0, 4}},
		{Key{1, 0}, []int{1}},
		{Key{0, 1}, []int{2}},
		{Key{2, 2}, []int{3}},
		{Key{5, 5}, nil},
	}
	for _, tt := range tests {
		got := g.Bucket(tt.key)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Bucket(%v) = %v; want %v", tt.key, got, tt.want)
		}
	}
	if g.Len() != len(points) {
		t.Errorf("Len() = %d; want %d", g.Len(), len(points))
	}
	if g.Cells() != 4 {
		t.Errorf("Cells() = %d; want 4", g.Cells())
	}
}

func TestGrid_RebuildDropsPreviousTick(t *testing.T) {
	g := NewGrid(10)
	g.Rebuild([]geometry.Vector2D{{X: 5, Y: 5}, {X: 15, Y: 5}})
	g.Rebuild([]geometry.Vector2D{{X: 35, Y: 35}})

	if b := g.Bucket(Key{0, 0}); len(b) != 0 {
		t.Errorf("stale bucket 0,0 = %v; want empty", b)
	}
	if b := g.Bucket(Key{1, 0}); len(b) != 0 {
		t.Errorf("stale bucket 1,0 = %v; want empty", b)
	}
	if b := g.Bucket(Key{3, 3}); !slices.Equal(b, []int{0}) {
		t.Errorf("Bucket(3,3) = %v; want [0]", b)
	}
	if g.Len() != 1 || g.Cells() != 1 {
		t.Errorf("Len()=%d Cells()=%d; want 1 and 1", g.Len(), g.Cells())
	}
}

func TestGrid_InsertNeverStoresNegativeKeys(t *testing.T) {
	g := NewGrid(10)
	g.Insert(7, geometry.Vector2D{X: -3, Y: 4})

	if b := g.Bucket(Key{-1, 0}); len(b) != 0 {
		t.Errorf("negative key stored: %v", b)
	}
	if b := g.Bucket(Key{0, 0}); !slices.Equal(b, []int{7}) {
		t.Errorf("Bucket(0,0) = %v; want [7]", b)
	}
}

// Every index lands in exactly one bucket and that bucket's key is floor(p / cellSize).
func TestGrid_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, cellSize := range []float64{1, 7.5, 22, 300} {
		points := make([]geometry.Vector2D, 2000)
		for i := range points {
			points[i] = geometry.Vector2D{X: rng.Float64() * 1280, Y: rng.Float64() * 800}
		}
		g := NewGrid(cellSize)
		g.Rebuild(points)

		seen := make([]int, len(points))
		for k, bucket := range g.cells {
			for _, idx := range bucket {
				seen[idx]++
				p := points[idx]
				want := Key{X: int(math.Floor(p.X / cellSize)), Y: int(math.Floor(p.Y / cellSize))}
				if k != want {
					t.Fatalf("cellSize %v: index %d at %v stored under %v; want %v", cellSize, idx, p, k, want)
				}
			}
		}
		for idx, n := range seen {
			if n != 1 {
				t.Fatalf("cellSize %v: index %d found %d times; want 1", cellSize, idx, n)
			}
		}
	}
}

func TestGrid_AppendCandidates(t *testing.T) {
	g := NewGrid(100)

	points := []geometry.Vector2D{
		{X: 150, Y: 150}, // 1,1 centre
		{X: 50, Y: 50},   // 0,0
		{X: 250, Y: 250}, // 2,2
		{X: 350, Y: 350}, // 3,3 outside the block
		{X: 150, Y: 350}, // 1,3 outside the block
	}
	g.Rebuild(points)

	got := g.AppendCandidates(nil, points[0])
	slices.Sort(got)
	if want := []int{0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("AppendCandidates(centre) = %v; want %v", got, want)
	}

	// dst is extended, not overwritten
	got = g.AppendCandidates([]int{42}, points[0])
	if got[0] != 42 || len(got) != 4 {
		t.Errorf("AppendCandidates with prefix = %v; want 42 followed by 3 indices", got)
	}
}

func TestGrid_AppendCandidatesSkipsNegativeCells(t *testing.T) {
	g := NewGrid(10)
	g.Rebuild([]geometry.Vector2D{
		{X: 1, Y: 1},   // 0,0
		{X: 11, Y: 1},  // 1,0
		{X: 1, Y: 11},  // 0,1
		{X: 25, Y: 25}, // 2,2 out of reach from 0,0
	})

	got := g.AppendCandidates(nil, geometry.Vector2D{X: 0, Y: 0})
	slices.Sort(got)
	if want := []int{0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("AppendCandidates(origin) = %v; want %v", got, want)
	}

	// a query point outside the frame still only probes non-negative cells
	got = g.AppendCandidates(nil, geometry.Vector2D{X: -5, Y: 5})
	slices.Sort(got)
	if want := []int{0, 2}; !slices.Equal(got, want) {
		t.Errorf("AppendCandidates(-5,5) = %v; want %v", got, want)
	}

	if got := g.AppendCandidates(nil, geometry.Vector2D{X: -25, Y: 5}); len(got) != 0 {
		t.Errorf("AppendCandidates(-25,5) = %v; want nothing", got)
	}
}

// Two points closer than one cell on both axes always see each other.
func TestGrid_AppendCandidatesHasNoFalseNegatives(t *testing.T) {
	const cellSize = 22.0
	rng := rand.New(rand.NewPCG(7, 11))
	g := NewGrid(cellSize)

	for range 500 {
		a := geometry.Vector2D{X: rng.Float64() * 1000, Y: rng.Float64() * 1000}
		b := geometry.Vector2D{
			X: max(0, a.X+(rng.Float64()*2-1)*cellSize*0.999),
			Y: max(0, a.Y+(rng.Float64()*2-1)*cellSize*0.999),
		}
		g.Rebuild([]geometry.Vector2D{a, b})
		if !slices.Contains(g.AppendCandidates(nil, a), 1) {
			t.Fatalf("point %v not found from %v", b, a)
		}
		if !slices.Contains(g.AppendCandidates(nil, b), 0) {
			t.Fatalf("point %v not found from %v", a, b)
		}
	}
}

func BenchmarkGrid_Rebuild(b *testing.B) {
	rng := rand.New(rand.NewPCG(3, 4))
	points := make([]geometry.Vector2D, 5000)
	for i := range points {
		points[i] = geometry.Vector2D{X: rng.Float64() * 1920, Y: rng.Float64() * 1080}
	}
	g := NewGrid(22)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Rebuild(points)
	}
}

func BenchmarkGrid_AppendCandidates(b *testing.B) {
	rng := rand.New(rand.NewPCG(5, 6))
	points := make([]geometry.Vector2D, 5000)
	for i := range points {
		points[i] = geometry.Vector2D{X: rng.Float64() * 1920, Y: rng.Float64() * 1080}
	}
	g := NewGrid(22)
	g.Rebuild(points)
	scratch := make([]int, 0, 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scratch = g.AppendCandidates(scratch[:0], points[i%len(points)])
	}
}

package simulation

import (
	"sync"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
)

var _ flock.FrameSource = (*Frame)(nil)

func TestFrame_SetAndRead(t *testing.T) {
	f := NewFrame(1280, 800)
	if w, h := f.FrameSize(); w != 1280 || h != 800 {
		t.Fatalf("FrameSize() = %v, %v; want 1280, 800", w, h)
	}
	f.Set(640.5, 480)
	if w, h := f.FrameSize(); w != 640.5 || h != 480 {
		t.Fatalf("FrameSize() = %v, %v; want 640.5, 480", w, h)
	}
}

func TestFrame_ResizeIsReadAsOnePair(t *testing.T) {
	f := NewFrame(0, 0)
	var wg sync.WaitGroup
	wg.Go(func() {
		for i := range 10000 {
			f.Set(float64(i), float64(2*i))
		}
	})
	wg.Go(func() {
		for range 10000 {
			if w, h := f.FrameSize(); h != 2*w {
				t.Errorf("FrameSize() = %v, %v; width and height from different resizes", w, h)
				return
			}
		}
	})
	wg.Wait()
}

package simulation

import "sync/atomic"

// Frame holds the size of the surface a frontend draws on.
// The frontend writes it and the world actor reads it before each tick.
// Width and height are swapped in together so a reader never sees half a resize.
type Frame struct {
	size atomic.Pointer[[2]float64]
}

// NewFrame starts with the configured world size, until the window reports its own.
func NewFrame(width, height float64) *Frame {
	f := &Frame{}
	f.Set(width, height)
	return f
}

// Set records a new frame size.
func (f *Frame) Set(width, height float64) {
	f.size.Store(&[2]float64{width, height})
}

// FrameSize implements flock.FrameSource.
func (f *Frame) FrameSize() (width, height float64) {
	s := f.size.Load()
	return s[0], s[1]
}

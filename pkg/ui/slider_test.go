package ui

import "testing"

func TestNewSlider_ClampsInitialValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"inside", 3, 3},
		{"below", -5, 1},
		{"above", 50, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlider(0, 0, 100, "radius", 1, 10, tt.value)
			if s.Value != tt.want {
				t.Errorf("Value = %v; want %v", s.Value, tt.want)
			}
		})
	}
}

func TestSlider_SetFromCursor(t *testing.T) {
	s := NewSlider(10, 0, 100, "radius", 0, 50, 0)

	tests := []struct {
		mx, want float64
	}{
		{10, 0},
		{60, 25},
		{110, 50},
		{500, 50}, // dragged past the end
		{-20, 0},
	}
	for _, tt := range tests {
		s.SetFromCursor(tt.mx)
		if s.Value != tt.want {
			t.Errorf("SetFromCursor(%v) -> %v; want %v", tt.mx, s.Value, tt.want)
		}
		if r := s.Ratio(); r < 0 || r > 1 {
			t.Errorf("Ratio() = %v outside [0, 1]", r)
		}
	}
}

func TestSlider_RatioOfEmptyRange(t *testing.T) {
	s := NewSlider(0, 0, 100, "fixed", 2, 2, 2)
	if r := s.Ratio(); r != 0 {
		t.Errorf("Ratio() = %v; want 0", r)
	}
}

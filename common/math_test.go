package common

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 50, 30, 590, 50},
		{"below", -100, 30, 590, 30},
		{"above", 10000, 30, 590, 590},
		{"on_edge", 590, 30, 590, 590},
		{"inverted", 0, 100, 50, 75},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp(c.v, c.lo, c.hi); got != c.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
			}
		})
	}
}

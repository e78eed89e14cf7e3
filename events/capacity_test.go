package events

import "testing"

func TestClampSpotsBounds(t *testing.T) {
	tests := []struct {
		name    string
		current int
		delta   int
		total   int
		want    int
	}{
		{"simple decrement", 50, -1, 50, 49},
		{"simple increment", 49, 1, 50, 50},
		{"floor at zero", 0, -1, 50, 0},
		{"ceiling at total", 50, 1, 50, 50},
		{"repeated over-release clamps", 50, 5, 50, 50},
		{"repeated over-take clamps", 1, -5, 50, 0},
		{"zero delta", 10, 0, 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampSpots(tt.current, tt.delta, tt.total)
			if got != tt.want {
				t.Errorf("clampSpots(%d, %d, %d) = %d, want %d", tt.current, tt.delta, tt.total, got, tt.want)
			}
		})
	}
}

func TestClampSpotsNeverLeavesRange(t *testing.T) {
	const total = 10
	spots := total
	deltas := []int{-1, -1, -1, 1, 1, 1, 1, 1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, 1}

	for i, d := range deltas {
		spots = clampSpots(spots, d, total)
		if spots < 0 || spots > total {
			t.Fatalf("after delta %d (step %d): spots %d outside [0, %d]", d, i, spots, total)
		}
	}
}

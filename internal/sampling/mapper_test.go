package sampling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatToIndex(t *testing.T) {
	justBelowOne := math.Nextafter(1.0, 0)

	tests := []struct {
		name  string
		x     float64
		count int
		want  int
	}{
		{"zero", 0.0, 10, 0},
		{"middle", 0.55, 10, 5},
		{"just below one", justBelowOne, 10, 9},
		{"just below one many bins", justBelowOne, 10_000, 9_999},
		{"exactly one", 1.0, 10, 9},
		{"overshoot", 1.0000001, 10, 9},
		{"far overshoot", 7.5, 10, 9},
		{"negative", -0.25, 10, 0},
		{"single bin", 0.999, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FloatToIndex(tt.x, tt.count))
		})
	}
}

func TestFloatToIndexCoversEveryBin(t *testing.T) {
	const bins = 97
	seen := make([]bool, bins)
	for i := 0; i < bins; i++ {
		x := (float64(i) + 0.5) / bins
		seen[FloatToIndex(x, bins)] = true
	}
	for i, ok := range seen {
		assert.True(t, ok, "bin %d never hit", i)
	}
}

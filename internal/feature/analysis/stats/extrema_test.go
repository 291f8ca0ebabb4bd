package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalExtrema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ys          []float64
		halfWidth   int
		wantPeaks   []int
		wantTroughs []int
	}{
		{
			name:        "single interior peak",
			ys:          []float64{0, 1, 2, 3, 2, 1, 0},
			halfWidth:   2,
			wantPeaks:   []int{3},
			wantTroughs: []int{},
		},
		{
			name:        "plateau is not strict",
			ys:          []float64{0, 1, 3, 3, 1, 0},
			halfWidth:   1,
			wantPeaks:   []int{},
			wantTroughs: []int{},
		},
		{
			name:        "flat bottom is not strict",
			ys:          []float64{5, 3, 1, 1, 3, 5},
			halfWidth:   1,
			wantPeaks:   []int{},
			wantTroughs: []int{},
		},
		{
			name:        "boundary maximum never reported",
			ys:          []float64{9, 1, 2, 1, 0},
			halfWidth:   1,
			wantPeaks:   []int{2},
			wantTroughs: []int{1},
		},
		{
			name:        "window suppresses nearby smaller peak",
			ys:          []float64{0, 0, 5, 0, 4, 0, 0, 0},
			halfWidth:   2,
			wantPeaks:   []int{2},
			wantTroughs: []int{},
		},
		{
			name:        "shorter than window",
			ys:          []float64{1, 2, 1},
			halfWidth:   2,
			wantPeaks:   []int{},
			wantTroughs: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			peaks, troughs := LocalExtrema(tt.ys, tt.halfWidth)
			assert.Equal(t, tt.wantPeaks, peaks)
			assert.Equal(t, tt.wantTroughs, troughs)
		})
	}
}

func TestLocalExtrema_WindowExcludesEdges(t *testing.T) {
	t.Parallel()

	ys := []float64{0, 5, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 6, 0}
	peaks, _ := LocalExtrema(ys, 2)
	// indices 1 and 13 sit within 2 of an end
	assert.Equal(t, []int{7}, peaks)
}

func TestStrongest(t *testing.T) {
	t.Parallel()

	ys := []float64{0, 7, 0, 3, 0, 9, 0, 1, 0, 5, 0, 8, 0, 2, 0}
	idx := []int{1, 3, 5, 7, 9, 11, 13}

	assert.Equal(t, []int{1, 3, 5, 9, 11}, strongest(idx, ys, 5, true))
	assert.Equal(t, []int{3, 7, 13}, strongest(idx, ys, 3, false))
	assert.Equal(t, idx, strongest(idx, ys, 10, true))
}

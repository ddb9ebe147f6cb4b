package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanStdDev_EmptyWindowIsZero(t *testing.T) {
	m, s := meanStdDev(nil)

	assert.False(t, math.IsNaN(m))
	assert.Zero(t, m)
	assert.Zero(t, s)
	assert.Zero(t, mean([]float64{}))
}

func TestMeanStdDev_Population(t *testing.T) {
	m, s := meanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.InDelta(t, 5, m, 1e-12)
	assert.InDelta(t, 2, s, 1e-12)
}

func TestGradientMean_MatchesCentralDifferences(t *testing.T) {
	// gradient: [0.02, 0.015, 0.005, 0, 0.02, 0.035, 0.03]
	data := []float64{0.10, 0.12, 0.13, 0.13, 0.13, 0.17, 0.20}

	assert.InDelta(t, (0.02+0.015+0.005+0+0.02+0.035+0.03)/7, gradientMean(data), 1e-12)
}

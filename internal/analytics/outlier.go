package analytics

import "math"

// MinOutlierSamples is the shortest sequence RemoveOutliers will filter.
const MinOutlierSamples = 4

// RemoveOutliers replaces every sample whose z-score reaches threshold with the
// sequence mean. It returns the filtered copy and the number of replacements.
// Sequences shorter than MinOutlierSamples are returned unchanged.
func RemoveOutliers(data []float64, threshold float64) ([]float64, int) {
	out := make([]float64, len(data))
	copy(out, data)
	if len(data) < MinOutlierSamples {
		return out, 0
	}

	mu, sigma := meanStdDev(data)

	replaced := 0
	for i, v := range data {
		if zScore(v, mu, sigma) >= threshold {
			out[i] = mu
			replaced++
		}
	}
	return out, replaced
}

func zScore(value, mu, sigma float64) float64 {
	if sigma == 0 {
		return 0
	}
	return math.Abs(value-mu) / sigma
}

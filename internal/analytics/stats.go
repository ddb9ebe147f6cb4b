package analytics

import "gonum.org/v1/gonum/stat"

// mean returns 0 for an empty window, where stat.Mean yields NaN.
func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// meanStdDev returns the mean and population standard deviation.
func meanStdDev(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(data, nil)
}

func stdDev(data []float64) float64 {
	_, std := meanStdDev(data)
	return std
}

// gradientMean averages the numerical gradient of data: central differences
// inside, one-sided differences at both ends.
func gradientMean(data []float64) float64 {
	n := len(data)
	if n < 2 {
		return 0
	}

	grad := make([]float64, n)
	grad[0] = data[1] - data[0]
	for i := 1; i < n-1; i++ {
		grad[i] = (data[i+1] - data[i-1]) / 2
	}
	grad[n-1] = data[n-1] - data[n-2]
	return stat.Mean(grad, nil)
}

// MinMaxNormalize maps value into [0,1] relative to [min, max]. A zero-width
// range is treated as a unit range, so value == min == max yields 0.
func MinMaxNormalize(value, min, max float64) float64 {
	scale := max - min
	if scale == 0 {
		scale = 1
	}
	return (value - min) / scale
}

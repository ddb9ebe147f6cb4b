package analytics

// SmoothEMA applies an exponential moving average seeded with the first sample.
func SmoothEMA(data []float64, alpha float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)
	if len(data) < 2 {
		return out
	}

	for n := 1; n < len(data); n++ {
		out[n] = alpha*data[n] + (1-alpha)*out[n-1]
	}
	return out
}

// SmoothSMA applies a trailing moving average of width window. The first
// window-1 positions average over the samples available so far. Sequences
// shorter than window are returned unchanged.
func SmoothSMA(data []float64, window int) []float64 {
	out := make([]float64, len(data))
	copy(out, data)
	if len(data) < window {
		return out
	}

	for i := range data {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		out[i] = mean(data[start : i+1])
	}
	return out
}

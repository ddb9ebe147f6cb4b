package analytics

// Conditioned is the outcome of conditioning one raw channel window.
type Conditioned struct {
	Value    float64 // last element of the smoothed series
	Replaced int     // samples the outlier filter replaced
}

// Analyzer conditions raw channel windows: outlier rejection, then EMA, then SMA.
// It holds configuration only; every call recomputes from the window it is given.
type Analyzer struct {
	smoothingWindow int
	alpha           float64
	zScoreThreshold float64
}

func NewAnalyzer(smoothingWindow int, alpha, zScoreThreshold float64) *Analyzer {
	return &Analyzer{
		smoothingWindow: smoothingWindow,
		alpha:           alpha,
		zScoreThreshold: zScoreThreshold,
	}
}

// Process runs the full conditioning chain over a window and returns the
// smoothed series.
func (a *Analyzer) Process(window []float64) ([]float64, int) {
	clean, replaced := RemoveOutliers(window, a.zScoreThreshold)
	smoothed := SmoothEMA(clean, a.alpha)
	return SmoothSMA(smoothed, a.smoothingWindow), replaced
}

// Condition produces this cycle's processed value for a raw window. It reports
// false while the window holds no more samples than the smoothing width.
func (a *Analyzer) Condition(window []float64) (Conditioned, bool) {
	if len(window) <= a.smoothingWindow {
		return Conditioned{}, false
	}

	series, replaced := a.Process(window)
	return Conditioned{
		Value:    series[len(series)-1],
		Replaced: replaced,
	}, true
}

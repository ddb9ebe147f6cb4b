package analytics

import "emotion-monitor/internal/models"

// levelThresholds are inclusive upper bounds, checked in ascending order.
var levelThresholds = [...]struct {
	level models.Level
	upper float64
}{
	{models.VeryLow, 0.2},
	{models.Low, 0.35},
	{models.LowMedium, 0.45},
	{models.Medium, 0.55},
	{models.MediumHigh, 0.65},
	{models.High, 0.8},
	{models.VeryHigh, 0.9},
}

// ClassifyLevel buckets a feature value. The dimension does not change the
// threshold table; values above the last bound are VeryHigh.
func ClassifyLevel(value float64, _ models.Dimension) models.Level {
	for _, t := range levelThresholds {
		if value <= t.upper {
			return t.level
		}
	}
	return models.VeryHigh
}

package analytics

import "emotion-monitor/internal/models"

// Pattern is the expected level per dimension for one emotion.
type Pattern [models.DimensionCount]models.Level

// Patterns is indexed by emotion; index order breaks score ties.
var Patterns = [models.EmotionCount]Pattern{
	models.Amusing: {
		models.DimHeartRate:            models.MediumHigh,
		models.DimHeartRateVariability: models.High,
		models.DimRespRate:             models.MediumHigh,
		models.DimSCL:                  models.MediumHigh,
		models.DimSCR:                  models.High,
	},
	models.Boring: {
		models.DimHeartRate:            models.Low,
		models.DimHeartRateVariability: models.Low,
		models.DimRespRate:             models.Low,
		models.DimSCL:                  models.Low,
		models.DimSCR:                  models.Low,
	},
	models.Relaxed: {
		models.DimHeartRate:            models.LowMedium,
		models.DimHeartRateVariability: models.Medium,
		models.DimRespRate:             models.LowMedium,
		models.DimSCL:                  models.LowMedium,
		models.DimSCR:                  models.LowMedium,
	},
	models.Scary: {
		models.DimHeartRate:            models.High,
		models.DimHeartRateVariability: models.High,
		models.DimRespRate:             models.High,
		models.DimSCL:                  models.High,
		models.DimSCR:                  models.VeryHigh,
	},
}

// weightPercent holds dimension weights in hundredths so partial sums are exact.
var weightPercent = [models.DimensionCount]int{
	models.DimHeartRate:            30,
	models.DimHeartRateVariability: 20,
	models.DimRespRate:             20,
	models.DimSCL:                  15,
	models.DimSCR:                  15,
}

func Weight(d models.Dimension) float64 {
	return float64(weightPercent[d]) / 100
}

// Scores holds one score per emotion, indexed by models.Emotion.
type Scores [models.EmotionCount]float64

// ClassifyDimensions buckets every scored feature. Missing features report false.
func ClassifyDimensions(fv models.FeatureVector) (levels [models.DimensionCount]models.Level, present [models.DimensionCount]bool) {
	for d := models.Dimension(0); d < models.DimensionCount; d++ {
		f := fv.Dimension(d)
		if !f.Valid {
			continue
		}
		levels[d] = ClassifyLevel(f.Value, d)
		present[d] = true
	}
	return levels, present
}

// ScoreEmotions sums the weights of the dimensions whose observed level equals
// each pattern's expected level.
func ScoreEmotions(fv models.FeatureVector) Scores {
	levels, present := ClassifyDimensions(fv)

	var scores Scores
	for e, pattern := range Patterns {
		total := 0
		for d, expected := range pattern {
			if present[d] && levels[d] == expected {
				total += weightPercent[d]
			}
		}
		scores[e] = float64(total) / 100
	}
	return scores
}

// Best returns the emotion with the greatest score. The first emotion in
// declaration order wins a tie.
func (s Scores) Best() (models.Emotion, float64) {
	best := models.Emotion(0)
	for e := models.Emotion(1); e < models.EmotionCount; e++ {
		if s[e] > s[best] {
			best = e
		}
	}
	return best, s[best]
}

func (s Scores) Map() map[models.Emotion]float64 {
	m := make(map[models.Emotion]float64, len(s))
	for e, v := range s {
		m[models.Emotion(e)] = v
	}
	return m
}

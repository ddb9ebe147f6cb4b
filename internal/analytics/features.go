package analytics

import "emotion-monitor/internal/models"

// MinFeatureSamples is the processed window length needed for any feature.
const MinFeatureSamples = 2

// ExtractFeatures computes the feature vector over the processed windows. It
// reports false while the heart-rate window is shorter than MinFeatureSamples.
// Once the heart-rate window has reached capacity (heartWindowFull), each mean
// feature is min-max normalized against itself.
func ExtractFeatures(processed map[models.ProcessedChannel][]float64, heartWindowFull bool) (models.FeatureVector, bool) {
	heart := processed[models.HeartRate]
	if len(heart) < MinFeatureSamples {
		return models.FeatureVector{}, false
	}

	resp := processed[models.RespRate]
	scl := processed[models.ProcessedSCL]
	scr := processed[models.ProcessedSCR]

	fv := models.FeatureVector{
		HeartRateMean: windowStat(heart, mean),
		HeartRateStd:  windowStat(heart, stdDev),
		RespRateMean:  windowStat(resp, mean),
		RespRateStd:   windowStat(resp, stdDev),
		SCLMean:       windowStat(scl, mean),
		SCLStd:        windowStat(scl, stdDev),
		SCRMean:       windowStat(scr, mean),
		SCRSlope:      windowStat(scr, gradientMean),
	}

	if heartWindowFull {
		for _, f := range []*models.Feature{&fv.HeartRateMean, &fv.RespRateMean, &fv.SCLMean, &fv.SCRMean} {
			if f.Valid {
				// TODO: fit the range over the processed history instead of the
				// current value once the intended scaling is settled.
				f.Value = MinMaxNormalize(f.Value, f.Value, f.Value)
			}
		}
	}

	return fv, true
}

func windowStat(data []float64, stat func([]float64) float64) models.Feature {
	if len(data) < MinFeatureSamples {
		return models.Feature{}
	}
	return models.Some(stat(data))
}

package analytics

import (
	"testing"

	"emotion-monitor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFeatures_NeedsTwoHeartSamples(t *testing.T) {
	processed := map[models.ProcessedChannel][]float64{
		models.HeartRate:    {72},
		models.RespRate:     {14, 15},
		models.ProcessedSCL: {2, 3},
		models.ProcessedSCR: {0.1, 0.2},
	}

	_, ok := ExtractFeatures(processed, false)
	assert.False(t, ok)

	_, ok = ExtractFeatures(map[models.ProcessedChannel][]float64{}, false)
	assert.False(t, ok)
}

func TestExtractFeatures_Statistics(t *testing.T) {
	processed := map[models.ProcessedChannel][]float64{
		models.HeartRate:    {70, 74},
		models.RespRate:     {12, 14, 16},
		models.ProcessedSCL: {0.5, 0.5},
		models.ProcessedSCR: {1, 2, 4, 7},
	}

	fv, ok := ExtractFeatures(processed, false)

	require.True(t, ok)
	assert.Equal(t, models.Some(72), fv.HeartRateMean)
	assert.Equal(t, models.Some(2), fv.HeartRateStd)
	assert.Equal(t, models.Some(14), fv.RespRateMean)
	assert.InDelta(t, 1.632993, fv.RespRateStd.Value, 1e-6)
	assert.Equal(t, models.Some(0.5), fv.SCLMean)
	assert.Equal(t, models.Some(0), fv.SCLStd)
	assert.Equal(t, models.Some(3.5), fv.SCRMean)
	assert.Equal(t, models.Some(2), fv.SCRSlope)
}

func TestExtractFeatures_ShortChannelIsAbsent(t *testing.T) {
	processed := map[models.ProcessedChannel][]float64{
		models.HeartRate:    {70, 74, 72},
		models.ProcessedSCR: {0.3},
	}

	fv, ok := ExtractFeatures(processed, false)

	require.True(t, ok)
	assert.True(t, fv.HeartRateMean.Valid)
	assert.False(t, fv.RespRateMean.Valid)
	assert.False(t, fv.SCLStd.Valid)
	assert.False(t, fv.SCRMean.Valid)
	assert.False(t, fv.SCRSlope.Valid)
}

func TestExtractFeatures_FullWindowNormalizesMeans(t *testing.T) {
	processed := map[models.ProcessedChannel][]float64{
		models.HeartRate:    {70, 74, 72},
		models.RespRate:     {12, 14, 16},
		models.ProcessedSCL: {5, 6, 7},
		models.ProcessedSCR: {1, 2, 3},
	}

	fv, ok := ExtractFeatures(processed, true)

	require.True(t, ok)
	assert.Equal(t, models.Some(0), fv.HeartRateMean)
	assert.Equal(t, models.Some(0), fv.RespRateMean)
	assert.Equal(t, models.Some(0), fv.SCLMean)
	assert.Equal(t, models.Some(0), fv.SCRMean)
	// only means are normalized
	assert.InDelta(t, 1.632993, fv.HeartRateStd.Value, 1e-6)
	assert.Equal(t, models.Some(1), fv.SCRSlope)
}

func TestMinMaxNormalize(t *testing.T) {
	assert.Equal(t, 0.5, MinMaxNormalize(5, 0, 10))
	assert.Equal(t, 0.0, MinMaxNormalize(42, 42, 42))
	assert.Equal(t, 1.0, MinMaxNormalize(10, 0, 10))
}

func TestGradientMean(t *testing.T) {
	assert.Equal(t, 3.0, gradientMean([]float64{1, 4}))
	assert.Equal(t, 0.0, gradientMean([]float64{9}))
	assert.Equal(t, 2.0, gradientMean([]float64{1, 2, 4, 7}))
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumNames(t *testing.T) {
	assert.Equal(t, "heart_bpm", HeartBPM.String())
	assert.Equal(t, "scl", ProcessedSCL.String())
	assert.Equal(t, "heart_rate_variability", DimHeartRateVariability.String())
	assert.Equal(t, "low_medium", LowMedium.String())
	assert.Equal(t, "scary", Scary.String())
	assert.Equal(t, "skipped", StateSkipped.String())
	assert.Equal(t, "level(9)", Level(9).String())
}

func TestProcessedChannelSource(t *testing.T) {
	assert.Equal(t, HeartBPM, HeartRate.Source())
	assert.Equal(t, RespBPM, RespRate.Source())
	assert.Equal(t, SCL, ProcessedSCL.Source())
	assert.Equal(t, SCR, ProcessedSCR.Source())
}

func TestFeatureJSON(t *testing.T) {
	fv := FeatureVector{HeartRateMean: Some(0.42)}

	data, err := json.Marshal(fv)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"heart_rate_mean":0.42`)
	assert.Contains(t, string(data), `"scr_slope":null`)

	var decoded FeatureVector
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fv, decoded)
}

func TestEmotionScoresJSONKeys(t *testing.T) {
	scores := map[Emotion]float64{Amusing: 0.3, Scary: 1}

	data, err := json.Marshal(scores)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amusing":0.3,"scary":1}`, string(data))

	var decoded map[Emotion]float64
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, scores, decoded)

	var e Emotion
	assert.Error(t, e.UnmarshalText([]byte("joyful")))
}

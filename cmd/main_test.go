package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"emotion-monitor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	r := consoleReporter{out: &buf}

	err := r.Publish(context.Background(), models.Result{
		Timestamp:        time.Date(2024, 5, 1, 9, 30, 5, 0, time.UTC),
		PredictedEmotion: models.Relaxed,
		Confidence:       0.5,
		AllScores: map[models.Emotion]float64{
			models.Amusing: 0.3,
			models.Boring:  0.3,
			models.Relaxed: 0.5,
			models.Scary:   0.5,
		},
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Timestamp: 2024-05-01 09:30:05")
	assert.Contains(t, out, "Predicted Emotion: relaxed")
	assert.Contains(t, out, "Confidence: 0.50")
	assert.Contains(t, out, "amusing: 0.30\nboring: 0.30\nrelaxed: 0.50\nscary: 0.50\n")
}

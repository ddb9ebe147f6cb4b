package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"emotion-monitor/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, historySize int) (*miniredis.Miniredis, *RedisClient) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), mr.Addr(), time.Hour, historySize)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func testResult(id string, emotion models.Emotion, confidence float64) models.Result {
	return models.Result{
		ID:               id,
		Timestamp:        time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		PredictedEmotion: emotion,
		Confidence:       confidence,
		AllScores:        map[models.Emotion]float64{emotion: confidence},
		Features: models.FeatureVector{
			HeartRateMean: models.Some(0.4),
		},
		RawData: map[string]any{"heart_bpm": 72.0},
	}
}

func TestRedisClient_PublishAndLatest(t *testing.T) {
	mr, client := setupTestRedis(t, 10)
	ctx := context.Background()

	require.NoError(t, client.Publish(ctx, testResult("a", models.Boring, 0.3)))
	require.NoError(t, client.Publish(ctx, testResult("b", models.Scary, 1)))

	latest, err := client.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID)
	assert.Equal(t, models.Scary, latest.PredictedEmotion)
	assert.Equal(t, 1.0, latest.AllScores[models.Scary])
	assert.Equal(t, models.Some(0.4), latest.Features.HeartRateMean)
	assert.False(t, latest.Features.SCRSlope.Valid)

	assert.True(t, mr.Exists("emotion:result:a"))
	assert.Greater(t, mr.TTL("emotion:result:a"), time.Duration(0))
}

func TestRedisClient_LatestEmpty(t *testing.T) {
	_, client := setupTestRedis(t, 10)

	_, err := client.Latest(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisClient_RecentIsBoundedAndOrdered(t *testing.T) {
	mr, client := setupTestRedis(t, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, client.Publish(ctx, testResult(fmt.Sprintf("r%d", i), models.Relaxed, 0.5)))
	}

	ids, err := mr.List("emotion:results:recent")
	require.NoError(t, err)
	assert.Equal(t, []string{"r4", "r3", "r2"}, ids)

	recent, err := client.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "r3", recent[0].ID)
	assert.Equal(t, "r4", recent[1].ID)
}

func TestRedisClient_RecentSkipsExpired(t *testing.T) {
	mr, client := setupTestRedis(t, 10)
	ctx := context.Background()

	require.NoError(t, client.Publish(ctx, testResult("old", models.Boring, 0.3)))
	require.NoError(t, client.Publish(ctx, testResult("new", models.Boring, 0.3)))
	mr.Del("emotion:result:old")

	recent, err := client.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "new", recent[0].ID)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr, time.Hour, 10)
	assert.Error(t, err)
}

package services

import (
	"context"
	"testing"
	"time"

	"content-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeMetricsRates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	article := env.createArticle(t, models.StatusPublished, time.Hour)

	// Four viewers: two bounce (read < 10s), two read properly.
	views := []struct {
		user     string
		readTime int
	}{
		{"u1", 3},
		{"u2", 0},
		{"u3", 60},
		{"u4", 120},
	}
	for _, v := range views {
		_, err := env.events.RecordEvent(ctx, article.ID, v.user, models.EventTypeView, EventOptions{ReadTimeSeconds: v.readTime})
		require.NoError(t, err)
	}
	_, err := env.events.RecordEvent(ctx, article.ID, "u3", models.EventTypeShare, EventOptions{})
	require.NoError(t, err)
	_, err = env.events.RecordEvent(ctx, article.ID, "u4", models.EventTypeSave, EventOptions{})
	require.NoError(t, err)

	stored := env.reloadArticle(t, article.ID)
	assert.EqualValues(t, 4, stored.TotalViews)
	assert.InDelta(t, 50.0, stored.BounceRate, 1e-9) // 2 of 4 views bounced
	// Average read time only counts views that reported one: (3+60+120)/3.
	assert.InDelta(t, 61.0, stored.AvgReadTime, 1e-9)
	// (1 share + 1 save + 0 comments) / 4 views * 100.
	assert.InDelta(t, 50.0, stored.EngagementRate, 1e-9)
}

func TestRecomputeMetricsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	article := env.createArticle(t, models.StatusPublished, time.Hour)

	_, err := env.events.RecordEvent(ctx, article.ID, "u1", models.EventTypeView, EventOptions{ReadTimeSeconds: 30})
	require.NoError(t, err)
	_, err = env.events.RecordEvent(ctx, article.ID, "u1", models.EventTypeShare, EventOptions{})
	require.NoError(t, err)

	first := env.reloadArticle(t, article.ID)

	// Re-running with no new events changes nothing.
	require.NoError(t, env.metrics.RecomputeMetrics(ctx, article.ID))
	second := env.reloadArticle(t, article.ID)

	assert.Equal(t, first.TotalViews, second.TotalViews)
	assert.Equal(t, first.UniqueViews, second.UniqueViews)
	assert.Equal(t, first.TotalShares, second.TotalShares)
	assert.Equal(t, first.AvgReadTime, second.AvgReadTime)
	assert.Equal(t, first.BounceRate, second.BounceRate)
	assert.Equal(t, first.EngagementRate, second.EngagementRate)
}

func TestRecomputeMetricsExcludesAnonymousEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	article := env.createArticle(t, models.StatusPublished, time.Hour)

	// A legacy anonymous row in the log must not count.
	require.NoError(t, env.db.Create(&models.Event{
		EventID:   "anon-1",
		ArticleID: article.ID,
		EventType: models.EventTypeView,
	}).Error)

	_, err := env.events.RecordEvent(ctx, article.ID, "u1", models.EventTypeView, EventOptions{ReadTimeSeconds: 30})
	require.NoError(t, err)

	stored := env.reloadArticle(t, article.ID)
	assert.EqualValues(t, 1, stored.TotalViews)
	assert.EqualValues(t, 1, stored.UniqueViews)
}

func TestRecomputeMetricsNoViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	article := env.createArticle(t, models.StatusPublished, time.Hour)

	_, err := env.events.RecordEvent(ctx, article.ID, "u1", models.EventTypeShare, EventOptions{})
	require.NoError(t, err)

	stored := env.reloadArticle(t, article.ID)
	assert.EqualValues(t, 0, stored.TotalViews)
	assert.EqualValues(t, 1, stored.TotalShares)
	assert.Zero(t, stored.BounceRate)
	assert.Zero(t, stored.EngagementRate)
}

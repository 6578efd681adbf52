package services

import (
	"context"
	"testing"
	"time"

	"content-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) setVotes(t *testing.T, articleID string, upvotes, downvotes int) {
	t.Helper()
	require.NoError(t, env.db.Model(&models.Article{}).Where("id = ?", articleID).Updates(map[string]interface{}{
		"upvotes":    upvotes,
		"downvotes":  downvotes,
		"vote_score": upvotes - downvotes,
	}).Error)
}

func TestTrendScoreDecaysWithAge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	newer := env.createArticle(t, models.StatusPublished, 2*time.Hour)
	older := env.createArticle(t, models.StatusPublished, 48*time.Hour)
	env.setVotes(t, newer.ID, 10, 2)
	env.setVotes(t, older.ID, 10, 2)

	require.NoError(t, env.trends.RecomputeTrendScores(ctx))

	newerScore := env.reloadArticle(t, newer.ID).TrendScore
	olderScore := env.reloadArticle(t, older.ID).TrendScore
	assert.Greater(t, newerScore, 0.0)
	assert.LessOrEqual(t, olderScore, newerScore)
}

func TestTrendScorePureTimeDecay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	article := env.createArticle(t, models.StatusPublished, time.Hour)
	env.setVotes(t, article.ID, 20, 0)

	require.NoError(t, env.trends.RecomputeTrendScores(ctx))
	before := env.reloadArticle(t, article.ID).TrendScore

	// No new votes, only elapsed time: the scheduled sweep must lower it.
	env.clock.Advance(24 * time.Hour)
	require.NoError(t, env.trends.RecomputeTrendScores(ctx))
	after := env.reloadArticle(t, article.ID).TrendScore

	assert.Less(t, after, before)
}

func TestNonPositiveVoteScoreNeverTrending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	zero := env.createArticle(t, models.StatusPublished, time.Minute)
	negative := env.createArticle(t, models.StatusPublished, time.Minute)
	// High upvotes but equal/greater downvotes keep the vote score <= 0
	// while the upvote bonus pushes the raw score well past the threshold.
	env.setVotes(t, zero.ID, 50, 50)
	env.setVotes(t, negative.ID, 50, 60)

	require.NoError(t, env.trends.RecomputeTrendScores(ctx))

	assert.False(t, env.reloadArticle(t, zero.ID).IsTrending)
	assert.False(t, env.reloadArticle(t, negative.ID).IsTrending)
}

func TestTrendingFlagAboveThreshold(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	article := env.createArticle(t, models.StatusPublished, time.Minute)
	env.setVotes(t, article.ID, 30, 0)

	require.NoError(t, env.trends.RecomputeTrendScores(ctx))

	stored := env.reloadArticle(t, article.ID)
	assert.Greater(t, stored.TrendScore, 1.0)
	assert.True(t, stored.IsTrending)
}

func TestRecomputeSkipsUnpublished(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	draft := env.createArticle(t, models.StatusDraft, 0)
	env.setVotes(t, draft.ID, 30, 0)

	require.NoError(t, env.trends.RecomputeTrendScores(ctx))

	stored := env.reloadArticle(t, draft.ID)
	assert.Zero(t, stored.TrendScore)
	assert.False(t, stored.IsTrending)
}

func TestGetTrendingOrdersByScore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	low := env.createArticle(t, models.StatusPublished, time.Hour)
	high := env.createArticle(t, models.StatusPublished, time.Hour)
	draft := env.createArticle(t, models.StatusDraft, 0)
	env.setVotes(t, low.ID, 2, 0)
	env.setVotes(t, high.ID, 40, 0)
	env.setVotes(t, draft.ID, 100, 0)

	require.NoError(t, env.trends.RecomputeTrendScores(ctx))

	trending, err := env.trends.GetTrending(ctx, 5)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, high.ID, trending[0].ID)
	assert.Equal(t, low.ID, trending[1].ID)
}

func TestTrendScoreUpdatedAfterVote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	article := env.createArticle(t, models.StatusPublished, time.Minute)

	// CastVote triggers the corpus sweep synchronously.
	_, err := env.votes.CastVote(ctx, article.ID, "u1", models.VoteTypeUpvote)
	require.NoError(t, err)

	stored := env.reloadArticle(t, article.ID)
	assert.Greater(t, stored.TrendScore, 0.0)
}

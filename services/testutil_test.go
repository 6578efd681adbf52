package services

import (
	"fmt"
	"testing"
	"time"

	"content-backend/config"
	"content-backend/models"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service graph over an isolated in-memory database.
type testEnv struct {
	db        *gorm.DB
	cfg       *config.Config
	clock     *clockwork.FakeClock
	votes     *VoteService
	events    *EventService
	metrics   *MetricsService
	trends    *TrendService
	rollups   *RollupService
	retention *RetentionService
	analytics *AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A named shared-cache memory DB keeps gorm's connection pool on the
	// same database while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Article{},
		&models.Vote{},
		&models.Event{},
		&models.DailyAnalytics{},
	))

	cfg := &config.Config{
		TrendingThreshold:  1.0,
		DecayHalfLife:      12.0,
		MinTimeDecay:       0.1,
		UpvoteWeight:       0.1,
		TrendingLimit:      10,
		SummaryCacheTTL:    time.Minute,
		DraftRetention:     7 * 24 * time.Hour,
		EventRetention:     30 * 24 * time.Hour,
		AnalyticsRetention: 90 * 24 * time.Hour,
		VoteRetention:      90 * 24 * time.Hour,
	}

	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	llm := NewLLMService(cfg)
	trends := NewTrendService(db, cfg, llm, nil, clock)
	metrics := NewMetricsService(db)

	return &testEnv{
		db:        db,
		cfg:       cfg,
		clock:     clock,
		votes:     NewVoteService(db, trends),
		events:    NewEventService(db, metrics),
		metrics:   metrics,
		trends:    trends,
		rollups:   NewRollupService(db),
		retention: NewRetentionService(db, cfg, clock),
		analytics: NewAnalyticsService(db, cfg, nil),
	}
}

// createArticle inserts an article fixture. publishedAgo only applies to
// published articles and is measured against the fake clock.
func (env *testEnv) createArticle(t *testing.T, status string, publishedAgo time.Duration) *models.Article {
	t.Helper()

	article := &models.Article{
		ID:       uuid.NewString(),
		Title:    "fixture article",
		AuthorID: "author-1",
		Status:   status,
	}
	if status == models.StatusPublished {
		publishedAt := env.clock.Now().Add(-publishedAgo)
		article.PublishedAt = &publishedAt
	}

	require.NoError(t, env.db.Create(article).Error)
	return article
}

func (env *testEnv) reloadArticle(t *testing.T, id string) *models.Article {
	t.Helper()

	var article models.Article
	require.NoError(t, env.db.First(&article, "id = ?", id).Error)
	return &article
}

func (env *testEnv) countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	q := env.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}

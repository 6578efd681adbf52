package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"content-backend/config"
	"content-backend/models"
	"content-backend/utils"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const trendingCacheKey = "trending:feed"

// TrendService computes the time-decayed trend score for every published
// article and is the sole writer of trend_score/is_trending. It also
// serves the trending read path.
type TrendService struct {
	db    *gorm.DB
	cfg   *config.Config
	llm   *LLMService
	cache *redis.Client
	clock clockwork.Clock
}

// NewTrendService creates a new trend service instance. cache and llm may
// be nil; both are optional layers.
func NewTrendService(db *gorm.DB, cfg *config.Config, llm *LLMService, cache *redis.Client, clock clockwork.Clock) *TrendService {
	return &TrendService{
		db:    db,
		cfg:   cfg,
		llm:   llm,
		cache: cache,
		clock: clock,
	}
}

// RecomputeTrendScores sweeps the full published corpus and rewrites each
// article's trend_score and is_trending. The sweep runs after every vote
// mutation and on a schedule, so scores track both vote changes and pure
// time decay. Per-article failures are logged and do not abort the sweep.
func (s *TrendService) RecomputeTrendScores(ctx context.Context) error {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Where("status = ?", models.StatusPublished).
		Find(&articles).Error
	if err != nil {
		return fmt.Errorf("failed to load published articles: %w", err)
	}

	now := s.clock.Now()
	failures := 0

	for i := range articles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		article := &articles[i]
		hours := now.Sub(article.PublishTime()).Hours()
		decay := utils.TimeDecay(hours, s.cfg.DecayHalfLife, s.cfg.MinTimeDecay)
		score := utils.TrendScore(article.VoteScore, article.Upvotes, decay, s.cfg.UpvoteWeight)
		trending := utils.IsTrending(score, article.VoteScore, s.cfg.TrendingThreshold)

		err := s.db.WithContext(ctx).
			Model(&models.Article{}).
			Where("id = ?", article.ID).
			Updates(map[string]interface{}{
				"trend_score": score,
				"is_trending": trending,
			}).Error
		if err != nil {
			failures++
			log.Printf("Trend update for article %s failed: %v", article.ID, err)
		}
	}

	if failures > 0 {
		log.Printf("Trend sweep finished with %d failures out of %d articles", failures, len(articles))
	}

	s.invalidateTrendingCache(ctx)
	return nil
}

// GetTrending returns the top published articles ranked by trend score,
// with LLM digests when the digest service is configured. Results are
// cached briefly since the feed only moves on votes and hourly sweeps.
func (s *TrendService) GetTrending(ctx context.Context, limit int) ([]models.TrendingArticle, error) {
	if limit <= 0 || limit > s.cfg.TrendingLimit {
		limit = s.cfg.TrendingLimit
	}

	if cached, ok := s.getCachedTrending(ctx, limit); ok {
		return cached, nil
	}

	var articles []models.Article
	err := s.db.WithContext(ctx).
		Where("status = ?", models.StatusPublished).
		Order("trend_score DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load trending articles: %w", err)
	}

	trending := make([]models.TrendingArticle, len(articles))
	for i, article := range articles {
		trending[i] = models.TrendingArticle{Article: article}
	}

	if s.llm.Enabled() {
		s.llm.GenerateDigestsBatch(trending)
	}

	s.putCachedTrending(ctx, limit, trending)
	return trending, nil
}

func (s *TrendService) getCachedTrending(ctx context.Context, limit int) ([]models.TrendingArticle, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, fmt.Sprintf("%s:%d", trendingCacheKey, limit)).Result()
	if err != nil {
		return nil, false
	}

	var trending []models.TrendingArticle
	if err := json.Unmarshal([]byte(raw), &trending); err != nil {
		return nil, false
	}
	return trending, true
}

func (s *TrendService) putCachedTrending(ctx context.Context, limit int, trending []models.TrendingArticle) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(trending)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, fmt.Sprintf("%s:%d", trendingCacheKey, limit), raw, s.cfg.SummaryCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache trending feed: %v", err)
	}
}

func (s *TrendService) invalidateTrendingCache(ctx context.Context) {
	if s.cache == nil {
		return
	}

	// Feed sizes are small and bounded by TrendingLimit.
	keys := make([]string, 0, s.cfg.TrendingLimit)
	for i := 1; i <= s.cfg.TrendingLimit; i++ {
		keys = append(keys, fmt.Sprintf("%s:%d", trendingCacheKey, i))
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate trending cache: %v", err)
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"content-backend/config"
	"content-backend/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AnalyticsService is the read-only aggregation over DailyAnalytics rows,
// restricted to articles the caller may see: published ones, plus the
// caller's own.
type AnalyticsService struct {
	db    *gorm.DB
	cfg   *config.Config
	cache *redis.Client
}

// NewAnalyticsService creates a new analytics service instance. cache may
// be nil.
func NewAnalyticsService(db *gorm.DB, cfg *config.Config, cache *redis.Client) *AnalyticsService {
	return &AnalyticsService{
		db:    db,
		cfg:   cfg,
		cache: cache,
	}
}

// GetAnalyticsSummary aggregates daily analytics over an optional article
// and date range. callerID may be empty for anonymous callers, who only
// see published content.
func (s *AnalyticsService) GetAnalyticsSummary(ctx context.Context, callerID string, req models.SummaryRequest) (*models.AnalyticsSummary, error) {
	if err := validateDateRange(req.DateFrom, req.DateTo); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("analytics:summary:%s:%s:%s:%s", callerID, req.ArticleID, req.DateFrom, req.DateTo)
	if cached, ok := s.getCachedSummary(ctx, cacheKey); ok {
		return cached, nil
	}

	var totals struct {
		TotalViews    int64
		UniqueViews   int64
		TotalShares   int64
		TotalSaves    int64
		TotalComments int64
	}
	err := s.scopedRows(ctx, callerID, req).
		Select(
			"COALESCE(SUM(view_count), 0) AS total_views, " +
				"COALESCE(SUM(unique_users), 0) AS unique_views, " +
				"COALESCE(SUM(share_count), 0) AS total_shares, " +
				"COALESCE(SUM(save_count), 0) AS total_saves, " +
				"COALESCE(SUM(comment_count), 0) AS total_comments").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum analytics: %w", err)
	}

	// Rate averages only consider days that actually saw views, matching
	// how the per-day rates were derived.
	var averages struct {
		AvgEngagementRate float64
		AvgReadTime       float64
		AvgBounceRate     float64
	}
	err = s.scopedRows(ctx, callerID, req).
		Where("view_count > 0").
		Select(
			"COALESCE(AVG(daily_analytics.engagement_rate), 0) AS avg_engagement_rate, " +
				"COALESCE(AVG(daily_analytics.avg_read_time), 0) AS avg_read_time, " +
				"COALESCE(AVG(daily_analytics.bounce_rate), 0) AS avg_bounce_rate").
		Scan(&averages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to average analytics: %w", err)
	}

	summary := &models.AnalyticsSummary{
		TotalViews:        totals.TotalViews,
		UniqueViews:       totals.UniqueViews,
		TotalShares:       totals.TotalShares,
		TotalSaves:        totals.TotalSaves,
		TotalComments:     totals.TotalComments,
		AvgEngagementRate: averages.AvgEngagementRate,
		AvgReadTime:       averages.AvgReadTime,
		AvgBounceRate:     averages.AvgBounceRate,
	}

	s.putCachedSummary(ctx, cacheKey, summary)
	return summary, nil
}

// scopedRows builds the visibility-filtered DailyAnalytics query. A fresh
// chain per aggregate since gorm chains are single-use.
func (s *AnalyticsService) scopedRows(ctx context.Context, callerID string, req models.SummaryRequest) *gorm.DB {
	q := s.db.WithContext(ctx).
		Model(&models.DailyAnalytics{}).
		Joins("JOIN articles ON articles.id = daily_analytics.article_id").
		Where("articles.status = ? OR articles.author_id = ?", models.StatusPublished, callerID)

	if req.ArticleID != "" {
		q = q.Where("daily_analytics.article_id = ?", req.ArticleID)
	}
	if req.DateFrom != "" {
		q = q.Where("daily_analytics.date >= ?", req.DateFrom)
	}
	if req.DateTo != "" {
		q = q.Where("daily_analytics.date <= ?", req.DateTo)
	}
	return q
}

func validateDateRange(from, to string) error {
	if from != "" {
		if _, err := time.Parse(models.DateLayout, from); err != nil {
			return fmt.Errorf("%w: date_from %q", ErrInvalidDateRange, from)
		}
	}
	if to != "" {
		if _, err := time.Parse(models.DateLayout, to); err != nil {
			return fmt.Errorf("%w: date_to %q", ErrInvalidDateRange, to)
		}
	}
	if from != "" && to != "" && from > to {
		return fmt.Errorf("%w: date_from after date_to", ErrInvalidDateRange)
	}
	return nil
}

func (s *AnalyticsService) getCachedSummary(ctx context.Context, key string) (*models.AnalyticsSummary, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var summary models.AnalyticsSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

func (s *AnalyticsService) putCachedSummary(ctx context.Context, key string, summary *models.AnalyticsSummary) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cfg.SummaryCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache analytics summary: %v", err)
	}
}

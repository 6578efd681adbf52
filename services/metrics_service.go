package services

import (
	"context"
	"fmt"

	"content-backend/models"

	"gorm.io/gorm"
)

// bounceThresholdSeconds is the read time below which a view counts as a
// bounce.
const bounceThresholdSeconds = 10

// MetricsService derives the live per-article counters from the event log
// and is the sole writer of the total_*/avg_*/bounce_rate summary fields.
type MetricsService struct {
	db *gorm.DB
}

// NewMetricsService creates a new metrics service instance
func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{db: db}
}

// RecomputeMetrics rebuilds the article's engagement counters from its
// authenticated events and writes them in a single update. Re-running with
// no new events yields identical output.
func (s *MetricsService) RecomputeMetrics(ctx context.Context, articleID string) error {
	views, err := s.countDistinctViewers(ctx, articleID)
	if err != nil {
		return err
	}

	shares, err := s.countEvents(ctx, articleID, models.EventTypeShare)
	if err != nil {
		return err
	}
	saves, err := s.countEvents(ctx, articleID, models.EventTypeSave)
	if err != nil {
		return err
	}
	comments, err := s.countEvents(ctx, articleID, models.EventTypeComment)
	if err != nil {
		return err
	}

	var avgReadTime float64
	err = s.viewEvents(ctx, articleID).
		Where("read_time_seconds > 0").
		Select("COALESCE(AVG(read_time_seconds), 0)").
		Scan(&avgReadTime).Error
	if err != nil {
		return fmt.Errorf("failed to average read time: %w", err)
	}

	var bounced int64
	err = s.viewEvents(ctx, articleID).
		Where("read_time_seconds < ?", bounceThresholdSeconds).
		Count(&bounced).Error
	if err != nil {
		return fmt.Errorf("failed to count bounces: %w", err)
	}

	bounceRate := 0.0
	engagementRate := 0.0
	if views > 0 {
		bounceRate = float64(bounced) / float64(views) * 100
		engagementRate = float64(shares+saves+comments) / float64(views) * 100
	}

	err = s.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ?", articleID).
		Updates(map[string]interface{}{
			"total_views":     views,
			"unique_views":    views,
			"total_shares":    shares,
			"total_saves":     saves,
			"total_comments":  comments,
			"avg_read_time":   avgReadTime,
			"bounce_rate":     bounceRate,
			"engagement_rate": engagementRate,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update article metrics: %w", err)
	}

	return nil
}

// countDistinctViewers counts users with a view event. The dedup guard
// keeps views at one per user, so this doubles as the total view count.
func (s *MetricsService) countDistinctViewers(ctx context.Context, articleID string) (int64, error) {
	var views int64
	err := s.viewEvents(ctx, articleID).
		Distinct("user_id").
		Count(&views).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count views: %w", err)
	}
	return views, nil
}

func (s *MetricsService) countEvents(ctx context.Context, articleID, eventType string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("article_id = ? AND event_type = ? AND user_id IS NOT NULL", articleID, eventType).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count %s events: %w", eventType, err)
	}
	return count, nil
}

func (s *MetricsService) viewEvents(ctx context.Context, articleID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("article_id = ? AND event_type = ? AND user_id IS NOT NULL", articleID, models.EventTypeView)
}

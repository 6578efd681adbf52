package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"content-backend/config"
	"content-backend/models"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// RetentionService deletes expired unpublished articles and raw
// event/vote/analytics rows past their retention windows. Deletion is
// final; historical rollups already captured the contribution of deleted
// raw events, so no recompute follows a sweep.
type RetentionService struct {
	db    *gorm.DB
	cfg   *config.Config
	clock clockwork.Clock
}

// NewRetentionService creates a new retention service instance
func NewRetentionService(db *gorm.DB, cfg *config.Config, clock clockwork.Clock) *RetentionService {
	return &RetentionService{
		db:    db,
		cfg:   cfg,
		clock: clock,
	}
}

// SweepExpired applies every retention window. Each step is independent;
// a failed step is logged and the sweep moves on to the next.
func (s *RetentionService) SweepExpired(ctx context.Context) error {
	now := s.clock.Now()
	failures := 0

	if err := s.sweepUnpublishedArticles(ctx, now); err != nil {
		failures++
		log.Printf("Retention: article sweep failed: %v", err)
	}

	eventCutoff := now.Add(-s.cfg.EventRetention)
	if err := s.deleteWhere(ctx, &models.Event{}, "events", "created_at < ?", eventCutoff); err != nil {
		failures++
		log.Printf("Retention: event sweep failed: %v", err)
	}

	analyticsCutoff := now.Add(-s.cfg.AnalyticsRetention).Format(models.DateLayout)
	if err := s.deleteWhere(ctx, &models.DailyAnalytics{}, "analytics rows", "date < ?", analyticsCutoff); err != nil {
		failures++
		log.Printf("Retention: analytics sweep failed: %v", err)
	}

	if err := s.sweepStaleVotes(ctx, now); err != nil {
		failures++
		log.Printf("Retention: vote sweep failed: %v", err)
	}

	if failures > 0 {
		log.Printf("Retention sweep finished with %d failed steps", failures)
	}
	return nil
}

// sweepUnpublishedArticles removes non-published articles past the draft
// window together with their dependent rows. Unpublished drafts are
// ephemeral by policy.
func (s *RetentionService) sweepUnpublishedArticles(ctx context.Context, now time.Time) error {
	cutoff := now.Add(-s.cfg.DraftRetention)

	var expired []string
	err := s.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("status <> ? AND created_at < ?", models.StatusPublished, cutoff).
		Pluck("id", &expired).Error
	if err != nil {
		return fmt.Errorf("failed to list expired articles: %w", err)
	}
	if len(expired) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Where("article_id IN ?", expired).Delete(&models.Vote{}).Error; err != nil {
		return fmt.Errorf("failed to delete votes of expired articles: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("article_id IN ?", expired).Delete(&models.Event{}).Error; err != nil {
		return fmt.Errorf("failed to delete events of expired articles: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("article_id IN ?", expired).Delete(&models.DailyAnalytics{}).Error; err != nil {
		return fmt.Errorf("failed to delete analytics of expired articles: %w", err)
	}

	result := s.db.WithContext(ctx).Where("id IN ?", expired).Delete(&models.Article{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expired articles: %w", result.Error)
	}

	log.Printf("Retention: deleted %d expired unpublished articles", result.RowsAffected)
	return nil
}

// sweepStaleVotes deletes old votes only for articles that are no longer
// published, so the live tallies of active content are never eroded.
func (s *RetentionService) sweepStaleVotes(ctx context.Context, now time.Time) error {
	cutoff := now.Add(-s.cfg.VoteRetention)

	published := s.db.Model(&models.Article{}).
		Select("id").
		Where("status = ?", models.StatusPublished)

	result := s.db.WithContext(ctx).
		Where("updated_at < ? AND article_id NOT IN (?)", cutoff, published).
		Delete(&models.Vote{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete stale votes: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		log.Printf("Retention: deleted %d stale votes", result.RowsAffected)
	}
	return nil
}

func (s *RetentionService) deleteWhere(ctx context.Context, model interface{}, what, cond string, arg interface{}) error {
	result := s.db.WithContext(ctx).Where(cond, arg).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Retention: deleted %d %s", result.RowsAffected, what)
	}
	return nil
}

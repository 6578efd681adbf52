package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"content-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventService owns the append-only event log. Events are recorded under
// the authenticated-only policy: anonymous interactions are not persisted.
type EventService struct {
	db      *gorm.DB
	metrics *MetricsService
}

// EventOptions carries the optional attributes of an interaction event.
type EventOptions struct {
	ReadTimeSeconds  int
	ScrollPercentage float64
	Metadata         map[string]string
}

// NewEventService creates a new event service instance
func NewEventService(db *gorm.DB, metrics *MetricsService) *EventService {
	return &EventService{
		db:      db,
		metrics: metrics,
	}
}

// RecordEvent appends one interaction event and triggers the metrics
// aggregator for the article. A signed-in user's view is counted at most
// once per article: repeat views return (nil, nil) without inserting.
func (s *EventService) RecordEvent(ctx context.Context, articleID, userID, eventType string, opts EventOptions) (*models.Event, error) {
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}
	if !models.IsValidEventType(eventType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEventType, eventType)
	}

	var article models.Article
	err := s.db.WithContext(ctx).Select("id").First(&article, "id = ?", articleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load article: %w", err)
	}

	event := models.Event{
		EventID:          uuid.NewString(),
		ArticleID:        articleID,
		UserID:           &userID,
		EventType:        eventType,
		ReadTimeSeconds:  opts.ReadTimeSeconds,
		ScrollPercentage: opts.ScrollPercentage,
	}

	if len(opts.Metadata) > 0 {
		raw, err := json.Marshal(opts.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode event metadata: %w", err)
		}
		event.Metadata = string(raw)
	}

	if eventType == models.EventTypeView {
		duplicate, err := s.hasViewEvent(ctx, articleID, userID)
		if err != nil {
			return nil, err
		}
		if duplicate {
			return nil, nil
		}
		key := models.ViewDedupKey(articleID, userID)
		event.DedupKey = &key
	}

	err = s.db.WithContext(ctx).Create(&event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) && eventType == models.EventTypeView {
		// Lost the race against a concurrent view by the same user; the
		// unique index already counted them once.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}

	if err := s.metrics.RecomputeMetrics(ctx, articleID); err != nil {
		// The event row is durable; the next event on this article
		// recomputes the same aggregates.
		log.Printf("Metrics recompute for %s failed: %v", articleID, err)
	}

	return &event, nil
}

func (s *EventService) hasViewEvent(ctx context.Context, articleID, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("article_id = ? AND user_id = ? AND event_type = ?", articleID, userID, models.EventTypeView).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check for existing view: %w", err)
	}
	return count > 0, nil
}

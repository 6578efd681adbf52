package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"content-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RollupService compacts the raw event log into per-day, per-article
// analytics rows for historical reporting.
type RollupService struct {
	db *gorm.DB
}

// NewRollupService creates a new rollup service instance
func NewRollupService(db *gorm.DB) *RollupService {
	return &RollupService{db: db}
}

// dayBucket accumulates one article's events for a single calendar day.
type dayBucket struct {
	counts      map[string]int64
	uniqueUsers map[string]struct{}
	readTimeSum int64
	readTimeN   int64
	bounced     int64
}

// AggregateDailyAnalytics rolls up the authenticated events of one calendar
// day into DailyAnalytics rows. The upsert overwrites every derived field
// on conflict, so re-running a day is idempotent: retries and repeat runs
// never double-count. Per-article failures are logged and skipped.
func (s *RollupService) AggregateDailyAnalytics(ctx context.Context, date time.Time) error {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	day := dayStart.Format(models.DateLayout)

	var events []models.Event
	err := s.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ? AND user_id IS NOT NULL", dayStart, dayEnd).
		Find(&events).Error
	if err != nil {
		return fmt.Errorf("failed to load events for %s: %w", day, err)
	}

	buckets := make(map[string]*dayBucket)
	for _, event := range events {
		bucket, ok := buckets[event.ArticleID]
		if !ok {
			bucket = &dayBucket{
				counts:      make(map[string]int64),
				uniqueUsers: make(map[string]struct{}),
			}
			buckets[event.ArticleID] = bucket
		}

		bucket.counts[event.EventType]++
		if event.UserID != nil {
			bucket.uniqueUsers[*event.UserID] = struct{}{}
		}
		if event.EventType == models.EventTypeView {
			if event.ReadTimeSeconds > 0 {
				bucket.readTimeSum += int64(event.ReadTimeSeconds)
				bucket.readTimeN++
			}
			if event.ReadTimeSeconds < bounceThresholdSeconds {
				bucket.bounced++
			}
		}
	}

	failures := 0
	for articleID, bucket := range buckets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.upsertDailyRow(ctx, articleID, day, bucket); err != nil {
			failures++
			log.Printf("Rollup for article %s on %s failed: %v", articleID, day, err)
		}
	}

	log.Printf("Rollup for %s: %d articles aggregated, %d failures", day, len(buckets)-failures, failures)
	return nil
}

func (s *RollupService) upsertDailyRow(ctx context.Context, articleID, day string, bucket *dayBucket) error {
	views := bucket.counts[models.EventTypeView]

	avgReadTime := 0.0
	if bucket.readTimeN > 0 {
		avgReadTime = float64(bucket.readTimeSum) / float64(bucket.readTimeN)
	}

	bounceRate := 0.0
	engagementRate := 0.0
	if views > 0 {
		bounceRate = float64(bucket.bounced) / float64(views) * 100
		interactions := bucket.counts[models.EventTypeShare] +
			bucket.counts[models.EventTypeSave] +
			bucket.counts[models.EventTypeComment]
		engagementRate = float64(interactions) / float64(views) * 100
	}

	row := models.DailyAnalytics{
		ArticleID:      articleID,
		Date:           day,
		ViewCount:      views,
		UniqueUsers:    int64(len(bucket.uniqueUsers)),
		ShareCount:     bucket.counts[models.EventTypeShare],
		SaveCount:      bucket.counts[models.EventTypeSave],
		CommentCount:   bucket.counts[models.EventTypeComment],
		LikeCount:      bucket.counts[models.EventTypeLike],
		BookmarkCount:  bucket.counts[models.EventTypeBookmark],
		UpvoteCount:    bucket.counts[models.EventTypeUpvote],
		DownvoteCount:  bucket.counts[models.EventTypeDownvote],
		AvgReadTime:    avgReadTime,
		BounceRate:     bounceRate,
		EngagementRate: engagementRate,
	}

	// Overwrite on conflict, never accumulate: a re-run replaces the row
	// with freshly computed totals.
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "article_id"},
			{Name: "date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"view_count",
			"unique_users",
			"share_count",
			"save_count",
			"comment_count",
			"like_count",
			"bookmark_count",
			"upvote_count",
			"downvote_count",
			"avg_read_time",
			"bounce_rate",
			"engagement_rate",
			"updated_at",
		}),
	}).Create(&row).Error
}

package models

import "time"

// DailyAnalytics stores per-article daily engagement counters compacted
// from raw events. One row per (article, date); the rollup overwrites on
// conflict so re-running a day never double-counts.
type DailyAnalytics struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ArticleID string `gorm:"uniqueIndex:idx_daily_article_date;index:idx_daily_article" json:"article_id"`
	Date      string `gorm:"type:date;uniqueIndex:idx_daily_article_date;index:idx_daily_date" json:"date"`

	ViewCount     int64 `json:"view_count"`
	UniqueUsers   int64 `json:"unique_users"`
	ShareCount    int64 `json:"share_count"`
	SaveCount     int64 `json:"save_count"`
	CommentCount  int64 `json:"comment_count"`
	LikeCount     int64 `json:"like_count"`
	BookmarkCount int64 `json:"bookmark_count"`
	UpvoteCount   int64 `json:"upvote_count"`
	DownvoteCount int64 `json:"downvote_count"`

	AvgReadTime    float64 `json:"avg_read_time"`
	BounceRate     float64 `json:"bounce_rate"`
	EngagementRate float64 `json:"engagement_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (DailyAnalytics) TableName() string {
	return "daily_analytics"
}

// DateLayout is the calendar-day format used for DailyAnalytics.Date.
const DateLayout = "2006-01-02"

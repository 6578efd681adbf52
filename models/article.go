package models

import (
	"time"
)

// Article statuses. The article lifecycle itself is managed by the
// surrounding application; this core only distinguishes published from
// everything else.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
	StatusScheduled = "scheduled"
)

// Article is the summary record for a piece of content. Identity and
// editorial fields are owned externally; the engagement fields are derived
// and mutated only by the engagement services:
//   - Upvotes/Downvotes/VoteScore by the vote ledger
//   - Total*/AvgReadTime/BounceRate/EngagementRate by the metrics aggregator
//   - TrendScore/IsTrending by the trend scorer
type Article struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	Title       string     `json:"title"`
	AuthorID    string     `gorm:"index:idx_articles_author" json:"author_id"`
	Status      string     `gorm:"index:idx_articles_status" json:"status"`
	PublishedAt *time.Time `gorm:"index:idx_articles_published" json:"published_at,omitempty"`

	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	VoteScore int `json:"vote_score"`

	TrendScore float64 `gorm:"index:idx_articles_trend" json:"trend_score"`
	IsTrending bool    `json:"is_trending"`

	TotalViews     int64   `json:"total_views"`
	UniqueViews    int64   `json:"unique_views"`
	TotalShares    int64   `json:"total_shares"`
	TotalSaves     int64   `json:"total_saves"`
	TotalComments  int64   `json:"total_comments"`
	AvgReadTime    float64 `json:"avg_read_time"`
	BounceRate     float64 `json:"bounce_rate"`
	EngagementRate float64 `json:"engagement_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPublished reports whether the article participates in trend scoring.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// PublishTime returns the timestamp trend decay is measured from.
// Articles published without an explicit timestamp fall back to creation.
func (a *Article) PublishTime() time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return a.CreatedAt
}

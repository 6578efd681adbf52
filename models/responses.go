package models

import "time"

// ErrorResponse is the standardized error body for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// VoteRequest is the body of POST /articles/:id/vote.
type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required"`
}

// EventRequest is the body of POST /articles/:id/events.
type EventRequest struct {
	EventType        string            `json:"event_type" binding:"required"`
	ReadTimeSeconds  int               `json:"read_time_seconds"`
	ScrollPercentage float64           `json:"scroll_percentage"`
	Metadata         map[string]string `json:"metadata"`
}

// EventResponse reports the outcome of an event submission. Duplicate
// signed-in views return Recorded=false with no EventID.
type EventResponse struct {
	Recorded bool   `json:"recorded"`
	EventID  string `json:"event_id,omitempty"`
}

// SummaryRequest is the query of GET /analytics/summary.
type SummaryRequest struct {
	ArticleID string `form:"article_id"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

// AnalyticsSummary aggregates daily analytics rows over a date range.
type AnalyticsSummary struct {
	TotalViews        int64   `json:"total_views"`
	UniqueViews       int64   `json:"unique_views"`
	TotalShares       int64   `json:"total_shares"`
	TotalSaves        int64   `json:"total_saves"`
	TotalComments     int64   `json:"total_comments"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgReadTime       float64 `json:"avg_read_time"`
	AvgBounceRate     float64 `json:"avg_bounce_rate"`
}

// TrendingArticle pairs an article with its digest for the trending feed.
type TrendingArticle struct {
	Article
	Digest string `json:"digest,omitempty"`
}

// TrendingResponse is the body of GET /trending.
type TrendingResponse struct {
	Articles    []TrendingArticle `json:"articles"`
	Count       int               `json:"count"`
	GeneratedAt time.Time         `json:"generated_at"`
}

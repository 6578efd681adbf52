package models

import (
	"fmt"
	"time"
)

// Event types
const (
	EventTypeView     = "view"
	EventTypeShare    = "share"
	EventTypeSave     = "save"
	EventTypeComment  = "comment"
	EventTypeLike     = "like"
	EventTypeBookmark = "bookmark"
	EventTypeUpvote   = "upvote"
	EventTypeDownvote = "downvote"
)

var validEventTypes = map[string]struct{}{
	EventTypeView:     {},
	EventTypeShare:    {},
	EventTypeSave:     {},
	EventTypeComment:  {},
	EventTypeLike:     {},
	EventTypeBookmark: {},
	EventTypeUpvote:   {},
	EventTypeDownvote: {},
}

// IsValidEventType reports whether t is a recognized event type.
func IsValidEventType(t string) bool {
	_, ok := validEventTypes[t]
	return ok
}

// Event is an append-only interaction record. Rows are created once, never
// mutated, and deleted only by the retention sweeper.
//
// DedupKey is set to "view:<article>:<user>" for signed-in view events and
// left NULL otherwise. Its unique index makes the once-per-user view guard
// a storage constraint instead of a check-then-insert race: a concurrent
// duplicate insert fails with gorm.ErrDuplicatedKey and is treated as the
// no-op sentinel.
type Event struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	EventID          string    `gorm:"size:36;index:idx_events_event_id" json:"event_id"`
	ArticleID        string    `gorm:"index:idx_events_article;index:idx_events_article_type" json:"article_id"`
	UserID           *string   `gorm:"index:idx_events_user" json:"user_id,omitempty"`
	EventType        string    `gorm:"index:idx_events_article_type" json:"event_type"`
	ReadTimeSeconds  int       `json:"read_time_seconds"`
	ScrollPercentage float64   `json:"scroll_percentage"`
	Metadata         string    `json:"metadata,omitempty"`
	DedupKey         *string   `gorm:"uniqueIndex:idx_events_dedup" json:"-"`
	CreatedAt        time.Time `gorm:"index:idx_events_created" json:"created_at"`
}

// ViewDedupKey builds the uniqueness key for a signed-in view event.
func ViewDedupKey(articleID, userID string) string {
	return fmt.Sprintf("view:%s:%s", articleID, userID)
}

package models

import "time"

// Vote types
const (
	VoteTypeUpvote   = "upvote"
	VoteTypeDownvote = "downvote"
)

// Vote holds a user's current vote on an article. The composite unique
// index is the invariant: a user has zero or one active vote per article.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID string    `gorm:"uniqueIndex:idx_votes_article_user;index:idx_votes_article" json:"article_id"`
	UserID    string    `gorm:"uniqueIndex:idx_votes_article_user" json:"user_id"`
	VoteType  string    `json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index:idx_votes_updated" json:"updated_at"`
}

// IsValidVoteType reports whether t is a recognized vote type.
func IsValidVoteType(t string) bool {
	return t == VoteTypeUpvote || t == VoteTypeDownvote
}

// VoteResult is returned to the caller after a vote mutation settles.
// UserVote is nil when the mutation removed the user's vote.
type VoteResult struct {
	Upvotes   int     `json:"upvotes"`
	Downvotes int     `json:"downvotes"`
	VoteScore int     `json:"vote_score"`
	UserVote  *string `json:"user_vote"`
}

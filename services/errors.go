package services

import "errors"

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidVoteType        = errors.New("invalid vote type")
	ErrInvalidEventType       = errors.New("invalid event type")
	ErrArticleNotFound        = errors.New("article not found")
	ErrInvalidDateRange       = errors.New("invalid date range")
)

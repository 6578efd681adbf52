package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"content-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoteService owns the vote ledger: the Vote rows and the
// upvotes/downvotes/vote_score fields on the article summary.
type VoteService struct {
	db     *gorm.DB
	trends *TrendService
}

// NewVoteService creates a new vote service instance
func NewVoteService(db *gorm.DB, trends *TrendService) *VoteService {
	return &VoteService{
		db:     db,
		trends: trends,
	}
}

// CastVote applies the three-way vote transition for (articleID, userID):
//   - no existing vote: insert one and record an interaction event
//   - same type as existing: remove it (toggle-off), no event
//   - different type: switch the row's type and record an event
//
// After the mutation settles the article tallies are recomputed from the
// ledger and the trend scorer runs over the published corpus. The vote
// mutation is durable even when those follow-ups fail; the next mutation
// or scheduled sweep repairs the derived fields.
func (s *VoteService) CastVote(ctx context.Context, articleID, userID, voteType string) (*models.VoteResult, error) {
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}
	if !models.IsValidVoteType(voteType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVoteType, voteType)
	}
	if err := s.ensureArticleExists(ctx, articleID); err != nil {
		return nil, err
	}

	err := s.applyVote(ctx, articleID, userID, voteType)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent request inserted the first vote for this pair
		// between our read and write. Re-run once: the row now exists,
		// so this resolves as a toggle or a switch.
		err = s.applyVote(ctx, articleID, userID, voteType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply vote: %w", err)
	}

	result, err := s.refreshTallies(ctx, articleID)
	if err != nil {
		return nil, err
	}

	userVote, err := s.GetUserVote(ctx, articleID, userID)
	if err != nil {
		return nil, err
	}
	result.UserVote = userVote

	if err := s.trends.RecomputeTrendScores(ctx); err != nil {
		log.Printf("Trend recompute after vote on %s failed: %v", articleID, err)
	}

	return result, nil
}

// GetUserVote returns the user's current vote type, or nil when the user
// has no active vote on the article.
func (s *VoteService) GetUserVote(ctx context.Context, articleID, userID string) (*string, error) {
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}

	var vote models.Vote
	err := s.db.WithContext(ctx).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up vote: %w", err)
	}
	return &vote.VoteType, nil
}

// applyVote runs one vote transition inside a transaction together with
// its interaction event. The unique index on (article_id, user_id) is the
// sole guard against concurrent duplicate inserts.
func (s *VoteService) applyVote(ctx context.Context, articleID, userID, voteType string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("article_id = ? AND user_id = ?", articleID, userID).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{
				ArticleID: articleID,
				UserID:    userID,
				VoteType:  voteType,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			return recordVoteEvent(tx, articleID, userID, voteType)

		case err != nil:
			return err

		case existing.VoteType == voteType:
			// Toggle-off: same vote twice clears it. No event for removal.
			return tx.Delete(&existing).Error

		default:
			if err := tx.Model(&existing).Update("vote_type", voteType).Error; err != nil {
				return err
			}
			return recordVoteEvent(tx, articleID, userID, voteType)
		}
	})
}

// recordVoteEvent appends the interaction event for a new or switched vote.
func recordVoteEvent(tx *gorm.DB, articleID, userID, voteType string) error {
	event := models.Event{
		EventID:   uuid.NewString(),
		ArticleID: articleID,
		UserID:    &userID,
		EventType: voteType,
	}
	return tx.Create(&event).Error
}

// refreshTallies recounts the ledger for the article and persists
// upvotes/downvotes/vote_score on the summary record in one write, keeping
// vote_score == upvotes - downvotes.
func (s *VoteService) refreshTallies(ctx context.Context, articleID string) (*models.VoteResult, error) {
	var tallies []struct {
		VoteType string
		Count    int
	}
	err := s.db.WithContext(ctx).
		Model(&models.Vote{}).
		Select("vote_type, COUNT(*) as count").
		Where("article_id = ?", articleID).
		Group("vote_type").
		Scan(&tallies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	result := &models.VoteResult{}
	for _, t := range tallies {
		switch t.VoteType {
		case models.VoteTypeUpvote:
			result.Upvotes = t.Count
		case models.VoteTypeDownvote:
			result.Downvotes = t.Count
		}
	}
	result.VoteScore = result.Upvotes - result.Downvotes

	err = s.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ?", articleID).
		Updates(map[string]interface{}{
			"upvotes":    result.Upvotes,
			"downvotes":  result.Downvotes,
			"vote_score": result.VoteScore,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update vote tallies: %w", err)
	}

	return result, nil
}

func (s *VoteService) ensureArticleExists(ctx context.Context, articleID string) error {
	var article models.Article
	err := s.db.WithContext(ctx).Select("id").First(&article, "id = ?", articleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrArticleNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load article: %w", err)
	}
	return nil
}

package handlers

import (
	"net/http"

	"content-backend/models"
	"content-backend/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService *services.VoteService
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

// CastVote applies a vote transition for the calling user
// POST /api/v1/articles/:id/vote
// Body: {"vote_type": "upvote"}
func (h *VoteHandler) CastVote(c *gin.Context) {
	var req models.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.voteService.CastVote(c.Request.Context(), c.Param("id"), currentUserID(c), req.VoteType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUserVote returns the calling user's current vote, or null
// GET /api/v1/articles/:id/vote
func (h *VoteHandler) GetUserVote(c *gin.Context) {
	vote, err := h.voteService.GetUserVote(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_vote": vote})
}

package handlers

import (
	"errors"
	"net/http"

	"content-backend/models"
	"content-backend/services"

	"github.com/gin-gonic/gin"
)

// userIDHeader carries the authenticated user identity. Authentication
// itself happens upstream; this core only consumes the resolved identity.
const userIDHeader = "X-User-ID"

// =============================================================================
// Response Helpers
// =============================================================================

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, code int, error, message string) {
	c.JSON(code, models.ErrorResponse{
		Error:   error,
		Message: message,
		Code:    code,
	})
}

// respondBadRequest sends a 400 error response
func respondBadRequest(c *gin.Context, message string) {
	respondWithError(c, http.StatusBadRequest, "Invalid request", message)
}

// respondInternalError sends a 500 error response
func respondInternalError(c *gin.Context, message string) {
	respondWithError(c, http.StatusInternalServerError, "Internal error", message)
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAuthenticationRequired):
		respondWithError(c, http.StatusUnauthorized, "Authentication required", err.Error())
	case errors.Is(err, services.ErrInvalidVoteType),
		errors.Is(err, services.ErrInvalidEventType),
		errors.Is(err, services.ErrInvalidDateRange):
		respondBadRequest(c, err.Error())
	case errors.Is(err, services.ErrArticleNotFound):
		respondWithError(c, http.StatusNotFound, "Not found", err.Error())
	default:
		respondInternalError(c, err.Error())
	}
}

// currentUserID extracts the caller identity set by the upstream auth
// layer; empty when the request is anonymous.
func currentUserID(c *gin.Context) string {
	return c.GetHeader(userIDHeader)
}

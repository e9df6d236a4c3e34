package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"huddle-auction/internal/auctionerrors"
	"huddle-auction/internal/models"
	"huddle-auction/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	// validation
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	case errors.Is(err, auctionerrors.ErrInvalidTime):
		return http.StatusBadRequest, "scheduled time must be in the future"
	case errors.Is(err, auctionerrors.ErrInvalidProof):
		return http.StatusBadRequest, "invalid social proof link"
	case errors.Is(err, auctionerrors.ErrInvalidStars):
		return http.StatusBadRequest, "stars must be between 1 and 5"

	// authorization
	case errors.Is(err, auctionerrors.ErrNotRegistered):
		return http.StatusForbidden, "host is not registered"
	case errors.Is(err, auctionerrors.ErrNotHost):
		return http.StatusForbidden, "caller is not the huddle's host"
	case errors.Is(err, auctionerrors.ErrOwnHuddle):
		return http.StatusForbidden, "hosts cannot bid on their own huddles"
	case errors.Is(err, auctionerrors.ErrNotParticipant):
		return http.StatusForbidden, "account did not participate in the huddle"

	// not found
	case errors.Is(err, auctionerrors.ErrHuddleNotFound):
		return http.StatusNotFound, "huddle not found"
	case errors.Is(err, auctionerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for huddle"

	// lifecycle state
	case errors.Is(err, auctionerrors.ErrNotOpen):
		return http.StatusConflict, "huddle is not open for bids"
	case errors.Is(err, auctionerrors.ErrNotPending):
		return http.StatusConflict, "huddle is not awaiting acceptance"
	case errors.Is(err, auctionerrors.ErrNotClosed):
		return http.StatusConflict, "huddle is not closed"
	case errors.Is(err, auctionerrors.ErrExpired):
		return http.StatusConflict, "huddle's scheduled time has passed"
	case errors.Is(err, auctionerrors.ErrTimeNotReached):
		return http.StatusConflict, "huddle's scheduled time not reached"
	case errors.Is(err, auctionerrors.ErrAlreadyClaimed):
		return http.StatusConflict, "huddle already claimed"
	case errors.Is(err, auctionerrors.ErrNoWinner):
		return http.StatusConflict, "huddle has no winning bid"

	// conflicts
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid value too low"
	case errors.Is(err, auctionerrors.ErrAlreadyRegistered):
		return http.StatusConflict, "account already registered"
	case errors.Is(err, auctionerrors.ErrAlreadyRated):
		return http.StatusConflict, "rating already recorded"

	// collaborators
	case errors.Is(err, auctionerrors.ErrInsufficientBalance):
		return http.StatusPaymentRequired, "insufficient balance"

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// ToHuddleResponse converts a huddle model into its response DTO
func ToHuddleResponse(h models.Huddle) HuddleResponse {
	return HuddleResponse{
		HuddleID:      h.HuddleID,
		HostID:        h.HostID,
		ScheduledTime: h.ScheduledTime,
		FloorPrice:    h.FloorPrice,
		Status:        string(h.Status),
		WinningBidID:  h.WinningBidID,
	}
}

// ToBidResponse converts a bid model into its response DTO
func ToBidResponse(b models.Bid) BidResponse {
	return BidResponse{
		BidID:       b.BidID,
		HuddleID:    b.HuddleID,
		BidderID:    b.BidderID,
		Value:       b.Value,
		SubmittedAt: b.SubmittedAt,
		Status:      string(b.Status),
	}
}

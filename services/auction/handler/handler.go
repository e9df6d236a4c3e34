package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"huddle-auction/internal/models"
	"huddle-auction/services/auction/helpers"
	"huddle-auction/utils"

	"github.com/gin-gonic/gin"
)

type IdentityServiceInterface interface {
	Bind(accountID, handle, proofLink string) (models.IdentityBinding, error)
	IsRegistered(accountID string) bool
	GetBinding(accountID string) (models.IdentityBinding, error)
}

type HuddleServiceInterface interface {
	CreateHuddle(hostID string, scheduledTime int64, floorPrice uint64) (models.Huddle, error)
	OpenHuddleForHost(requestedHostID string, floorPrice uint64) (models.Huddle, error)
	AcceptHuddle(hostID string, huddleID uint64, scheduledTime int64) (models.Huddle, error)
	Finalize(huddleID uint64) (models.Huddle, error)
	Claim(hostID string, huddleID uint64) (models.Huddle, error)
	GetHuddle(huddleID uint64) (models.Huddle, error)
	GetHuddlesByHost(hostID string) ([]models.Huddle, error)
}

type BiddingServiceInterface interface {
	PlaceBid(bidderID string, huddleID uint64, value uint64) (models.Bid, error)
	GetBidsForHuddle(huddleID uint64) ([]models.Bid, error)
	GetWinningBid(huddleID uint64) (models.Bid, error)
}

type ReputationServiceInterface interface {
	Rate(raterID string, huddleID uint64, rateeID string, stars uint8) (models.ReputationEntry, error)
	GetScore(accountID string) (models.Score, error)
}

// AuctionHandler exposes the auction system's public operations over HTTP
type AuctionHandler struct {
	identity   IdentityServiceInterface
	huddles    HuddleServiceInterface
	bidding    BiddingServiceInterface
	reputation ReputationServiceInterface
}

func NewAuctionHandler(
	identity IdentityServiceInterface,
	huddles HuddleServiceInterface,
	bidding BiddingServiceInterface,
	reputation ReputationServiceInterface,
) *AuctionHandler {
	return &AuctionHandler{
		identity:   identity,
		huddles:    huddles,
		bidding:    bidding,
		reputation: reputation,
	}
}

// huddleIDParam parses the :huddle_id path parameter, replying 400 on garbage
func huddleIDParam(c *gin.Context) (uint64, bool) {
	raw := c.Param("huddle_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid huddle id %q", raw), "invalid huddle id")
		return 0, false
	}
	return id, true
}

// respondServiceError maps a service error onto the HTTP response and logs it
func respondServiceError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, err, message)
	ctx["error"] = err.Error()
	utils.Warn(handlerName+": "+message, ctx)
}

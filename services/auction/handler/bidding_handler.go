package handler

import (
	"errors"
	"net/http"

	"huddle-auction/internal/auctionerrors"
	"huddle-auction/services/auction/helpers"
	"huddle-auction/utils"

	"github.com/gin-gonic/gin"
)

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.bidding.PlaceBid(req.BidderID, req.HuddleID, req.Value)
	if err != nil {
		respondServiceError(c, "PlaceBidHandler", err, map[string]any{
			"huddle_id": req.HuddleID,
			"bidder_id": req.BidderID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":    bid.BidID,
		"huddle_id": bid.HuddleID,
		"bidder_id": bid.BidderID,
		"value":     bid.Value,
	})
}

// GetBidsByHuddleHandler handles GET /huddles/:huddle_id/bids
func (h *AuctionHandler) GetBidsByHuddleHandler(c *gin.Context) {
	huddleID, ok := huddleIDParam(c)
	if !ok {
		return
	}

	bids, err := h.bidding.GetBidsForHuddle(huddleID)
	if err != nil {
		respondServiceError(c, "GetBidsByHuddleHandler", err, map[string]any{
			"huddle_id": huddleID,
		})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, helpers.ToBidResponse(bid))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByHuddleHandler", "bids retrieved successfully", map[string]any{
		"huddle_id": huddleID,
		"count":     len(resp),
	})
}

// GetWinningBidHandler handles GET /huddles/:huddle_id/winning
func (h *AuctionHandler) GetWinningBidHandler(c *gin.Context) {
	huddleID, ok := huddleIDParam(c)
	if !ok {
		return
	}

	bid, err := h.bidding.GetWinningBid(huddleID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"huddle_id": huddleID})
			return
		}
		respondServiceError(c, "GetWinningBidHandler", err, map[string]any{
			"huddle_id": huddleID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "winning bid retrieved successfully")
}

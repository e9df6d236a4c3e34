package handler

import (
	"net/http"

	"huddle-auction/services/auction/helpers"
	"huddle-auction/utils"

	"github.com/gin-gonic/gin"
)

// RateHandler handles POST /ratings
func (h *AuctionHandler) RateHandler(c *gin.Context) {
	var req helpers.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RateHandler", err)
		return
	}

	entry, err := h.reputation.Rate(req.RaterID, req.HuddleID, req.RateeID, req.Stars)
	if err != nil {
		respondServiceError(c, "RateHandler", err, map[string]any{
			"huddle_id": req.HuddleID,
			"rater_id":  req.RaterID,
			"ratee_id":  req.RateeID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, entry, "rating recorded successfully")
	helpers.LogSuccess("RateHandler", "rating recorded successfully", map[string]any{
		"huddle_id": entry.HuddleID,
		"rater_id":  entry.RaterID,
		"ratee_id":  entry.RateeID,
		"stars":     entry.Stars,
	})
}

// GetScoreHandler handles GET /accounts/:account_id/score
func (h *AuctionHandler) GetScoreHandler(c *gin.Context) {
	accountID := c.Param("account_id")

	score, err := h.reputation.GetScore(accountID)
	if err != nil {
		respondServiceError(c, "GetScoreHandler", err, map[string]any{
			"account_id": accountID,
		})
		return
	}

	resp := helpers.ScoreResponse{
		AccountID: score.AccountID,
		Average:   score.Average,
		Count:     score.Count,
		Rated:     score.Rated,
	}

	utils.JSONResponse(c, http.StatusOK, resp, "score retrieved successfully")
}

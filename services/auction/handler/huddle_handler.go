package handler

import (
	"net/http"

	"huddle-auction/services/auction/helpers"
	"huddle-auction/utils"

	"github.com/gin-gonic/gin"
)

// CreateHuddleHandler handles POST /huddles
func (h *AuctionHandler) CreateHuddleHandler(c *gin.Context) {
	var req helpers.CreateHuddleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateHuddleHandler", err)
		return
	}

	huddle, err := h.huddles.CreateHuddle(req.HostID, req.ScheduledTime, req.FloorPrice)
	if err != nil {
		respondServiceError(c, "CreateHuddleHandler", err, map[string]any{
			"host_id": req.HostID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToHuddleResponse(huddle), "huddle created successfully")
	helpers.LogSuccess("CreateHuddleHandler", "huddle created successfully", map[string]any{
		"huddle_id":      huddle.HuddleID,
		"host_id":        huddle.HostID,
		"scheduled_time": huddle.ScheduledTime,
		"floor_price":    huddle.FloorPrice,
	})
}

// OpenHuddleHandler handles POST /huddles/open
func (h *AuctionHandler) OpenHuddleHandler(c *gin.Context) {
	var req helpers.OpenHuddleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "OpenHuddleHandler", err)
		return
	}

	huddle, err := h.huddles.OpenHuddleForHost(req.HostID, req.FloorPrice)
	if err != nil {
		respondServiceError(c, "OpenHuddleHandler", err, map[string]any{
			"host_id": req.HostID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToHuddleResponse(huddle), "huddle opened for host")
	helpers.LogSuccess("OpenHuddleHandler", "huddle opened for host", map[string]any{
		"huddle_id": huddle.HuddleID,
		"host_id":   huddle.HostID,
	})
}

// AcceptHuddleHandler handles POST /huddles/:huddle_id/accept
func (h *AuctionHandler) AcceptHuddleHandler(c *gin.Context) {
	huddleID, ok := huddleIDParam(c)
	if !ok {
		return
	}

	var req helpers.AcceptHuddleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AcceptHuddleHandler", err)
		return
	}

	huddle, err := h.huddles.AcceptHuddle(req.HostID, huddleID, req.ScheduledTime)
	if err != nil {
		respondServiceError(c, "AcceptHuddleHandler", err, map[string]any{
			"huddle_id": huddleID,
			"host_id":   req.HostID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToHuddleResponse(huddle), "huddle accepted successfully")
	helpers.LogSuccess("AcceptHuddleHandler", "huddle accepted successfully", map[string]any{
		"huddle_id":      huddle.HuddleID,
		"host_id":        huddle.HostID,
		"scheduled_time": huddle.ScheduledTime,
	})
}

// FinalizeHuddleHandler handles POST /huddles/:huddle_id/finalize
func (h *AuctionHandler) FinalizeHuddleHandler(c *gin.Context) {
	huddleID, ok := huddleIDParam(c)
	if !ok {
		return
	}

	huddle, err := h.huddles.Finalize(huddleID)
	if err != nil {
		respondServiceError(c, "FinalizeHuddleHandler", err, map[string]any{
			"huddle_id": huddleID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToHuddleResponse(huddle), "huddle finalized")
	helpers.LogSuccess("FinalizeHuddleHandler", "huddle finalized", map[string]any{
		"huddle_id": huddle.HuddleID,
		"status":    string(huddle.Status),
	})
}

// ClaimHuddleHandler handles POST /huddles/:huddle_id/claim
func (h *AuctionHandler) ClaimHuddleHandler(c *gin.Context) {
	huddleID, ok := huddleIDParam(c)
	if !ok {
		return
	}

	var req helpers.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ClaimHuddleHandler", err)
		return
	}

	huddle, err := h.huddles.Claim(req.HostID, huddleID)
	if err != nil {
		respondServiceError(c, "ClaimHuddleHandler", err, map[string]any{
			"huddle_id": huddleID,
			"host_id":   req.HostID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToHuddleResponse(huddle), "huddle claimed successfully")
	helpers.LogSuccess("ClaimHuddleHandler", "huddle claimed successfully", map[string]any{
		"huddle_id": huddle.HuddleID,
		"host_id":   huddle.HostID,
	})
}

// GetHuddleHandler handles GET /huddles/:huddle_id
func (h *AuctionHandler) GetHuddleHandler(c *gin.Context) {
	huddleID, ok := huddleIDParam(c)
	if !ok {
		return
	}

	huddle, err := h.huddles.GetHuddle(huddleID)
	if err != nil {
		respondServiceError(c, "GetHuddleHandler", err, map[string]any{
			"huddle_id": huddleID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToHuddleResponse(huddle), "huddle retrieved successfully")
}

// GetHuddlesByHostHandler handles GET /hosts/:account_id/huddles
func (h *AuctionHandler) GetHuddlesByHostHandler(c *gin.Context) {
	hostID := c.Param("account_id")

	huddles, err := h.huddles.GetHuddlesByHost(hostID)
	if err != nil {
		respondServiceError(c, "GetHuddlesByHostHandler", err, map[string]any{
			"host_id": hostID,
		})
		return
	}

	resp := make([]helpers.HuddleResponse, 0, len(huddles))
	for _, huddle := range huddles {
		resp = append(resp, helpers.ToHuddleResponse(huddle))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "huddles retrieved successfully")
	helpers.LogSuccess("GetHuddlesByHostHandler", "huddles retrieved successfully", map[string]any{
		"host_id": hostID,
		"count":   len(resp),
	})
}

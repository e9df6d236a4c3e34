package handler

import (
	"net/http"

	"huddle-auction/services/auction/helpers"
	"huddle-auction/utils"

	"github.com/gin-gonic/gin"
)

// BindHandler handles POST /hosts
func (h *AuctionHandler) BindHandler(c *gin.Context) {
	var req helpers.BindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "BindHandler", err)
		return
	}

	binding, err := h.identity.Bind(req.AccountID, req.Handle, req.ProofLink)
	if err != nil {
		respondServiceError(c, "BindHandler", err, map[string]any{
			"account_id": req.AccountID,
		})
		return
	}

	resp := helpers.BindingResponse{
		AccountID:    binding.AccountID,
		SocialHandle: binding.SocialHandle,
		ProofLink:    binding.ProofLink,
		Verified:     binding.Verified,
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "identity bound successfully")
	helpers.LogSuccess("BindHandler", "identity bound successfully", map[string]any{
		"account_id": binding.AccountID,
		"handle":     binding.SocialHandle,
	})
}

// IsRegisteredHandler handles GET /hosts/:account_id
func (h *AuctionHandler) IsRegisteredHandler(c *gin.Context) {
	accountID := c.Param("account_id")

	registered := h.identity.IsRegistered(accountID)
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"account_id": accountID,
		"registered": registered,
	}, "registration checked successfully")
}

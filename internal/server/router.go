package server

import (
	handler "huddle-auction/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(
	identity handler.IdentityServiceInterface,
	huddles handler.HuddleServiceInterface,
	bidding handler.BiddingServiceInterface,
	reputation handler.ReputationServiceInterface,
) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(identity, huddles, bidding, reputation)

	hosts := router.Group("/hosts")
	{
		hosts.POST("", auctionHandler.BindHandler)
		hosts.GET("/:account_id", auctionHandler.IsRegisteredHandler)
		hosts.GET("/:account_id/huddles", auctionHandler.GetHuddlesByHostHandler)
	}

	huddleRoutes := router.Group("/huddles")
	{
		huddleRoutes.POST("", auctionHandler.CreateHuddleHandler)
		huddleRoutes.POST("/open", auctionHandler.OpenHuddleHandler)
		huddleRoutes.POST("/:huddle_id/accept", auctionHandler.AcceptHuddleHandler)
		huddleRoutes.POST("/:huddle_id/finalize", auctionHandler.FinalizeHuddleHandler)
		huddleRoutes.POST("/:huddle_id/claim", auctionHandler.ClaimHuddleHandler)
		huddleRoutes.GET("/:huddle_id", auctionHandler.GetHuddleHandler)
		huddleRoutes.GET("/:huddle_id/bids", auctionHandler.GetBidsByHuddleHandler)
		huddleRoutes.GET("/:huddle_id/winning", auctionHandler.GetWinningBidHandler)
	}

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
	}

	ratings := router.Group("/ratings")
	{
		ratings.POST("", auctionHandler.RateHandler)
	}

	accounts := router.Group("/accounts")
	{
		accounts.GET("/:account_id/score", auctionHandler.GetScoreHandler)
	}

	return router
}

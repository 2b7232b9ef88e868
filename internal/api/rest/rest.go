package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/assets", handler.ListAssets)

		// Collection pages (ERC-1155, ERC-721)
		v1.GET("/collections/:asset", handler.GetCollection)
		v1.POST("/collections/:asset/refresh", handler.RefreshCollection)
		v1.GET("/collections/:asset/views/:viewer", handler.GetTrackedView)
		v1.DELETE("/collections/:asset/views/:viewer", handler.DeleteTrackedView)

		// Contract pages
		v1.GET("/tokens/erc20", handler.GetERC20)
		v1.GET("/staking", handler.GetStaking)
		v1.GET("/tipjar", handler.GetTipJar)

		// Unsigned transactions for the wallet to sign
		v1.POST("/intents/:action", handler.PrepareIntent)
	}
}

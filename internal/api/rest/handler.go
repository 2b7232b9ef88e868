package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/actions"
	"github.com/feral-file/ff-marketplace/internal/api/shared/constants"
	"github.com/feral-file/ff-marketplace/internal/api/shared/dto"
	"github.com/feral-file/ff-marketplace/internal/api/shared/executor"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// ListAssets lists the configured contracts
	// GET /api/v1/assets
	ListAssets(c *gin.Context)

	// GetCollection builds a fresh view of a collection
	// GET /api/v1/collections/:asset?account=<address>&start=<id>&end=<id>
	GetCollection(c *gin.Context)

	// RefreshCollection builds a tracked view for a viewer, superseding its previous build
	// POST /api/v1/collections/:asset/refresh
	RefreshCollection(c *gin.Context)

	// GetTrackedView returns the latest tracked view for a viewer
	// GET /api/v1/collections/:asset/views/:viewer
	GetTrackedView(c *gin.Context)

	// DeleteTrackedView stops tracking a viewer
	// DELETE /api/v1/collections/:asset/views/:viewer
	DeleteTrackedView(c *gin.Context)

	// GetERC20 returns the fungible token page
	// GET /api/v1/tokens/erc20?account=<address>
	GetERC20(c *gin.Context)

	// GetStaking returns the staking page
	// GET /api/v1/staking?account=<address>
	GetStaking(c *gin.Context)

	// GetTipJar returns the tip jar page
	// GET /api/v1/tipjar?account=<address>
	GetTipJar(c *gin.Context)

	// PrepareIntent prepares an unsigned transaction
	// POST /api/v1/intents/:action
	PrepareIntent(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	chainID  uint64
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(chainID uint64, exec executor.Executor) Handler {
	return &handler{
		chainID:  chainID,
		executor: exec,
	}
}

func (h *handler) ListAssets(c *gin.Context) {
	c.JSON(http.StatusOK, h.executor.ListAssets())
}

func (h *handler) GetCollection(c *gin.Context) {
	asset := c.Param("asset")
	if asset == "" {
		respondBadRequest(c, "Asset is required")
		return
	}

	query, err := ParseCollectionQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	view, err := h.executor.BuildCollectionView(c.Request.Context(), asset, *query)
	if err != nil {
		respondExecutorError(c, err, "Failed to build collection view", zap.String("asset", asset))
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *handler) RefreshCollection(c *gin.Context) {
	asset := c.Param("asset")
	if asset == "" {
		respondBadRequest(c, "Asset is required")
		return
	}

	var req dto.RefreshCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondExecutorError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.RefreshCollectionView(c.Request.Context(), asset, req.Viewer, req.Query())
	if err != nil {
		respondExecutorError(c, err, "Failed to refresh collection view", zap.String("asset", asset))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetTrackedView(c *gin.Context) {
	asset := c.Param("asset")
	viewer := c.Param("viewer")
	if asset == "" || viewer == "" {
		respondBadRequest(c, "Asset and viewer are required")
		return
	}

	response, err := h.executor.GetTrackedView(asset, viewer)
	if err != nil {
		respondExecutorError(c, err, "Failed to get tracked view", zap.String("asset", asset))
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) DeleteTrackedView(c *gin.Context) {
	asset := c.Param("asset")
	viewer := c.Param("viewer")
	if asset == "" || viewer == "" {
		respondBadRequest(c, "Asset and viewer are required")
		return
	}

	if err := h.executor.ForgetTrackedView(asset, viewer); err != nil {
		respondExecutorError(c, err, "Failed to delete tracked view", zap.String("asset", asset))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) GetERC20(c *gin.Context) {
	account, err := ParseAccountQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	info, err := h.executor.GetERC20Summary(c.Request.Context(), account)
	if err != nil {
		respondExecutorError(c, err, "Failed to get token summary")
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *handler) GetStaking(c *gin.Context) {
	account, err := ParseAccountQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	info, err := h.executor.GetStakingSummary(c.Request.Context(), account)
	if err != nil {
		respondExecutorError(c, err, "Failed to get staking summary")
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *handler) GetTipJar(c *gin.Context) {
	account, err := ParseAccountQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	info, err := h.executor.GetTipJarSummary(c.Request.Context(), account)
	if err != nil {
		respondExecutorError(c, err, "Failed to get tip jar summary")
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *handler) PrepareIntent(c *gin.Context) {
	action := c.Param("action")
	if action == "" {
		respondBadRequest(c, "Action is required")
		return
	}

	var params actions.Params
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&params); err != nil {
			respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
			return
		}
	}

	intent, err := h.executor.PrepareIntent(action, params)
	if err != nil {
		respondExecutorError(c, err, "Failed to prepare transaction", zap.String("action", action))
		return
	}

	c.JSON(http.StatusOK, intent)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Service: constants.SERVICE_NAME,
		ChainID: h.chainID,
	})
}

package dto

import (
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/registry"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	ChainID uint64 `json:"chain_id"`
}

// AssetListResponse lists the configured contracts
type AssetListResponse struct {
	Assets []registry.ContractEntry `json:"assets"`
}

// TrackedViewResponse represents a tracked collection view. Current is false
// when a newer refresh for the same viewer superseded this build.
type TrackedViewResponse struct {
	Viewer  string                 `json:"viewer"`
	Current bool                   `json:"current"`
	View    *domain.CollectionView `json:"view"`
}

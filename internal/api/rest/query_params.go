package rest

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-marketplace/internal/api/shared/dto"
	"github.com/feral-file/ff-marketplace/internal/domain"
)

// CollectionQueryParams holds query parameters for GET /collections/:asset
type CollectionQueryParams struct {
	Account string  `form:"account"`
	Start   *uint64 `form:"start"`
	End     *uint64 `form:"end"`
}

// AccountQueryParams holds the account query parameter of the dashboard pages
type AccountQueryParams struct {
	Account string `form:"account"`
}

// ParseCollectionQuery parses query parameters for GET /collections/:asset
func ParseCollectionQuery(c *gin.Context) (*dto.CollectionQuery, error) {
	var params CollectionQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	account, err := domain.ParseOptionalAddress(params.Account)
	if err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}

	return &dto.CollectionQuery{
		Account: account,
		Start:   params.Start,
		End:     params.End,
	}, nil
}

// ParseAccountQuery parses the optional account query parameter
func ParseAccountQuery(c *gin.Context) (*common.Address, error) {
	var params AccountQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	account, err := domain.ParseOptionalAddress(params.Account)
	if err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}
	return account, nil
}

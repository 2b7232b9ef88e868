package dto

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-marketplace/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-marketplace/internal/api/shared/errors"
	"github.com/feral-file/ff-marketplace/internal/domain"
)

// CollectionQuery is the parsed form of a collection request
type CollectionQuery struct {
	Account *common.Address
	Start   *uint64
	End     *uint64
}

// RefreshCollectionRequest represents the request body for triggering a tracked collection view
type RefreshCollectionRequest struct {
	Viewer  string  `json:"viewer"`
	Account string  `json:"account"`
	Start   *uint64 `json:"start"`
	End     *uint64 `json:"end"`
}

// Validate validates the request body
func (r *RefreshCollectionRequest) Validate() error {
	if err := ValidateViewer(r.Viewer); err != nil {
		return err
	}

	if _, err := domain.ParseOptionalAddress(r.Account); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid account: %s", r.Account))
	}

	return nil
}

// Query converts the body into a collection query; call Validate first
func (r *RefreshCollectionRequest) Query() CollectionQuery {
	account, _ := domain.ParseOptionalAddress(r.Account)
	return CollectionQuery{
		Account: account,
		Start:   r.Start,
		End:     r.End,
	}
}

// ValidateViewer checks a client supplied viewer id
func ValidateViewer(viewer string) error {
	viewer = strings.TrimSpace(viewer)
	if viewer == "" {
		return apierrors.NewValidationError("viewer is required")
	}
	if len(viewer) > constants.MAX_VIEWER_ID_LEN {
		return apierrors.NewValidationError(fmt.Sprintf("viewer must be at most %d characters", constants.MAX_VIEWER_ID_LEN))
	}
	if strings.Contains(viewer, constants.VIEWER_KEY_SEPARATOR) {
		return apierrors.NewValidationError(fmt.Sprintf("viewer must not contain %q", constants.VIEWER_KEY_SEPARATOR))
	}
	return nil
}

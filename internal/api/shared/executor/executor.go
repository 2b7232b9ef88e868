package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/actions"
	"github.com/feral-file/ff-marketplace/internal/api/shared/constants"
	"github.com/feral-file/ff-marketplace/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-marketplace/internal/api/shared/errors"
	"github.com/feral-file/ff-marketplace/internal/collection"
	"github.com/feral-file/ff-marketplace/internal/contract"
	"github.com/feral-file/ff-marketplace/internal/dashboard"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/registry"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// ListAssets returns the configured contracts
	ListAssets() *dto.AssetListResponse

	// BuildCollectionView builds a fresh, untracked view of a collection asset
	BuildCollectionView(ctx context.Context, asset string, query dto.CollectionQuery) (*domain.CollectionView, error)

	// RefreshCollectionView builds a view for viewer, superseding any build in flight for it
	RefreshCollectionView(ctx context.Context, asset string, viewer string, query dto.CollectionQuery) (*dto.TrackedViewResponse, error)

	// GetTrackedView returns the latest view held for viewer
	GetTrackedView(asset string, viewer string) (*dto.TrackedViewResponse, error)

	// ForgetTrackedView cancels any build for viewer and drops its view
	ForgetTrackedView(asset string, viewer string) error

	// GetERC20Summary reads the fungible token page
	GetERC20Summary(ctx context.Context, account *common.Address) (*dashboard.ERC20Info, error)

	// GetStakingSummary reads the staking page
	GetStakingSummary(ctx context.Context, account *common.Address) (*dashboard.StakingInfo, error)

	// GetTipJarSummary reads the tip jar page
	GetTipJarSummary(ctx context.Context, account *common.Address) (*dashboard.TipJarInfo, error)

	// PrepareIntent builds an unsigned transaction for action
	PrepareIntent(action string, params actions.Params) (*contract.TransactionIntent, error)
}

// Config holds the executor settings
type Config struct {
	DefaultScanSize int
	MaxScanSize     int
	NativeDecimals  int32
	// TipValue is the send-tip amount in native units when the request omits one
	TipValue string
}

type executor struct {
	provider   contract.Provider
	registry   registry.ContractRegistry
	aggregator collection.Aggregator
	tracker    collection.Tracker
	dashboard  dashboard.Reader
	config     Config
}

func NewExecutor(
	provider contract.Provider,
	reg registry.ContractRegistry,
	aggregator collection.Aggregator,
	tracker collection.Tracker,
	dashboardReader dashboard.Reader,
	cfg Config,
) Executor {
	if cfg.DefaultScanSize <= 0 {
		cfg.DefaultScanSize = domain.DEFAULT_SCAN_SIZE
	}
	if cfg.MaxScanSize <= 0 {
		cfg.MaxScanSize = domain.MAX_SCAN_SIZE
	}
	return &executor{
		provider:   provider,
		registry:   reg,
		aggregator: aggregator,
		tracker:    tracker,
		dashboard:  dashboardReader,
		config:     cfg,
	}
}

func (e *executor) ListAssets() *dto.AssetListResponse {
	return &dto.AssetListResponse{Assets: e.registry.Assets()}
}

func (e *executor) BuildCollectionView(ctx context.Context, asset string, query dto.CollectionQuery) (*domain.CollectionView, error) {
	req, err := e.collectionRequest(asset, query)
	if err != nil {
		return nil, err
	}
	return e.aggregator.BuildView(ctx, req), nil
}

func (e *executor) RefreshCollectionView(ctx context.Context, asset string, viewer string, query dto.CollectionQuery) (*dto.TrackedViewResponse, error) {
	if err := dto.ValidateViewer(viewer); err != nil {
		return nil, err
	}
	req, err := e.collectionRequest(asset, query)
	if err != nil {
		return nil, err
	}

	view, current := e.tracker.Trigger(ctx, viewerKey(asset, viewer), req)
	return &dto.TrackedViewResponse{
		Viewer:  viewer,
		Current: current,
		View:    view,
	}, nil
}

func (e *executor) GetTrackedView(asset string, viewer string) (*dto.TrackedViewResponse, error) {
	if _, err := e.lookup(asset); err != nil {
		return nil, err
	}

	view, ok := e.tracker.Latest(viewerKey(asset, viewer))
	if !ok {
		return nil, apierrors.NewNotFoundError("View not found", fmt.Sprintf("no tracked view for viewer %s", viewer))
	}
	return &dto.TrackedViewResponse{
		Viewer:  viewer,
		Current: true,
		View:    view,
	}, nil
}

func (e *executor) ForgetTrackedView(asset string, viewer string) error {
	if _, err := e.lookup(asset); err != nil {
		return err
	}

	if !e.tracker.Forget(viewerKey(asset, viewer)) {
		return apierrors.NewNotFoundError("View not found", fmt.Sprintf("no tracked view for viewer %s", viewer))
	}
	return nil
}

func (e *executor) GetERC20Summary(ctx context.Context, account *common.Address) (*dashboard.ERC20Info, error) {
	entry, err := e.lookup(registry.AssetERC20)
	if err != nil {
		return nil, err
	}

	info, err := e.dashboard.ERC20Summary(ctx, e.provider.Handle(entry.Address), account)
	if err != nil {
		return nil, contractError(ctx, entry, err)
	}
	return info, nil
}

func (e *executor) GetStakingSummary(ctx context.Context, account *common.Address) (*dashboard.StakingInfo, error) {
	entry, err := e.lookup(registry.AssetStaking)
	if err != nil {
		return nil, err
	}

	info, err := e.dashboard.StakingSummary(ctx,
		e.provider.Handle(entry.Address),
		e.optionalHandle(registry.AssetERC20),
		e.optionalHandle(registry.AssetERC721),
		account)
	if err != nil {
		return nil, contractError(ctx, entry, err)
	}
	return info, nil
}

func (e *executor) GetTipJarSummary(ctx context.Context, account *common.Address) (*dashboard.TipJarInfo, error) {
	entry, err := e.lookup(registry.AssetTipJar)
	if err != nil {
		return nil, err
	}

	info, err := e.dashboard.TipJarSummary(ctx, e.provider.Handle(entry.Address), account)
	if err != nil {
		return nil, contractError(ctx, entry, err)
	}
	return info, nil
}

func (e *executor) PrepareIntent(action string, params actions.Params) (*contract.TransactionIntent, error) {
	a, err := actions.ParseAction(action)
	if err != nil {
		return nil, apierrors.NewNotFoundError("Unknown action", action)
	}

	entry, err := e.lookup(a.Asset())
	if err != nil {
		return nil, err
	}

	defaults := actions.Defaults{
		NativeDecimals: e.config.NativeDecimals,
		TipValue:       e.config.TipValue,
	}
	if staking, err := e.registry.Lookup(registry.AssetStaking); err == nil {
		defaults.Operator = &staking.Address
	}

	intent, err := actions.Build(a, e.provider.Handle(entry.Address), params, defaults)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidParams) {
			return nil, apierrors.NewValidationError(err.Error())
		}
		return nil, apierrors.NewBadRequestError("Failed to prepare transaction", err.Error())
	}
	return intent, nil
}

// collectionRequest resolves asset and the requested range into an aggregator request
func (e *executor) collectionRequest(asset string, query dto.CollectionQuery) (collection.Request, error) {
	entry, err := e.lookup(asset)
	if err != nil {
		return collection.Request{}, err
	}
	if !entry.IsCollection() {
		return collection.Request{}, apierrors.NewBadRequestError("Asset is not a token collection", entry.Asset)
	}

	size := entry.ScanSize
	if size <= 0 {
		size = e.config.DefaultScanSize
	}

	var start uint64
	if query.Start != nil {
		start = *query.Start
	}
	end := start + uint64(size)
	if query.End != nil {
		end = *query.End
	}

	r := domain.ScanRange{Start: domain.TokenID(start), End: domain.TokenID(end)}
	if err := r.Validate(e.config.MaxScanSize); err != nil {
		return collection.Request{}, apierrors.NewValidationError(err.Error())
	}

	return collection.Request{
		Handle:   e.provider.Handle(entry.Address),
		Standard: entry.Standard,
		Account:  query.Account,
		Range:    r,
	}, nil
}

func (e *executor) lookup(asset string) (*registry.ContractEntry, error) {
	entry, err := e.registry.Lookup(asset)
	if err != nil {
		return nil, apierrors.NewNotFoundError("Asset not found", err.Error())
	}
	return entry, nil
}

// optionalHandle returns nil when asset is not configured
func (e *executor) optionalHandle(asset string) contract.Handle {
	entry, err := e.registry.Lookup(asset)
	if err != nil {
		return nil
	}
	return e.provider.Handle(entry.Address)
}

func contractError(ctx context.Context, entry *registry.ContractEntry, err error) error {
	logger.WarnCtx(ctx, "Contract page unavailable",
		zap.String("asset", entry.Asset),
		zap.String("contract", entry.Address.Hex()),
		zap.Error(err))
	return apierrors.NewServiceError("Failed to read contract", err.Error())
}

func viewerKey(asset, viewer string) string {
	return strings.ToLower(strings.TrimSpace(asset)) + constants.VIEWER_KEY_SEPARATOR + viewer
}

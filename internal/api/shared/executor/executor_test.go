package executor_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/actions"
	"github.com/feral-file/ff-marketplace/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-marketplace/internal/api/shared/errors"
	"github.com/feral-file/ff-marketplace/internal/api/shared/executor"
	"github.com/feral-file/ff-marketplace/internal/collection"
	"github.com/feral-file/ff-marketplace/internal/contract"
	"github.com/feral-file/ff-marketplace/internal/dashboard"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/mocks"
	"github.com/feral-file/ff-marketplace/internal/registry"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

var (
	erc1155Address = common.HexToAddress("0x1111111111111111111111111111111111111111")
	erc721Address  = common.HexToAddress("0x7777777777777777777777777777777777777777")
	erc20Address   = common.HexToAddress("0x2020202020202020202020202020202020202020")
	stakingAddress = common.HexToAddress("0x5555555555555555555555555555555555555555")
	tipJarAddress  = common.HexToAddress("0x9999999999999999999999999999999999999999")
	account        = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// testExecutorMocks contains all the mocks needed for testing the executor
type testExecutorMocks struct {
	ctrl       *gomock.Controller
	provider   *mocks.MockContractProvider
	aggregator *mocks.MockCollectionAggregator
	tracker    *mocks.MockCollectionTracker
	dashboard  *mocks.MockDashboardReader
	handles    map[common.Address]*mocks.MockContractHandle
	executor   executor.Executor
}

func setupTestExecutor(t *testing.T, specs map[string]registry.ContractSpec) *testExecutorMocks {
	ctrl := gomock.NewController(t)

	if specs == nil {
		specs = map[string]registry.ContractSpec{
			registry.AssetERC1155: {Address: erc1155Address.Hex(), Standard: "erc1155"},
			registry.AssetERC721:  {Address: erc721Address.Hex(), Standard: "erc721", ScanSize: 5},
			registry.AssetERC20:   {Address: erc20Address.Hex(), Standard: "erc20"},
			registry.AssetStaking: {Address: stakingAddress.Hex()},
			registry.AssetTipJar:  {Address: tipJarAddress.Hex()},
		}
	}
	reg, err := registry.NewContractRegistry(specs, 10)
	require.NoError(t, err)

	tm := &testExecutorMocks{
		ctrl:       ctrl,
		provider:   mocks.NewMockContractProvider(ctrl),
		aggregator: mocks.NewMockCollectionAggregator(ctrl),
		tracker:    mocks.NewMockCollectionTracker(ctrl),
		dashboard:  mocks.NewMockDashboardReader(ctrl),
		handles:    map[common.Address]*mocks.MockContractHandle{},
	}

	for _, entry := range reg.Assets() {
		h := mocks.NewMockContractHandle(ctrl)
		h.EXPECT().Address().Return(entry.Address).AnyTimes()
		h.EXPECT().ChainID().Return(uint64(1043)).AnyTimes()
		tm.handles[entry.Address] = h
	}
	tm.provider.EXPECT().Handle(gomock.Any()).DoAndReturn(func(address common.Address) contract.Handle {
		return tm.handles[address]
	}).AnyTimes()

	tm.executor = executor.NewExecutor(tm.provider, reg, tm.aggregator, tm.tracker, tm.dashboard, executor.Config{
		DefaultScanSize: 10,
		MaxScanSize:     20,
		NativeDecimals:  18,
		TipValue:        "0.001",
	})

	return tm
}

func requireAPIError(t *testing.T, err error, code apierrors.ErrorCode) *apierrors.APIError {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := apierrors.AsAPIError(err)
	require.True(t, ok, "expected an APIError, got %v", err)
	assert.Equal(t, code, apiErr.Code)
	return apiErr
}

func u64(v uint64) *uint64 {
	return &v
}

func TestExecutor_ListAssets(t *testing.T) {
	tm := setupTestExecutor(t, nil)

	resp := tm.executor.ListAssets()
	require.Len(t, resp.Assets, 5)
	assert.Equal(t, registry.AssetERC1155, resp.Assets[0].Asset)
}

func TestExecutor_BuildCollectionView_ResolvesRange(t *testing.T) {
	tests := []struct {
		name  string
		asset string
		query dto.CollectionQuery
		want  domain.ScanRange
	}{
		{
			name:  "default scan size",
			asset: registry.AssetERC1155,
			want:  domain.ScanRange{Start: 0, End: 10},
		},
		{
			name:  "per contract scan size",
			asset: registry.AssetERC721,
			query: dto.CollectionQuery{Start: u64(3)},
			want:  domain.ScanRange{Start: 3, End: 8},
		},
		{
			name:  "explicit range",
			asset: "ERC1155",
			query: dto.CollectionQuery{Start: u64(4), End: u64(24)},
			want:  domain.ScanRange{Start: 4, End: 24},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestExecutor(t, nil)

			view := &domain.CollectionView{BuildID: "b"}
			tm.aggregator.EXPECT().
				BuildView(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req collection.Request) *domain.CollectionView {
					assert.Equal(t, tt.want, req.Range)
					assert.Equal(t, tt.query.Account, req.Account)
					return view
				})

			got, err := tm.executor.BuildCollectionView(context.Background(), tt.asset, tt.query)
			require.NoError(t, err)
			assert.Same(t, view, got)
		})
	}
}

func TestExecutor_BuildCollectionView_Errors(t *testing.T) {
	tests := []struct {
		name  string
		asset string
		query dto.CollectionQuery
		code  apierrors.ErrorCode
	}{
		{"unknown asset", "erc404", dto.CollectionQuery{}, apierrors.ErrCodeNotFound},
		{"not a collection", registry.AssetStaking, dto.CollectionQuery{}, apierrors.ErrCodeBadRequest},
		{"empty range", registry.AssetERC1155, dto.CollectionQuery{Start: u64(5), End: u64(5)}, apierrors.ErrCodeValidationFailed},
		{"range too large", registry.AssetERC1155, dto.CollectionQuery{Start: u64(0), End: u64(21)}, apierrors.ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestExecutor(t, nil)

			_, err := tm.executor.BuildCollectionView(context.Background(), tt.asset, tt.query)
			requireAPIError(t, err, tt.code)
		})
	}
}

func TestExecutor_RefreshCollectionView(t *testing.T) {
	tm := setupTestExecutor(t, nil)

	view := &domain.CollectionView{BuildID: "b1"}
	tm.tracker.EXPECT().
		Trigger(gomock.Any(), "erc1155/tab-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req collection.Request) (*domain.CollectionView, bool) {
			assert.Equal(t, erc1155Address, req.Handle.Address())
			assert.Equal(t, domain.StandardERC1155, req.Standard)
			assert.Equal(t, &account, req.Account)
			return view, false
		})

	resp, err := tm.executor.RefreshCollectionView(context.Background(), "ERC1155", "tab-1", dto.CollectionQuery{Account: &account})
	require.NoError(t, err)
	assert.Equal(t, "tab-1", resp.Viewer)
	assert.False(t, resp.Current)
	assert.Same(t, view, resp.View)
}

func TestExecutor_RefreshCollectionView_InvalidViewer(t *testing.T) {
	tm := setupTestExecutor(t, nil)

	for _, viewer := range []string{"", "  ", "a/b"} {
		_, err := tm.executor.RefreshCollectionView(context.Background(), registry.AssetERC1155, viewer, dto.CollectionQuery{})
		requireAPIError(t, err, apierrors.ErrCodeValidationFailed)
	}
}

func TestExecutor_GetTrackedView(t *testing.T) {
	tm := setupTestExecutor(t, nil)

	view := &domain.CollectionView{Status: domain.ViewStatusReady}
	tm.tracker.EXPECT().Latest("erc721/tab-1").Return(view, true)
	tm.tracker.EXPECT().Latest("erc721/tab-2").Return(nil, false)

	resp, err := tm.executor.GetTrackedView(registry.AssetERC721, "tab-1")
	require.NoError(t, err)
	assert.True(t, resp.Current)
	assert.Same(t, view, resp.View)

	_, err = tm.executor.GetTrackedView(registry.AssetERC721, "tab-2")
	requireAPIError(t, err, apierrors.ErrCodeNotFound)

	_, err = tm.executor.GetTrackedView("erc404", "tab-1")
	requireAPIError(t, err, apierrors.ErrCodeNotFound)
}

func TestExecutor_ForgetTrackedView(t *testing.T) {
	tm := setupTestExecutor(t, nil)

	tm.tracker.EXPECT().Forget("erc721/tab-1").Return(true)
	tm.tracker.EXPECT().Forget("erc721/tab-2").Return(false)

	require.NoError(t, tm.executor.ForgetTrackedView(registry.AssetERC721, "tab-1"))

	err := tm.executor.ForgetTrackedView(registry.AssetERC721, "tab-2")
	requireAPIError(t, err, apierrors.ErrCodeNotFound)

	err = tm.executor.ForgetTrackedView("erc404", "tab-1")
	requireAPIError(t, err, apierrors.ErrCodeNotFound)
}

func TestExecutor_DashboardPages(t *testing.T) {
	tm := setupTestExecutor(t, nil)

	erc20Info := &dashboard.ERC20Info{Decimals: 18}
	tm.dashboard.EXPECT().
		ERC20Summary(gomock.Any(), tm.handles[erc20Address], &account).
		Return(erc20Info, nil)
	tm.dashboard.EXPECT().
		StakingSummary(gomock.Any(), tm.handles[stakingAddress], tm.handles[erc20Address], tm.handles[erc721Address], &account).
		Return(&dashboard.StakingInfo{}, nil)
	tm.dashboard.EXPECT().
		TipJarSummary(gomock.Any(), tm.handles[tipJarAddress], gomock.Nil()).
		Return(nil, errors.New("execution reverted"))

	got, err := tm.executor.GetERC20Summary(context.Background(), &account)
	require.NoError(t, err)
	assert.Same(t, erc20Info, got)

	_, err = tm.executor.GetStakingSummary(context.Background(), &account)
	require.NoError(t, err)

	_, err = tm.executor.GetTipJarSummary(context.Background(), nil)
	apiErr := requireAPIError(t, err, apierrors.ErrCodeServiceError)
	assert.Contains(t, apiErr.Details, "execution reverted")
}

func TestExecutor_DashboardPages_NotConfigured(t *testing.T) {
	tm := setupTestExecutor(t, map[string]registry.ContractSpec{
		registry.AssetStaking: {Address: stakingAddress.Hex()},
	})

	tm.dashboard.EXPECT().
		StakingSummary(gomock.Any(), tm.handles[stakingAddress], gomock.Nil(), gomock.Nil(), gomock.Nil()).
		Return(&dashboard.StakingInfo{}, nil)

	_, err := tm.executor.GetStakingSummary(context.Background(), nil)
	require.NoError(t, err)

	_, err = tm.executor.GetERC20Summary(context.Background(), nil)
	requireAPIError(t, err, apierrors.ErrCodeNotFound)

	_, err = tm.executor.GetTipJarSummary(context.Background(), nil)
	requireAPIError(t, err, apierrors.ErrCodeNotFound)
}

func TestExecutor_PrepareIntent(t *testing.T) {
	tm := setupTestExecutor(t, nil)

	intent := &contract.TransactionIntent{Method: "approve"}
	tm.handles[erc721Address].EXPECT().
		Prepare(actions.SigApprove, gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ string, params []interface{}, _ *contract.Overrides) (*contract.TransactionIntent, error) {
			require.Len(t, params, 2)
			assert.Equal(t, stakingAddress, params[0])
			return intent, nil
		})

	got, err := tm.executor.PrepareIntent("approve-nft", actions.Params{TokenID: "3"})
	require.NoError(t, err)
	assert.Same(t, intent, got)
}

func TestExecutor_PrepareIntent_SendTipDefault(t *testing.T) {
	tm := setupTestExecutor(t, nil)

	tm.handles[tipJarAddress].EXPECT().
		Prepare(actions.SigSendTip, gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ string, _ []interface{}, overrides *contract.Overrides) (*contract.TransactionIntent, error) {
			require.NotNil(t, overrides)
			assert.Equal(t, "1000000000000000", overrides.Value.String())
			return &contract.TransactionIntent{Method: "sendTip"}, nil
		})

	_, err := tm.executor.PrepareIntent("send-tip", actions.Params{})
	require.NoError(t, err)
}

func TestExecutor_PrepareIntent_Errors(t *testing.T) {
	tm := setupTestExecutor(t, map[string]registry.ContractSpec{
		registry.AssetERC721: {Address: erc721Address.Hex(), Standard: "erc721"},
	})

	_, err := tm.executor.PrepareIntent("self-destruct", actions.Params{})
	requireAPIError(t, err, apierrors.ErrCodeNotFound)

	// staking is not configured
	_, err = tm.executor.PrepareIntent("stake", actions.Params{TokenID: "1"})
	requireAPIError(t, err, apierrors.ErrCodeNotFound)

	// no operator given and no staking contract to default to
	_, err = tm.executor.PrepareIntent("approve-nft", actions.Params{TokenID: "1"})
	requireAPIError(t, err, apierrors.ErrCodeValidationFailed)

	_, err = tm.executor.PrepareIntent("mint-erc721", actions.Params{To: "0x12"})
	requireAPIError(t, err, apierrors.ErrCodeValidationFailed)

	tm.handles[erc721Address].EXPECT().
		Prepare(actions.SigMintERC721, gomock.Any(), gomock.Nil()).
		Return(nil, errors.New("abi: cannot use string as type ptr"))

	_, err = tm.executor.PrepareIntent("mint-erc721", actions.Params{To: account.Hex()})
	requireAPIError(t, err, apierrors.ErrCodeBadRequest)
}

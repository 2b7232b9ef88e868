package dashboard_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/collection"
	"github.com/feral-file/ff-marketplace/internal/dashboard"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/mocks"
	"github.com/feral-file/ff-marketplace/internal/uri"
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
	tokenAddress   = common.HexToAddress("0x1111111111111111111111111111111111111111")
	stakingAddress = common.HexToAddress("0x2222222222222222222222222222222222222222")
	nftAddress     = common.HexToAddress("0x3333333333333333333333333333333333333333")
	testAccount    = common.HexToAddress("0x4444444444444444444444444444444444444444")
	errRevert      = errors.New("contract read failed: execution reverted")
)

// answers maps a method signature to its canned return value or error
type answers map[string]interface{}

// testDashboardMocks contains all the mocks needed for testing the dashboard
type testDashboardMocks struct {
	ctrl    *gomock.Controller
	fetcher *mocks.MockMetadataFetcher
	reader  dashboard.Reader
}

func setupTestDashboard(t *testing.T) *testDashboardMocks {
	ctrl := gomock.NewController(t)

	normalizer, err := uri.NewNormalizer(uri.Config{})
	require.NoError(t, err)

	tm := &testDashboardMocks{
		ctrl:    ctrl,
		fetcher: mocks.NewMockMetadataFetcher(ctrl),
	}
	header := collection.NewHeaderReader(tm.fetcher, normalizer, "", "")
	tm.reader = dashboard.NewReader(header, dashboard.Config{
		NativeSymbol:   "BDAG",
		NativeDecimals: 18,
		MaxOwnedScan:   3,
	})

	return tm
}

// stub returns a handle answering reads from a; unknown signatures revert.
// tokenOfOwnerByIndex answers from a slice indexed by the second parameter.
func (tm *testDashboardMocks) stub(address common.Address, a answers) *mocks.MockContractHandle {
	h := mocks.NewMockContractHandle(tm.ctrl)
	h.EXPECT().Address().Return(address).AnyTimes()
	h.EXPECT().ChainID().Return(uint64(1043)).AnyTimes()
	h.EXPECT().
		Read(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, sig string, params ...interface{}) ([]interface{}, error) {
			v, ok := a[sig]
			if !ok {
				return nil, errRevert
			}
			if err, isErr := v.(error); isErr {
				return nil, err
			}
			if ids, isList := v.([]*big.Int); isList && sig == dashboard.SigTokenOfOwnerByIndex {
				i := params[1].(*big.Int).Int64()
				if i >= int64(len(ids)) {
					return nil, errRevert
				}
				return []interface{}{ids[i]}, nil
			}
			if pair, isPair := v.([2]*big.Int); isPair {
				return []interface{}{pair[0], pair[1]}, nil
			}
			return []interface{}{v}, nil
		}).
		AnyTimes()
	return h
}

func wei(s string) *big.Int {
	v, _ := new(big.Int).SetString(s, 10)
	return v
}

func TestReader_ERC20Summary(t *testing.T) {
	tm := setupTestDashboard(t)

	token := tm.stub(tokenAddress, answers{
		collection.SigName:             "Reward Token",
		collection.SigSymbol:           "RWD",
		dashboard.SigDecimals:          uint8(6),
		collection.SigERC20TotalSupply: big.NewInt(2500000),
		collection.SigERC20BalanceOf:   big.NewInt(1500000),
	})

	info, err := tm.reader.ERC20Summary(context.Background(), token, &testAccount)
	require.NoError(t, err)

	assert.Equal(t, "Reward Token", info.Header.Title)
	assert.Equal(t, int32(6), info.Decimals)
	require.NotNil(t, info.TotalSupply)
	assert.Equal(t, "2500000", info.TotalSupply.Raw)
	assert.Equal(t, "2.5 RWD", info.TotalSupply.Display)
	require.NotNil(t, info.Balance)
	assert.Equal(t, "1.5 RWD", info.Balance.Display)
	require.NotNil(t, info.Account)
	assert.Equal(t, testAccount.Hex(), *info.Account)
}

func TestReader_ERC20Summary_DegradesPerField(t *testing.T) {
	tm := setupTestDashboard(t)

	token := tm.stub(tokenAddress, answers{
		collection.SigName:             "Plain Token",
		collection.SigERC20TotalSupply: wei("1000000000000000000"),
	})

	info, err := tm.reader.ERC20Summary(context.Background(), token, &testAccount)
	require.NoError(t, err)

	assert.Equal(t, int32(18), info.Decimals)
	require.NotNil(t, info.TotalSupply)
	assert.Equal(t, "1", info.TotalSupply.Display)
	assert.Nil(t, info.Balance)
}

func TestReader_ERC20Summary_NoAccount(t *testing.T) {
	tm := setupTestDashboard(t)

	token := tm.stub(tokenAddress, answers{
		collection.SigName:           "Plain Token",
		collection.SigERC20BalanceOf: big.NewInt(1),
	})

	info, err := tm.reader.ERC20Summary(context.Background(), token, nil)
	require.NoError(t, err)
	assert.Nil(t, info.Account)
	assert.Nil(t, info.Balance)
}

func TestReader_HeaderFailure(t *testing.T) {
	tm := setupTestDashboard(t)

	broken := tm.stub(tokenAddress, answers{})

	_, err := tm.reader.ERC20Summary(context.Background(), broken, &testAccount)
	assert.Error(t, err)

	_, err = tm.reader.TipJarSummary(context.Background(), broken, &testAccount)
	assert.Error(t, err)

	_, err = tm.reader.StakingSummary(context.Background(), broken, nil, nil, &testAccount)
	assert.Error(t, err)
}

func TestReader_StakingSummary(t *testing.T) {
	tm := setupTestDashboard(t)

	staking := tm.stub(stakingAddress, answers{
		collection.SigName:           "Staking",
		dashboard.SigGetStakedTokens: []*big.Int{big.NewInt(4), big.NewInt(9)},
		dashboard.SigGetStakeInfo:    [2]*big.Int{big.NewInt(2), wei("2500000000000000000")},
	})
	rewardToken := tm.stub(tokenAddress, answers{
		collection.SigSymbol:  "RWD",
		dashboard.SigDecimals: uint8(18),
	})
	nft := tm.stub(nftAddress, answers{
		dashboard.SigNFTBalanceOf:        big.NewInt(5),
		dashboard.SigTokenOfOwnerByIndex: []*big.Int{big.NewInt(1), big.NewInt(7), big.NewInt(8), big.NewInt(11)},
	})

	info, err := tm.reader.StakingSummary(context.Background(), staking, rewardToken, nft, &testAccount)
	require.NoError(t, err)

	assert.Equal(t, []string{"4", "9"}, info.StakedTokenIDs)
	assert.Equal(t, "RWD", info.RewardSymbol)
	require.NotNil(t, info.Rewards)
	assert.Equal(t, "2.5 RWD", info.Rewards.Display)
	require.NotNil(t, info.NFTBalance)
	assert.Equal(t, "5", *info.NFTBalance)
	// capped at MaxOwnedScan
	assert.Equal(t, []string{"1", "7", "8"}, info.OwnedTokenIDs)
}

func TestReader_StakingSummary_Degraded(t *testing.T) {
	tm := setupTestDashboard(t)

	staking := tm.stub(stakingAddress, answers{
		collection.SigName: "Staking",
	})
	nft := tm.stub(nftAddress, answers{
		dashboard.SigNFTBalanceOf:        big.NewInt(3),
		dashboard.SigTokenOfOwnerByIndex: []*big.Int{big.NewInt(2)},
	})

	info, err := tm.reader.StakingSummary(context.Background(), staking, nil, nft, &testAccount)
	require.NoError(t, err)

	assert.Empty(t, info.StakedTokenIDs)
	assert.Nil(t, info.Rewards)
	assert.Empty(t, info.RewardSymbol)
	// enumeration stops at the first failed index
	assert.Equal(t, []string{"2"}, info.OwnedTokenIDs)

	info, err = tm.reader.StakingSummary(context.Background(), staking, nil, nft, nil)
	require.NoError(t, err)
	assert.Nil(t, info.NFTBalance)
	assert.Empty(t, info.OwnedTokenIDs)
}

func TestReader_TipJarSummary(t *testing.T) {
	tm := setupTestDashboard(t)

	jar := tm.stub(stakingAddress, answers{
		collection.SigName:      "Tip Jar",
		dashboard.SigGetBalance: wei("1000000000000000"),
		dashboard.SigOwner:      common.HexToAddress("0x4444444444444444444444444444444444444444"),
	})

	info, err := tm.reader.TipJarSummary(context.Background(), jar, &testAccount)
	require.NoError(t, err)

	require.NotNil(t, info.Balance)
	assert.Equal(t, "0.001 BDAG", info.Balance.Display)
	require.NotNil(t, info.Owner)
	assert.True(t, info.IsOwner)

	other := common.HexToAddress("0x5555555555555555555555555555555555555555")
	info, err = tm.reader.TipJarSummary(context.Background(), jar, &other)
	require.NoError(t, err)
	assert.False(t, info.IsOwner)

	info, err = tm.reader.TipJarSummary(context.Background(), jar, nil)
	require.NoError(t, err)
	assert.False(t, info.IsOwner)
}

func TestReader_TipJarSummary_Degraded(t *testing.T) {
	tm := setupTestDashboard(t)

	jar := tm.stub(stakingAddress, answers{
		collection.SigName: "Tip Jar",
	})

	info, err := tm.reader.TipJarSummary(context.Background(), jar, &testAccount)
	require.NoError(t, err)
	assert.Nil(t, info.Balance)
	assert.Nil(t, info.Owner)
	assert.False(t, info.IsOwner)
}

package dashboard

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/collection"
	"github.com/feral-file/ff-marketplace/internal/contract"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/units"
)

const (
	SigDecimals            = "function decimals() view returns (uint8)"
	SigGetStakedTokens     = "function getStakedTokens(address) view returns (uint256[])"
	SigGetStakeInfo        = "function getStakeInfo(address) view returns (uint256, uint256)"
	SigNFTBalanceOf        = "function balanceOf(address) view returns (uint256)"
	SigTokenOfOwnerByIndex = "function tokenOfOwnerByIndex(address, uint256) view returns (uint256)"
	SigGetBalance          = "function getBalance() view returns (uint256)"
	SigOwner               = "function owner() view returns (address)"
)

const (
	DEFAULT_TOKEN_DECIMALS  = 18
	DEFAULT_MAX_OWNED_SCAN  = 50
	DEFAULT_NATIVE_DECIMALS = 18
)

// Config holds the display settings of the dashboard pages
type Config struct {
	NativeSymbol   string
	NativeDecimals int32
	// MaxOwnedScan caps tokenOfOwnerByIndex enumeration on the staking page
	MaxOwnedScan int
}

// Amount is an integer base unit amount with its human rendering
type Amount struct {
	Raw     string `json:"raw"`
	Display string `json:"display"`
}

func newAmount(v *big.Int, decimals int32, symbol string) *Amount {
	return &Amount{
		Raw:     v.String(),
		Display: units.FormatAmount(v, decimals, symbol),
	}
}

// ERC20Info is the fungible token page
type ERC20Info struct {
	Header      *domain.ContractHeader `json:"header"`
	Account     *string                `json:"account,omitempty"`
	Decimals    int32                  `json:"decimals"`
	TotalSupply *Amount                `json:"total_supply,omitempty"`
	Balance     *Amount                `json:"balance,omitempty"`
}

// StakingInfo is the staking page
type StakingInfo struct {
	Header         *domain.ContractHeader `json:"header"`
	Account        *string                `json:"account,omitempty"`
	StakedTokenIDs []string               `json:"staked_token_ids"`
	Rewards        *Amount                `json:"rewards,omitempty"`
	RewardSymbol   string                 `json:"reward_symbol,omitempty"`
	NFTBalance     *string                `json:"nft_balance,omitempty"`
	OwnedTokenIDs  []string               `json:"owned_token_ids"`
}

// TipJarInfo is the tip jar page
type TipJarInfo struct {
	Header  *domain.ContractHeader `json:"header"`
	Account *string                `json:"account,omitempty"`
	Balance *Amount                `json:"balance,omitempty"`
	Owner   *string                `json:"owner,omitempty"`
	IsOwner bool                   `json:"is_owner"`
}

// Reader builds the non-collection pages. Every field degrades to absent on
// a failed read; an error is returned only when the page header cannot be read.
//
//go:generate mockgen -source=dashboard.go -destination=../mocks/dashboard.go -package=mocks -mock_names=Reader=MockDashboardReader
type Reader interface {
	// ERC20Summary reads token name, symbol, decimals, supply and the account balance
	ERC20Summary(ctx context.Context, token contract.Handle, account *common.Address) (*ERC20Info, error)

	// StakingSummary reads the account's staked tokens, pending rewards and NFT holdings
	StakingSummary(ctx context.Context, staking, rewardToken, nft contract.Handle, account *common.Address) (*StakingInfo, error)

	// TipJarSummary reads the jar balance and owner
	TipJarSummary(ctx context.Context, jar contract.Handle, account *common.Address) (*TipJarInfo, error)
}

type reader struct {
	header *collection.HeaderReader
	cfg    Config
}

// NewReader creates a dashboard reader
func NewReader(header *collection.HeaderReader, cfg Config) Reader {
	if cfg.NativeDecimals <= 0 {
		cfg.NativeDecimals = DEFAULT_NATIVE_DECIMALS
	}
	if cfg.MaxOwnedScan <= 0 {
		cfg.MaxOwnedScan = DEFAULT_MAX_OWNED_SCAN
	}
	return &reader{header: header, cfg: cfg}
}

func (r *reader) ERC20Summary(ctx context.Context, token contract.Handle, account *common.Address) (*ERC20Info, error) {
	header, err := r.header.Read(ctx, token)
	if err != nil {
		return nil, err
	}

	info := &ERC20Info{
		Header:   header,
		Account:  domain.AccountString(account),
		Decimals: r.decimals(ctx, token),
	}

	if supply, err := contract.ReadBigInt(ctx, token, collection.SigERC20TotalSupply); err != nil {
		logFieldFailure(ctx, token, "totalSupply", err)
	} else {
		info.TotalSupply = newAmount(supply, info.Decimals, header.Symbol)
	}

	if account != nil {
		if balance, err := contract.ReadBigInt(ctx, token, collection.SigERC20BalanceOf, *account); err != nil {
			logFieldFailure(ctx, token, "balanceOf", err)
		} else {
			info.Balance = newAmount(balance, info.Decimals, header.Symbol)
		}
	}

	return info, nil
}

func (r *reader) StakingSummary(ctx context.Context, staking, rewardToken, nft contract.Handle, account *common.Address) (*StakingInfo, error) {
	header, err := r.header.Read(ctx, staking)
	if err != nil {
		return nil, err
	}

	info := &StakingInfo{
		Header:         header,
		Account:        domain.AccountString(account),
		StakedTokenIDs: []string{},
		OwnedTokenIDs:  []string{},
	}

	if rewardToken != nil {
		if symbol, err := contract.ReadString(ctx, rewardToken, collection.SigSymbol); err != nil {
			logFieldFailure(ctx, rewardToken, "symbol", err)
		} else {
			info.RewardSymbol = symbol
		}
	}

	if account == nil {
		return info, nil
	}

	if staked, err := contract.ReadBigInts(ctx, staking, SigGetStakedTokens, *account); err != nil {
		logFieldFailure(ctx, staking, "getStakedTokens", err)
	} else {
		info.StakedTokenIDs = bigIntStrings(staked)
	}

	if _, rewards, err := contract.ReadBigIntPair(ctx, staking, SigGetStakeInfo, *account); err != nil {
		logFieldFailure(ctx, staking, "getStakeInfo", err)
	} else {
		decimals := int32(DEFAULT_TOKEN_DECIMALS)
		if rewardToken != nil {
			decimals = r.decimals(ctx, rewardToken)
		}
		info.Rewards = newAmount(rewards, decimals, info.RewardSymbol)
	}

	if nft != nil {
		balance, err := contract.ReadBigInt(ctx, nft, SigNFTBalanceOf, *account)
		if err != nil {
			logFieldFailure(ctx, nft, "balanceOf", err)
		} else {
			s := balance.String()
			info.NFTBalance = &s
			info.OwnedTokenIDs = r.ownedTokenIDs(ctx, nft, *account, balance)
		}
	}

	return info, nil
}

func (r *reader) TipJarSummary(ctx context.Context, jar contract.Handle, account *common.Address) (*TipJarInfo, error) {
	header, err := r.header.Read(ctx, jar)
	if err != nil {
		return nil, err
	}

	info := &TipJarInfo{
		Header:  header,
		Account: domain.AccountString(account),
	}

	if balance, err := contract.ReadBigInt(ctx, jar, SigGetBalance); err != nil {
		logFieldFailure(ctx, jar, "getBalance", err)
	} else {
		info.Balance = newAmount(balance, r.cfg.NativeDecimals, r.cfg.NativeSymbol)
	}

	if owner, err := contract.ReadAddress(ctx, jar, SigOwner); err != nil {
		logFieldFailure(ctx, jar, "owner", err)
	} else {
		s := owner.Hex()
		info.Owner = &s
		info.IsOwner = account != nil && strings.EqualFold(owner.Hex(), account.Hex())
	}

	return info, nil
}

// decimals reads decimals(), falling back to 18
func (r *reader) decimals(ctx context.Context, token contract.Handle) int32 {
	d, err := contract.ReadBigInt(ctx, token, SigDecimals)
	if err != nil || !d.IsInt64() || d.Int64() > 255 {
		logFieldFailure(ctx, token, "decimals", err)
		return DEFAULT_TOKEN_DECIMALS
	}
	return int32(d.Int64())
}

// ownedTokenIDs enumerates tokenOfOwnerByIndex up to the configured cap,
// stopping at the first failed index
func (r *reader) ownedTokenIDs(ctx context.Context, nft contract.Handle, account common.Address, balance *big.Int) []string {
	n := r.cfg.MaxOwnedScan
	if balance.IsInt64() && balance.Int64() < int64(n) {
		n = int(balance.Int64())
	}

	ids := make([]*big.Int, 0, n)
	for i := 0; i < n; i++ {
		id, err := contract.ReadBigInt(ctx, nft, SigTokenOfOwnerByIndex, account, big.NewInt(int64(i)))
		if err != nil {
			logFieldFailure(ctx, nft, fmt.Sprintf("tokenOfOwnerByIndex(%d)", i), err)
			break
		}
		ids = append(ids, id)
	}
	return bigIntStrings(ids)
}

func bigIntStrings(values []*big.Int) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}

func logFieldFailure(ctx context.Context, h contract.Handle, field string, err error) {
	logger.DebugCtx(ctx, "Dashboard field unavailable",
		zap.String("contract", h.Address().Hex()),
		zap.String("field", field),
		zap.Error(err))
}

package actions

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-marketplace/internal/contract"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/registry"
	"github.com/feral-file/ff-marketplace/internal/units"
)

const (
	SigMintERC721   = "function mint(address to, uint256 amount)"
	SigMintERC1155  = "function mint(address to, uint256 id, uint256 amount, bytes data)"
	SigApprove      = "function approve(address to, uint256 tokenId)"
	SigStake        = "function stake(uint256 tokenId)"
	SigWithdraw     = "function withdraw(uint256 tokenId)"
	SigClaimRewards = "function claimRewards()"
	SigSendTip      = "function sendTip() payable"
	SigWithdrawTips = "function withdrawTips()"
	SigBurnERC20    = "function burn(uint256 amount)"
)

// Action names a transaction the pages can prepare
type Action string

const (
	ActionMintERC721   Action = "mint-erc721"
	ActionMintERC1155  Action = "mint-erc1155"
	ActionBurnERC20    Action = "burn-erc20"
	ActionApproveNFT   Action = "approve-nft"
	ActionStake        Action = "stake"
	ActionWithdraw     Action = "withdraw"
	ActionClaimRewards Action = "claim-rewards"
	ActionSendTip      Action = "send-tip"
	ActionWithdrawTips Action = "withdraw-tips"
)

// actionAssets maps each action to the registry asset it is sent to
var actionAssets = map[Action]string{
	ActionMintERC721:   registry.AssetERC721,
	ActionMintERC1155:  registry.AssetERC1155,
	ActionBurnERC20:    registry.AssetERC20,
	ActionApproveNFT:   registry.AssetERC721,
	ActionStake:        registry.AssetStaking,
	ActionWithdraw:     registry.AssetStaking,
	ActionClaimRewards: registry.AssetStaking,
	ActionSendTip:      registry.AssetTipJar,
	ActionWithdrawTips: registry.AssetTipJar,
}

// ParseAction validates an action name
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := actionAssets[a]; !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownAction, s)
	}
	return a, nil
}

// Asset returns the registry asset the action targets
func (a Action) Asset() string {
	return actionAssets[a]
}

// Params carries the user-supplied action parameters. Integer fields accept
// decimal strings; Value is a human amount in native units.
type Params struct {
	To       string `json:"to,omitempty"`
	TokenID  string `json:"token_id,omitempty"`
	Amount   string `json:"amount,omitempty"`
	Operator string `json:"operator,omitempty"`
	Value    string `json:"value,omitempty"`
}

// Defaults fills parameters the caller may omit
type Defaults struct {
	// Operator approved by approve-nft, usually the staking contract
	Operator       *common.Address
	NativeDecimals int32
	// TipValue is used by send-tip when Value is empty
	TipValue string
}

// Build prepares the intent for action on h
func Build(action Action, h contract.Handle, p Params, d Defaults) (*contract.TransactionIntent, error) {
	switch action {
	case ActionMintERC721:
		to, err := requireAddress("to", p.To)
		if err != nil {
			return nil, err
		}
		amount, err := requireInteger("amount", p.Amount, "1")
		if err != nil {
			return nil, err
		}
		return MintERC721(h, to, amount)

	case ActionMintERC1155:
		to, err := requireAddress("to", p.To)
		if err != nil {
			return nil, err
		}
		id, err := requireInteger("token_id", p.TokenID, "0")
		if err != nil {
			return nil, err
		}
		amount, err := requireInteger("amount", p.Amount, "1")
		if err != nil {
			return nil, err
		}
		return MintERC1155(h, to, id, amount)

	case ActionBurnERC20:
		amount, err := requireInteger("amount", p.Amount, "")
		if err != nil {
			return nil, err
		}
		return BurnERC20(h, amount)

	case ActionApproveNFT:
		var operator common.Address
		if p.Operator == "" && d.Operator != nil {
			operator = *d.Operator
		} else {
			var err error
			if operator, err = requireAddress("operator", p.Operator); err != nil {
				return nil, err
			}
		}
		id, err := requireInteger("token_id", p.TokenID, "")
		if err != nil {
			return nil, err
		}
		return ApproveNFT(h, operator, id)

	case ActionStake, ActionWithdraw:
		id, err := requireInteger("token_id", p.TokenID, "")
		if err != nil {
			return nil, err
		}
		if action == ActionStake {
			return Stake(h, id)
		}
		return Withdraw(h, id)

	case ActionClaimRewards:
		return ClaimRewards(h)

	case ActionSendTip:
		value := p.Value
		if value == "" {
			value = d.TipValue
		}
		if value == "" {
			return nil, fmt.Errorf("%w: value is required", domain.ErrInvalidParams)
		}
		wei, err := units.ParseUnits(value, d.NativeDecimals)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidParams, err)
		}
		return SendTip(h, wei)

	case ActionWithdrawTips:
		return WithdrawTips(h)
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAction, action)
}

// MintERC721 prepares mint(to, amount)
func MintERC721(h contract.Handle, to common.Address, amount *big.Int) (*contract.TransactionIntent, error) {
	return h.Prepare(SigMintERC721, []interface{}{to, amount}, nil)
}

// MintERC1155 prepares mint(to, id, amount, "0x")
func MintERC1155(h contract.Handle, to common.Address, id, amount *big.Int) (*contract.TransactionIntent, error) {
	return h.Prepare(SigMintERC1155, []interface{}{to, id, amount, []byte{}}, nil)
}

// BurnERC20 prepares burn(amount)
func BurnERC20(h contract.Handle, amount *big.Int) (*contract.TransactionIntent, error) {
	return h.Prepare(SigBurnERC20, []interface{}{amount}, nil)
}

// ApproveNFT prepares approve(operator, id)
func ApproveNFT(h contract.Handle, operator common.Address, id *big.Int) (*contract.TransactionIntent, error) {
	return h.Prepare(SigApprove, []interface{}{operator, id}, nil)
}

func Stake(h contract.Handle, id *big.Int) (*contract.TransactionIntent, error) {
	return h.Prepare(SigStake, []interface{}{id}, nil)
}

func Withdraw(h contract.Handle, id *big.Int) (*contract.TransactionIntent, error) {
	return h.Prepare(SigWithdraw, []interface{}{id}, nil)
}

func ClaimRewards(h contract.Handle) (*contract.TransactionIntent, error) {
	return h.Prepare(SigClaimRewards, nil, nil)
}

// SendTip prepares a payable sendTip() carrying value wei
func SendTip(h contract.Handle, value *big.Int) (*contract.TransactionIntent, error) {
	if value == nil || value.Sign() <= 0 {
		return nil, fmt.Errorf("%w: tip value must be positive", domain.ErrInvalidParams)
	}
	return h.Prepare(SigSendTip, nil, &contract.Overrides{Value: value})
}

func WithdrawTips(h contract.Handle) (*contract.TransactionIntent, error) {
	return h.Prepare(SigWithdrawTips, nil, nil)
}

func requireAddress(field, value string) (common.Address, error) {
	if strings.TrimSpace(value) == "" {
		return common.Address{}, fmt.Errorf("%w: %s is required", domain.ErrInvalidParams, field)
	}
	addr, err := domain.ParseAddress(value)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidParams, field, err)
	}
	return addr, nil
}

// requireInteger parses a non-negative integer, using fallback when value is empty
func requireInteger(field, value, fallback string) (*big.Int, error) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	if value == "" {
		return nil, fmt.Errorf("%w: %s is required", domain.ErrInvalidParams, field)
	}
	n, ok := units.ParseBaseUnits(value)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidParams, field)
	}
	return n, nil
}

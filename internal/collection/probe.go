package collection

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/contract"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
)

// Method signatures read during discovery
const (
	SigERC1155TotalSupply = "function totalSupply(uint256 id) view returns (uint256)"
	SigERC1155BalanceOf   = "function balanceOf(address account, uint256 id) view returns (uint256)"
	SigERC1155URI         = "function uri(uint256 id) view returns (string)"

	SigERC721OwnerOf  = "function ownerOf(uint256 tokenId) view returns (address)"
	SigERC721TokenURI = "function tokenURI(uint256 tokenId) view returns (string)"

	SigERC20TotalSupply = "function totalSupply() view returns (uint256)"
	SigERC20BalanceOf   = "function balanceOf(address account) view returns (uint256)"

	SigName        = "function name() view returns (string)"
	SigSymbol      = "function symbol() view returns (string)"
	SigContractURI = "function contractURI() view returns (string)"
)

// Prober reads the on-chain facts of one token id
type Prober interface {
	// Probe returns the facts of id and whether the token is relevant to the view.
	// Read failures are absorbed: a failed supply read makes the token depend on
	// ownership, a failed balance read counts as zero and a failed uri read leaves
	// the uri absent.
	Probe(ctx context.Context, h contract.Handle, id domain.TokenID, account *common.Address) (*domain.TokenFacts, bool)
}

// NewProber returns the prober for a token standard
func NewProber(standard domain.Standard) (Prober, error) {
	switch standard {
	case domain.StandardERC1155:
		return &erc1155Prober{}, nil
	case domain.StandardERC721:
		return &erc721Prober{}, nil
	case domain.StandardERC20:
		return &erc20Prober{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedStandard, standard)
	}
}

type erc1155Prober struct{}

func (p *erc1155Prober) Probe(ctx context.Context, h contract.Handle, id domain.TokenID, account *common.Address) (*domain.TokenFacts, bool) {
	facts := &domain.TokenFacts{TokenID: id}

	supply, err := contract.ReadBigInt(ctx, h, SigERC1155TotalSupply, id.BigInt())
	if err != nil {
		logger.DebugCtx(ctx, "Supply read failed", probeFields(h, id, err)...)
	} else {
		facts.TotalSupply = supply
		facts.SupplyKnown = true
	}

	facts.OwnerBalance = readBalance(ctx, h, id, account, SigERC1155BalanceOf, id.BigInt())

	if !exists(facts) && !facts.Owned() {
		return facts, false
	}

	facts.URI = readURI(ctx, h, id, SigERC1155URI)
	return facts, true
}

type erc721Prober struct{}

func (p *erc721Prober) Probe(ctx context.Context, h contract.Handle, id domain.TokenID, account *common.Address) (*domain.TokenFacts, bool) {
	facts := &domain.TokenFacts{TokenID: id, OwnerBalance: big.NewInt(0)}

	owner, err := contract.ReadAddress(ctx, h, SigERC721OwnerOf, id.BigInt())
	if err != nil {
		// ownerOf reverts for ids that were never minted or were burned
		logger.DebugCtx(ctx, "Owner read failed", probeFields(h, id, err)...)
		return facts, false
	}
	if owner == (common.Address{}) {
		return facts, false
	}

	facts.TotalSupply = big.NewInt(1)
	facts.SupplyKnown = true
	if account != nil && owner == *account {
		facts.OwnerBalance = big.NewInt(1)
	}

	facts.URI = readURI(ctx, h, id, SigERC721TokenURI)
	return facts, true
}

// erc20Prober treats a fungible contract as the single implicit token 0
type erc20Prober struct{}

func (p *erc20Prober) Probe(ctx context.Context, h contract.Handle, id domain.TokenID, account *common.Address) (*domain.TokenFacts, bool) {
	facts := &domain.TokenFacts{TokenID: id, OwnerBalance: big.NewInt(0)}
	if id != 0 {
		return facts, false
	}

	supply, err := contract.ReadBigInt(ctx, h, SigERC20TotalSupply)
	if err != nil {
		logger.DebugCtx(ctx, "Supply read failed", probeFields(h, id, err)...)
	} else {
		facts.TotalSupply = supply
		facts.SupplyKnown = true
	}

	facts.OwnerBalance = readBalance(ctx, h, id, account, SigERC20BalanceOf)

	return facts, exists(facts) || facts.Owned()
}

// exists reports whether the supply read succeeded with a positive supply
func exists(facts *domain.TokenFacts) bool {
	return facts.SupplyKnown && facts.TotalSupply != nil && facts.TotalSupply.Sign() > 0
}

// readBalance reads the account balance, defaulting to zero without an account or on failure
func readBalance(ctx context.Context, h contract.Handle, id domain.TokenID, account *common.Address, signature string, params ...interface{}) *big.Int {
	if account == nil {
		return big.NewInt(0)
	}

	balance, err := contract.ReadBigInt(ctx, h, signature, append([]interface{}{*account}, params...)...)
	if err != nil {
		logger.DebugCtx(ctx, "Balance read failed", probeFields(h, id, err)...)
		return big.NewInt(0)
	}
	return balance
}

func readURI(ctx context.Context, h contract.Handle, id domain.TokenID, signature string) *string {
	u, err := contract.ReadString(ctx, h, signature, id.BigInt())
	if err != nil {
		logger.DebugCtx(ctx, "URI read failed", probeFields(h, id, err)...)
		return nil
	}
	if u == "" {
		return nil
	}
	return &u
}

func probeFields(h contract.Handle, id domain.TokenID, err error) []zap.Field {
	return []zap.Field{
		zap.String("contract", h.Address().Hex()),
		zap.Uint64("token_id", uint64(id)),
		zap.Error(err),
	}
}

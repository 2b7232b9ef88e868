package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

// NewEIP155Chain returns the CAIP-2 identifier for an EVM chain id (e.g., "eip155:1043")
func NewEIP155Chain(chainID uint64) Chain {
	return Chain(fmt.Sprintf("eip155:%d", chainID))
}

// Standard represents the token standard a contract implements
type Standard string

const (
	StandardERC20   Standard = "erc20"
	StandardERC721  Standard = "erc721"
	StandardERC1155 Standard = "erc1155"
)

// IsValidStandard checks if a standard is one the service can probe
func IsValidStandard(s Standard) bool {
	return s == StandardERC20 || s == StandardERC721 || s == StandardERC1155
}

// TokenID identifies one unit within a multi-token contract.
// Fungible contracts use the implicit id 0.
type TokenID uint64

// BigInt returns the token id as a uint256 call argument
func (id TokenID) BigInt() *big.Int {
	return new(big.Int).SetUint64(uint64(id))
}

// ScanRange is the half-open interval [Start, End) of token ids probed during discovery
type ScanRange struct {
	Start TokenID `json:"start"`
	End   TokenID `json:"end"`
}

// NewScanRange returns the range [0, size)
func NewScanRange(size uint64) ScanRange {
	return ScanRange{Start: 0, End: TokenID(size)}
}

// Len returns the number of ids in the range
func (r ScanRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return int(r.End - r.Start)
}

// IDs returns the token ids in ascending order
func (r ScanRange) IDs() []TokenID {
	ids := make([]TokenID, 0, r.Len())
	for id := r.Start; id < r.End; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Validate checks the range is non-empty and within the probe budget
func (r ScanRange) Validate(maxSize int) error {
	if r.End <= r.Start {
		return fmt.Errorf("%w: [%d, %d) is empty", ErrInvalidScanRange, r.Start, r.End)
	}
	if maxSize > 0 && r.Len() > maxSize {
		return fmt.Errorf("%w: %d ids exceeds the limit of %d", ErrInvalidScanRange, r.Len(), maxSize)
	}
	return nil
}

// String returns the range in interval notation
func (r ScanRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// TokenFacts is an on-chain snapshot for a single token, taken at fetch time
type TokenFacts struct {
	TokenID      TokenID
	TotalSupply  *big.Int
	OwnerBalance *big.Int
	URI          *string
	// SupplyKnown is false when the supply read failed and the token is
	// only relevant through ownership
	SupplyKnown bool
}

// Owned reports whether the account holds a positive balance
func (f *TokenFacts) Owned() bool {
	return f.OwnerBalance != nil && f.OwnerBalance.Sign() > 0
}

// Attribute is an OpenSea style metadata trait
type Attribute struct {
	TraitType string      `json:"trait_type,omitempty"`
	Value     interface{} `json:"value"`
}

// TokenMetadata is the off-chain JSON record resolved from a token or contract URI
type TokenMetadata struct {
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Image        string                 `json:"image"`
	ExternalURL  string                 `json:"external_url,omitempty"`
	AnimationURL string                 `json:"animation_url,omitempty"`
	Attributes   []Attribute            `json:"attributes,omitempty"`
	Extra        map[string]interface{} `json:"extra,omitempty"`
	// Digest is the hex sha256 of the JCS canonical form of the raw JSON
	Digest string `json:"digest"`
}

// DisplayItem is the merge of on-chain facts and off-chain metadata consumed by the pages
type DisplayItem struct {
	TokenID      TokenID     `json:"token_id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Image        string      `json:"image"`
	AnimationURL string      `json:"animation_url,omitempty"`
	ExternalURL  string      `json:"external_url,omitempty"`
	Attributes   []Attribute `json:"attributes,omitempty"`
	TotalSupply  string      `json:"total_supply"`
	OwnerBalance string      `json:"owner_balance"`
	Price        string      `json:"price,omitempty"`
	Owned        bool        `json:"owned"`
	HasMetadata  bool        `json:"has_metadata"`
	MetadataURI  string      `json:"metadata_uri,omitempty"`
	Digest       string      `json:"metadata_digest,omitempty"`
}

// ContractHeader holds the contract-level fields needed to render a page header
type ContractHeader struct {
	Address     string `json:"address"`
	Name        string `json:"name,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
	ContractURI string `json:"contract_uri,omitempty"`
	// TotalSupply is the contract-wide totalSupply(), empty when the contract
	// does not expose one
	TotalSupply string `json:"total_supply,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	HasMetadata bool   `json:"has_metadata"`
}

// ViewStatus is the aggregate health of a collection view
type ViewStatus string

const (
	ViewStatusLoading      ViewStatus = "loading"
	ViewStatusReady        ViewStatus = "ready"
	ViewStatusPartialError ViewStatus = "partial-error"
	ViewStatusError        ViewStatus = "error"
)

// CollectionView is a fresh, internally consistent snapshot of a collection
type CollectionView struct {
	BuildID   string          `json:"build_id"`
	Chain     Chain           `json:"chain"`
	Contract  string          `json:"contract"`
	Standard  Standard        `json:"standard"`
	Account   *string         `json:"account"`
	Range     ScanRange       `json:"range"`
	Header    *ContractHeader `json:"header,omitempty"`
	Available []DisplayItem   `json:"available"`
	Owned     []DisplayItem   `json:"owned"`
	Status    ViewStatus      `json:"status"`
	Message   string          `json:"message,omitempty"`
	BuiltAt   time.Time       `json:"built_at"`
}

// NewLoadingView returns a placeholder view for a build that has not completed yet
func NewLoadingView(chain Chain, contract common.Address, standard Standard, account *common.Address, r ScanRange) *CollectionView {
	return &CollectionView{
		Chain:     chain,
		Contract:  contract.Hex(),
		Standard:  standard,
		Account:   AccountString(account),
		Range:     r,
		Available: []DisplayItem{},
		Owned:     []DisplayItem{},
		Status:    ViewStatusLoading,
	}
}

// AvailableIDs returns the token ids of the available items in order
func (v *CollectionView) AvailableIDs() []TokenID {
	return itemIDs(v.Available)
}

// OwnedIDs returns the token ids of the owned items in order
func (v *CollectionView) OwnedIDs() []TokenID {
	return itemIDs(v.Owned)
}

func itemIDs(items []DisplayItem) []TokenID {
	ids := make([]TokenID, len(items))
	for i, item := range items {
		ids[i] = item.TokenID
	}
	return ids
}

// AccountString returns the checksummed hex of an optional account
func AccountString(account *common.Address) *string {
	if account == nil {
		return nil
	}
	s := account.Hex()
	return &s
}

// ParseAddress parses a hex address, rejecting malformed input
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

// ParseOptionalAddress parses an address, returning nil for the empty string
func ParseOptionalAddress(s string) (*common.Address, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// FallbackName returns the display name used when metadata has no name
func FallbackName(id TokenID) string {
	return fmt.Sprintf(FALLBACK_NAME_FORMAT, id)
}

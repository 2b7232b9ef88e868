package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/domain"
)

// Well-known asset names used by the pages
const (
	AssetERC20   = "erc20"
	AssetERC721  = "erc721"
	AssetERC1155 = "erc1155"
	AssetStaking = "staking"
	AssetTipJar  = "tipjar"
)

// ContractSpec is the configured form of a contract entry
type ContractSpec struct {
	Address  string `json:"address" mapstructure:"address"`
	Standard string `json:"standard,omitempty" mapstructure:"standard"`
	ScanSize int    `json:"scan_size,omitempty" mapstructure:"scan_size"`
}

// ContractEntry is a validated contract the service can read
type ContractEntry struct {
	Asset   string          `json:"asset"`
	Address common.Address  `json:"address"`
	// Standard is empty for contracts that are not token collections (staking, tip jar)
	Standard domain.Standard `json:"standard,omitempty"`
	ScanSize int             `json:"scan_size,omitempty"`
}

// IsCollection reports whether the entry can back a collection view
func (e *ContractEntry) IsCollection() bool {
	return e.Standard != ""
}

// ContractRegistryData represents the structure of the contracts JSON file
type ContractRegistryData struct {
	Version   int                     `json:"version"`
	Contracts map[string]ContractSpec `json:"contracts"`
}

// ContractRegistry maps asset names to contracts
//
//go:generate mockgen -source=contracts.go -destination=../mocks/contract_registry.go -package=mocks -mock_names=ContractRegistry=MockContractRegistry,ContractRegistryLoader=MockContractRegistryLoader
type ContractRegistry interface {
	// Lookup returns the entry for asset or domain.ErrUnknownAsset
	Lookup(asset string) (*ContractEntry, error)

	// Assets returns every entry sorted by asset name
	Assets() []ContractEntry
}

// ContractRegistryLoader defines the interface for loading contract registries from files
type ContractRegistryLoader interface {
	// Load loads the contract registry from a JSON file
	Load(filePath string) (ContractRegistry, error)
}

type contractRegistry struct {
	entries map[string]*ContractEntry
}

// NewContractRegistry validates specs and builds a registry. Entries with an
// empty address are skipped so optional pages can stay unconfigured.
func NewContractRegistry(specs map[string]ContractSpec, defaultScanSize int) (ContractRegistry, error) {
	r := &contractRegistry{entries: make(map[string]*ContractEntry)}

	for asset, spec := range specs {
		name := strings.ToLower(strings.TrimSpace(asset))
		if name == "" {
			return nil, fmt.Errorf("contract entry with empty asset name")
		}
		if strings.TrimSpace(spec.Address) == "" {
			continue
		}

		address, err := domain.ParseAddress(spec.Address)
		if err != nil {
			return nil, fmt.Errorf("contract %s: %w", name, err)
		}

		standard := domain.Standard(strings.ToLower(strings.TrimSpace(spec.Standard)))
		if standard != "" && !domain.IsValidStandard(standard) {
			return nil, fmt.Errorf("contract %s: %w: %s", name, domain.ErrUnsupportedStandard, spec.Standard)
		}

		scanSize := spec.ScanSize
		if scanSize < 0 {
			return nil, fmt.Errorf("contract %s: %w: negative scan size %d", name, domain.ErrInvalidScanRange, scanSize)
		}
		if scanSize == 0 && standard != "" {
			scanSize = defaultScanSize
		}

		r.entries[name] = &ContractEntry{
			Asset:    name,
			Address:  address,
			Standard: standard,
			ScanSize: scanSize,
		}
	}

	return r, nil
}

func (r *contractRegistry) Lookup(asset string) (*ContractEntry, error) {
	entry, ok := r.entries[strings.ToLower(strings.TrimSpace(asset))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAsset, asset)
	}
	copied := *entry
	return &copied, nil
}

func (r *contractRegistry) Assets() []ContractEntry {
	assets := make([]ContractEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		assets = append(assets, *entry)
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].Asset < assets[j].Asset
	})
	return assets
}

// contractRegistryLoader is the internal implementation of ContractRegistryLoader interface
type contractRegistryLoader struct {
	fs              adapter.FileSystem
	json            adapter.JSON
	defaultScanSize int
}

// NewContractRegistryLoader creates a new ContractRegistryLoader with injected dependencies
func NewContractRegistryLoader(fs adapter.FileSystem, json adapter.JSON, defaultScanSize int) ContractRegistryLoader {
	return &contractRegistryLoader{
		fs:              fs,
		json:            json,
		defaultScanSize: defaultScanSize,
	}
}

// Load loads the contract registry from a JSON file
func (l *contractRegistryLoader) Load(filePath string) (ContractRegistry, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read contracts file: %w", err)
	}

	var registryData ContractRegistryData
	if err := l.json.Unmarshal(data, &registryData); err != nil {
		return nil, fmt.Errorf("failed to parse contracts JSON: %w", err)
	}

	return NewContractRegistry(registryData.Contracts, l.defaultScanSize)
}

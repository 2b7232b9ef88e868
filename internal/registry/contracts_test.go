package registry_test

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/mocks"
	"github.com/feral-file/ff-marketplace/internal/registry"
)

const (
	erc1155Address = "0x1111111111111111111111111111111111111111"
	stakingAddress = "0x2222222222222222222222222222222222222222"
)

func TestContractRegistryLoader_Load(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(*mocks.MockFileSystem, *mocks.MockJSON)
		expectedErr  string // Error message to assert, empty means no error expected
		validateFunc func(t *testing.T, reg registry.ContractRegistry)
	}{
		{
			name: "successful load with valid JSON",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("contracts.json").
					Return([]byte(`{
					"version": 1,
					"contracts": {
						"ERC1155": {"address": "`+erc1155Address+`", "standard": "ERC1155", "scan_size": 21},
						"staking": {"address": "`+stakingAddress+`"},
						"erc721": {"address": "0x4444444444444444444444444444444444444444", "standard": "erc721"}
					}
				}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			validateFunc: func(t *testing.T, reg registry.ContractRegistry) {
				entry, err := reg.Lookup(registry.AssetERC1155)
				require.NoError(t, err)
				assert.Equal(t, common.HexToAddress(erc1155Address), entry.Address)
				assert.Equal(t, domain.StandardERC1155, entry.Standard)
				assert.Equal(t, 21, entry.ScanSize)
				assert.True(t, entry.IsCollection())

				entry, err = reg.Lookup("Staking")
				require.NoError(t, err)
				assert.False(t, entry.IsCollection())
				assert.Zero(t, entry.ScanSize)

				entry, err = reg.Lookup(registry.AssetERC721)
				require.NoError(t, err)
				assert.Equal(t, 10, entry.ScanSize)

				_, err = reg.Lookup(registry.AssetTipJar)
				assert.ErrorIs(t, err, domain.ErrUnknownAsset)

				assets := reg.Assets()
				require.Len(t, assets, 3)
				assert.Equal(t, "erc1155", assets[0].Asset)
				assert.Equal(t, "erc721", assets[1].Asset)
				assert.Equal(t, "staking", assets[2].Asset)
			},
		},
		{
			name: "file read error",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("contracts.json").
					Return(nil, assert.AnError)
			},
			expectedErr: "failed to read contracts file",
		},
		{
			name: "JSON parse error",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				contractsJSON := []byte(`invalid json`)
				mockFS.
					EXPECT().
					ReadFile("contracts.json").
					Return(contractsJSON, nil)
				mockJSON.
					EXPECT().
					Unmarshal(contractsJSON, gomock.Any()).
					Return(assert.AnError)
			},
			expectedErr: "failed to parse contracts JSON",
		},
		{
			name: "invalid address",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("contracts.json").
					Return([]byte(`{"contracts": {"erc1155": {"address": "0x123", "standard": "erc1155"}}}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			expectedErr: "invalid address",
		},
		{
			name: "unsupported standard",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("contracts.json").
					Return([]byte(`{"contracts": {"fa2": {"address": "`+erc1155Address+`", "standard": "fa2"}}}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			expectedErr: "unsupported standard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFS := mocks.NewMockFileSystem(ctrl)
			mockJSON := mocks.NewMockJSON(ctrl)

			if tt.setupMocks != nil {
				tt.setupMocks(mockFS, mockJSON)
			}

			loader := registry.NewContractRegistryLoader(mockFS, mockJSON, 10)
			reg, err := loader.Load("contracts.json")

			if tt.expectedErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.Nil(t, reg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, reg)
				if tt.validateFunc != nil {
					tt.validateFunc(t, reg)
				}
			}
		})
	}
}

func TestNewContractRegistry(t *testing.T) {
	reg, err := registry.NewContractRegistry(map[string]registry.ContractSpec{
		"erc1155": {Address: erc1155Address, Standard: "erc1155"},
		"tipjar":  {Address: ""},
	}, 10)
	require.NoError(t, err)

	assert.Len(t, reg.Assets(), 1)
	_, err = reg.Lookup("tipjar")
	assert.ErrorIs(t, err, domain.ErrUnknownAsset)

	_, err = registry.NewContractRegistry(map[string]registry.ContractSpec{
		"erc1155": {Address: erc1155Address, Standard: "erc1155", ScanSize: -1},
	}, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidScanRange)
}

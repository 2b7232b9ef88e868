package metadata_test

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/metadata"
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

// testFetcherMocks contains all the mocks needed for testing the fetcher
type testFetcherMocks struct {
	ctrl       *gomock.Controller
	httpClient *mocks.MockHTTPClient
	fetcher    metadata.Fetcher
}

// setupTestFetcher creates all the mocks and fetcher for testing
func setupTestFetcher(t *testing.T) *testFetcherMocks {
	ctrl := gomock.NewController(t)

	normalizer, err := uri.NewNormalizer(uri.Config{
		IPFSGateway:    "https://ipfs.io/ipfs/",
		ArweaveGateway: "https://arweave.net/",
	})
	require.NoError(t, err)

	tm := &testFetcherMocks{
		ctrl:       ctrl,
		httpClient: mocks.NewMockHTTPClient(ctrl),
	}
	tm.fetcher = metadata.NewFetcher(tm.httpClient, adapter.NewJSON(), normalizer, metadata.Config{
		Timeout: time.Second,
	})

	return tm
}

func TestFetcher_Fetch_IPFS(t *testing.T) {
	tm := setupTestFetcher(t)

	tm.httpClient.
		EXPECT().
		GetRaw(gomock.Any(), "https://ipfs.io/ipfs/abc/1.json").
		Return([]byte(`{
			"name": "Alpha",
			"description": "First drop",
			"image": "ipfs://img/1.png",
			"animation_url": "ar://tx/anim.html",
			"external_url": "https://example.com/1",
			"attributes": [{"trait_type": "Color", "value": "Red"}, {"trait_type": "Ignored"}],
			"price": "1500000000000000000"
		}`), nil)

	md, err := tm.fetcher.Fetch(context.Background(), "ipfs://abc/1.json")
	require.NoError(t, err)

	assert.Equal(t, "Alpha", md.Name)
	assert.Equal(t, "First drop", md.Description)
	assert.Equal(t, "https://ipfs.io/ipfs/img/1.png", md.Image)
	assert.Equal(t, "https://arweave.net/tx/anim.html", md.AnimationURL)
	assert.Equal(t, "https://example.com/1", md.ExternalURL)
	require.Len(t, md.Attributes, 1)
	assert.Equal(t, "Color", md.Attributes[0].TraitType)
	assert.Equal(t, "Red", md.Attributes[0].Value)
	assert.Equal(t, "1500000000000000000", md.Extra["price"])
	assert.Len(t, md.Digest, 64)
}

func TestFetcher_Fetch_DigestIgnoresKeyOrder(t *testing.T) {
	tm := setupTestFetcher(t)

	tm.httpClient.EXPECT().GetRaw(gomock.Any(), "https://example.com/a.json").
		Return([]byte(`{"name":"A","image":"x"}`), nil)
	tm.httpClient.EXPECT().GetRaw(gomock.Any(), "https://example.com/b.json").
		Return([]byte(`{ "image": "x", "name": "A" }`), nil)

	a, err := tm.fetcher.Fetch(context.Background(), "https://example.com/a.json")
	require.NoError(t, err)
	b, err := tm.fetcher.Fetch(context.Background(), "https://example.com/b.json")
	require.NoError(t, err)

	assert.Equal(t, a.Digest, b.Digest)
}

func TestFetcher_Fetch_ImageURLFallback(t *testing.T) {
	tm := setupTestFetcher(t)

	tm.httpClient.EXPECT().GetRaw(gomock.Any(), gomock.Any()).
		Return([]byte(`{"name":"Gen","image_url":"ipfs://still.png","generator_url":"https://gen.example/1","traits":[{"trait_type":"Artist","value":"FF"}]}`), nil)

	md, err := tm.fetcher.Fetch(context.Background(), "https://example.com/gen.json")
	require.NoError(t, err)
	assert.Equal(t, "https://ipfs.io/ipfs/still.png", md.Image)
	assert.Equal(t, "https://gen.example/1", md.AnimationURL)
	require.Len(t, md.Attributes, 1)
	assert.Equal(t, "FF", md.Attributes[0].Value)
}

func TestFetcher_Fetch_DataURI(t *testing.T) {
	tm := setupTestFetcher(t)

	encoded := base64.StdEncoding.EncodeToString([]byte(`{"name":"Inline","image":"ipfs://x"}`))

	md, err := tm.fetcher.Fetch(context.Background(), "data:application/json;base64,"+encoded)
	require.NoError(t, err)
	assert.Equal(t, "Inline", md.Name)
	assert.Equal(t, "https://ipfs.io/ipfs/x", md.Image)

	md, err = tm.fetcher.Fetch(context.Background(), `data:application/json,{"name":"Plain%20Text"}`)
	require.NoError(t, err)
	assert.Equal(t, "Plain Text", md.Name)
}

func TestFetcher_Fetch_Failures(t *testing.T) {
	tests := []struct {
		name  string
		uri   string
		setup func(tm *testFetcherMocks)
	}{
		{
			name: "http error",
			uri:  "https://example.com/404.json",
			setup: func(tm *testFetcherMocks) {
				tm.httpClient.EXPECT().GetRaw(gomock.Any(), "https://example.com/404.json").
					Return(nil, &adapter.StatusError{URL: "https://example.com/404.json", StatusCode: 404}).
					Times(1)
			},
		},
		{
			name: "timeout",
			uri:  "https://example.com/slow.json",
			setup: func(tm *testFetcherMocks) {
				tm.httpClient.EXPECT().GetRaw(gomock.Any(), "https://example.com/slow.json").
					Return(nil, context.DeadlineExceeded)
			},
		},
		{
			name: "invalid json",
			uri:  "https://example.com/bad.json",
			setup: func(tm *testFetcherMocks) {
				tm.httpClient.EXPECT().GetRaw(gomock.Any(), "https://example.com/bad.json").
					Return([]byte(`{"name":`), nil)
			},
		},
		{
			name: "json array",
			uri:  "https://example.com/array.json",
			setup: func(tm *testFetcherMocks) {
				tm.httpClient.EXPECT().GetRaw(gomock.Any(), "https://example.com/array.json").
					Return([]byte(`[1,2]`), nil)
			},
		},
		{
			name: "json null",
			uri:  "https://example.com/null.json",
			setup: func(tm *testFetcherMocks) {
				tm.httpClient.EXPECT().GetRaw(gomock.Any(), "https://example.com/null.json").
					Return([]byte(`null`), nil)
			},
		},
		{name: "empty uri", uri: "   "},
		{name: "unsupported scheme", uri: "ftp://example.com/1.json"},
		{name: "bad base64", uri: "data:application/json;base64,!!!"},
		{name: "malformed data uri", uri: "data:application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestFetcher(t)
			if tt.setup != nil {
				tt.setup(tm)
			}

			md, err := tm.fetcher.Fetch(context.Background(), tt.uri)
			assert.Nil(t, md)
			assert.True(t, errors.Is(err, domain.ErrMetadataUnavailable), "got %v", err)
		})
	}
}

func TestFetcher_Fetch_AppliesTimeout(t *testing.T) {
	tm := setupTestFetcher(t)

	tm.httpClient.EXPECT().GetRaw(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, url string) ([]byte, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
			return []byte(`{}`), nil
		})

	md, err := tm.fetcher.Fetch(context.Background(), "https://example.com/empty.json")
	require.NoError(t, err)
	assert.Empty(t, md.Name)
	assert.Empty(t, md.Image)
}

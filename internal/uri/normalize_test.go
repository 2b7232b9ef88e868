package uri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/uri"
)

func newNormalizer(t *testing.T) *uri.Normalizer {
	t.Helper()
	n, err := uri.NewNormalizer(uri.Config{
		IPFSGateway:    "https://ipfs.io/ipfs/",
		ArweaveGateway: "https://arweave.net",
	})
	require.NoError(t, err)
	return n
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newNormalizer(t)

	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "ipfs uri with path",
			uri:      "ipfs://abc/123.json",
			expected: "https://ipfs.io/ipfs/abc/123.json",
		},
		{
			name:     "ipfs uri with doubled namespace",
			uri:      "ipfs://ipfs/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
			expected: "https://ipfs.io/ipfs/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
		},
		{
			name:     "upper case scheme",
			uri:      "IPFS://abc",
			expected: "https://ipfs.io/ipfs/abc",
		},
		{
			name:     "arweave uri gets trailing slash on base",
			uri:      "ar://tx123/meta.json",
			expected: "https://arweave.net/tx123/meta.json",
		},
		{
			name:     "https passes through",
			uri:      "https://example.com/meta/1.json",
			expected: "https://example.com/meta/1.json",
		},
		{
			name:     "gateway url passes through",
			uri:      "https://gateway.pinata.cloud/ipfs/abc",
			expected: "https://gateway.pinata.cloud/ipfs/abc",
		},
		{
			name:     "data uri passes through",
			uri:      "data:application/json,{}",
			expected: "data:application/json,{}",
		},
		{
			name:     "unknown scheme passes through",
			uri:      "foo://bar",
			expected: "foo://bar",
		},
		{
			name:     "surrounding whitespace is trimmed",
			uri:      "  ipfs://abc \n",
			expected: "https://ipfs.io/ipfs/abc",
		},
		{
			name:     "empty",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.uri))
		})
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	n := newNormalizer(t)

	inputs := []string{
		"ipfs://abc/123.json",
		"ipfs://ipfs://abc",
		"ipfs://ipfs/ipfs/abc",
		"ar://x",
		"https://ipfs.io/ipfs/abc",
		"http://localhost:8080/1.json",
		" ipfs://spaced ",
		"not a uri",
		"ipfs://",
		"",
	}

	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "input %q", in)
		assert.False(t, uri.IsContentAddressed(once), "input %q", in)
	}
}

func FuzzNormalizer_Idempotent(f *testing.F) {
	f.Add("ipfs://abc/123.json")
	f.Add("ar://tx")
	f.Add("https://example.com")
	f.Add(" IPFS://ipfs/x ")

	n, err := uri.NewNormalizer(uri.Config{IPFSGateway: "https://ipfs.io/ipfs/"})
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, in string) {
		once := n.Normalize(in)
		if twice := n.Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	})
}

func TestNewNormalizer_InvalidGateway(t *testing.T) {
	tests := []struct {
		name string
		cfg  uri.Config
	}{
		{name: "content addressed gateway", cfg: uri.Config{IPFSGateway: "ipfs://gateway/"}},
		{name: "no host", cfg: uri.Config{ArweaveGateway: "https://"}},
		{name: "relative", cfg: uri.Config{IPFSGateway: "/ipfs/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uri.NewNormalizer(tt.cfg)
			assert.Error(t, err)
		})
	}

	n, err := uri.NewNormalizer(uri.Config{})
	require.NoError(t, err)
	assert.Equal(t, "https://ipfs.io/ipfs/abc", n.Normalize("ipfs://abc"))
	assert.Equal(t, "https://arweave.net/abc", n.Normalize("ar://abc"))
}

func TestExpandTokenID(t *testing.T) {
	assert.Equal(t,
		"https://example.com/000000000000000000000000000000000000000000000000000000000000002a.json",
		uri.ExpandTokenID("https://example.com/{id}.json", domain.TokenID(42)))
	assert.Equal(t, "ipfs://abc/1.json", uri.ExpandTokenID("ipfs://abc/1.json", domain.TokenID(1)))
}

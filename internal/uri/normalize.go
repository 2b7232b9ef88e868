package uri

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

const (
	schemeIPFS    = "ipfs://"
	schemeArweave = "ar://"
	// ERC-1155 clients substitute this placeholder with the hex token id
	idPlaceholder = "{id}"
)

// Config holds the gateway bases used to rewrite content-addressed URIs
type Config struct {
	// IPFSGateway replaces the ipfs:// prefix, e.g. https://ipfs.io/ipfs/
	IPFSGateway string
	// ArweaveGateway replaces the ar:// prefix, e.g. https://arweave.net/
	ArweaveGateway string
}

// Normalizer rewrites content-addressed URIs to HTTP(S) gateway URLs.
// Normalize is pure and idempotent: gateway bases are validated to be
// http(s), so a normalized URL never carries a rewritable prefix again.
type Normalizer struct {
	ipfsGateway    string
	arweaveGateway string
}

// NewNormalizer validates the gateway bases; empty values fall back to the defaults
func NewNormalizer(cfg Config) (*Normalizer, error) {
	ipfs, err := gatewayBase(cfg.IPFSGateway, domain.DEFAULT_IPFS_GATEWAY)
	if err != nil {
		return nil, fmt.Errorf("invalid IPFS gateway: %w", err)
	}
	arweave, err := gatewayBase(cfg.ArweaveGateway, domain.DEFAULT_ARWEAVE_GATEWAY)
	if err != nil {
		return nil, fmt.Errorf("invalid Arweave gateway: %w", err)
	}

	return &Normalizer{
		ipfsGateway:    ipfs,
		arweaveGateway: arweave,
	}, nil
}

// Normalize rewrites ipfs:// and ar:// URIs to the configured gateway,
// keeping the rest of the path unchanged. Anything else passes through
// (already HTTP(S), data: URIs, or unresolvable values left to fail on fetch).
func (n *Normalizer) Normalize(raw string) string {
	u := strings.TrimSpace(raw)

	if rest, ok := cutPrefixFold(u, schemeIPFS); ok {
		// Some minters double the namespace: ipfs://ipfs/<cid>
		if after, ok := cutPrefixFold(rest, "ipfs/"); ok {
			rest = after
		}
		return n.ipfsGateway + rest
	}

	if rest, ok := cutPrefixFold(u, schemeArweave); ok {
		return n.arweaveGateway + rest
	}

	return u
}

// IsContentAddressed reports whether the URI uses a scheme that needs a gateway
func IsContentAddressed(raw string) bool {
	u := strings.TrimSpace(raw)
	_, ipfs := cutPrefixFold(u, schemeIPFS)
	_, ar := cutPrefixFold(u, schemeArweave)
	return ipfs || ar
}

// ExpandTokenID substitutes the ERC-1155 {id} placeholder with the
// zero-padded 64 character lowercase hex form of the token id
func ExpandTokenID(raw string, id domain.TokenID) string {
	if !strings.Contains(raw, idPlaceholder) {
		return raw
	}
	return strings.ReplaceAll(raw, idPlaceholder, fmt.Sprintf("%064x", uint64(id)))
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

func gatewayBase(base, fallback string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		base = fallback
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("gateway %q must be an http(s) URL", base)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("gateway %q has no host", base)
	}

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base, nil
}

package metadata

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gowebpki/jcs"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/uri"
)

// Config holds the metadata fetch policy
type Config struct {
	// Timeout bounds a single fetch; fetches are never retried
	Timeout time.Duration
}

// Fetcher resolves off-chain metadata documents
//
//go:generate mockgen -source=fetcher.go -destination=../mocks/metadata_fetcher.go -package=mocks -mock_names=Fetcher=MockMetadataFetcher
type Fetcher interface {
	// Fetch normalizes rawURI, downloads the JSON document and parses it.
	// Any failure is reported as domain.ErrMetadataUnavailable.
	Fetch(ctx context.Context, rawURI string) (*domain.TokenMetadata, error)
}

type fetcher struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	normalizer *uri.Normalizer
	timeout    time.Duration
}

func NewFetcher(httpClient adapter.HTTPClient, json adapter.JSON, normalizer *uri.Normalizer, cfg Config) Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &fetcher{
		httpClient: httpClient,
		json:       json,
		normalizer: normalizer,
		timeout:    timeout,
	}
}

func (f *fetcher) Fetch(ctx context.Context, rawURI string) (*domain.TokenMetadata, error) {
	target := f.normalizer.Normalize(rawURI)
	if target == "" {
		return nil, fmt.Errorf("%w: empty uri", domain.ErrMetadataUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.load(ctx, target)
	if err != nil {
		logger.DebugCtx(ctx, "Failed to load metadata", zap.String("uri", target), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMetadataUnavailable, target, err)
	}

	var raw map[string]interface{}
	if err := f.json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: failed to parse JSON: %v", domain.ErrMetadataUnavailable, target, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: %s: document is not an object", domain.ErrMetadataUnavailable, target)
	}

	md := f.normalizeOpenSeaMetadata(raw)

	digest, err := f.digest(raw)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to digest metadata", zap.String("uri", target), zap.Error(err))
	}
	md.Digest = digest

	return md, nil
}

// load returns the document bytes for an http(s) or data URI
func (f *fetcher) load(ctx context.Context, target string) ([]byte, error) {
	switch {
	case strings.HasPrefix(target, "data:"):
		return parseDataURI(target)
	case strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://"):
		return f.httpClient.GetRaw(ctx, target)
	default:
		return nil, fmt.Errorf("unsupported URI scheme: %s", target)
	}
}

// parseDataURI decodes data:application/json;base64,<data> and data:application/json,<data>
func parseDataURI(target string) ([]byte, error) {
	parts := strings.SplitN(strings.TrimPrefix(target, "data:"), ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid data URI format")
	}

	mediaType, data := parts[0], parts[1]
	if strings.HasSuffix(mediaType, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64: %w", err)
		}
		return decoded, nil
	}

	unescaped, err := url.PathUnescape(data)
	if err != nil {
		// Inline JSON is commonly left unescaped
		return []byte(data), nil
	}
	return []byte(unescaped), nil
}

// digest returns the hex sha256 of the canonical JSON form of raw
func (f *fetcher) digest(raw map[string]interface{}) (string, error) {
	b, err := f.json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}

	canonical, err := jcs.Transform(b)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize metadata: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// knownFields are lifted into TokenMetadata; the rest lands in Extra
var knownFields = map[string]bool{
	"name":          true,
	"description":   true,
	"image":         true,
	"image_url":     true,
	"external_url":  true,
	"animation_url": true,
	"generator_url": true,
	"attributes":    true,
	"traits":        true,
}

// normalizeOpenSeaMetadata maps a document following the OpenSea metadata standard
// https://docs.opensea.io/docs/metadata-standards
func (f *fetcher) normalizeOpenSeaMetadata(raw map[string]interface{}) *domain.TokenMetadata {
	md := &domain.TokenMetadata{
		Name:         stringField(raw, "name"),
		Description:  stringField(raw, "description"),
		Image:        stringField(raw, "image"),
		ExternalURL:  stringField(raw, "external_url"),
		AnimationURL: stringField(raw, "animation_url"),
	}

	if md.Image == "" {
		md.Image = stringField(raw, "image_url")
	}

	// ArtBlocks uses generator_url for the live view
	if md.AnimationURL == "" {
		md.AnimationURL = stringField(raw, "generator_url")
	}

	md.Image = f.normalizer.Normalize(md.Image)
	md.AnimationURL = f.normalizer.Normalize(md.AnimationURL)
	md.ExternalURL = f.normalizer.Normalize(md.ExternalURL)

	md.Attributes = parseAttributes(raw["attributes"])
	if len(md.Attributes) == 0 {
		md.Attributes = parseAttributes(raw["traits"])
	}

	for k, v := range raw {
		if knownFields[k] {
			continue
		}
		if md.Extra == nil {
			md.Extra = make(map[string]interface{})
		}
		md.Extra[k] = v
	}

	return md
}

func stringField(raw map[string]interface{}, key string) string {
	s, ok := raw[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func parseAttributes(v interface{}) []domain.Attribute {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}

	attrs := make([]domain.Attribute, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		value, ok := m["value"]
		if !ok {
			continue
		}
		traitType, _ := m["trait_type"].(string)
		attrs = append(attrs, domain.Attribute{TraitType: traitType, Value: value})
	}

	return attrs
}

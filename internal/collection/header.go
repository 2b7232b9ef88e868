package collection

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/contract"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/metadata"
	"github.com/feral-file/ff-marketplace/internal/uri"
)

// HeaderReader reads the contract-level fields a page header needs
type HeaderReader struct {
	fetcher                metadata.Fetcher
	normalizer             *uri.Normalizer
	placeholderImage       string
	placeholderDescription string
}

// NewHeaderReader creates a header reader; empty placeholders fall back to the defaults
func NewHeaderReader(fetcher metadata.Fetcher, normalizer *uri.Normalizer, placeholderImage, placeholderDescription string) *HeaderReader {
	if placeholderImage == "" {
		placeholderImage = domain.PLACEHOLDER_IMAGE
	}
	if placeholderDescription == "" {
		placeholderDescription = domain.FALLBACK_DESCRIPTION
	}
	return &HeaderReader{
		fetcher:                fetcher,
		normalizer:             normalizer,
		placeholderImage:       placeholderImage,
		placeholderDescription: placeholderDescription,
	}
}

// Read returns the contract header. It fails only when neither name() nor
// contractURI() can be read; a failed symbol, totalSupply or contract metadata
// read degrades to empty or placeholder fields.
func (r *HeaderReader) Read(ctx context.Context, h contract.Handle) (*domain.ContractHeader, error) {
	name, nameErr := contract.ReadString(ctx, h, SigName)
	contractURI, uriErr := contract.ReadString(ctx, h, SigContractURI)
	if nameErr != nil && uriErr != nil {
		return nil, fmt.Errorf("failed to read contract header: %w", errors.Join(nameErr, uriErr))
	}

	symbol, err := contract.ReadString(ctx, h, SigSymbol)
	if err != nil {
		logger.DebugCtx(ctx, "Symbol read failed", zap.String("contract", h.Address().Hex()), zap.Error(err))
	}

	header := &domain.ContractHeader{
		Address:     h.Address().Hex(),
		Name:        name,
		Symbol:      symbol,
		Title:       name,
		Description: r.placeholderDescription,
		Image:       r.placeholderImage,
	}

	if supply, err := contract.ReadBigInt(ctx, h, SigERC20TotalSupply); err != nil {
		logger.DebugCtx(ctx, "Total supply read failed", zap.String("contract", header.Address), zap.Error(err))
	} else {
		header.TotalSupply = supply.String()
	}

	if uriErr == nil && contractURI != "" {
		header.ContractURI = r.normalizer.Normalize(contractURI)

		md, err := r.fetcher.Fetch(ctx, contractURI)
		if err != nil {
			logger.WarnCtx(ctx, "Contract metadata unavailable",
				zap.String("contract", header.Address),
				zap.String("uri", header.ContractURI),
				zap.Error(err))
		} else {
			header.HasMetadata = true
			if md.Name != "" {
				header.Title = md.Name
			}
			if md.Description != "" {
				header.Description = md.Description
			}
			if md.Image != "" {
				header.Image = md.Image
			}
		}
	}

	if header.Title == "" {
		header.Title = header.Address
	}

	return header, nil
}

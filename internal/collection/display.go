package collection

import (
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/units"
)

// metadataPriceKey holds a listing price in wei in the token JSON
const metadataPriceKey = "price"

// displayFormat carries the fallback and currency settings used to render items
type displayFormat struct {
	placeholderImage       string
	placeholderDescription string
	nativeSymbol           string
	nativeDecimals         int32
}

// toDisplayItem merges on-chain facts with optional metadata. md may be nil.
func (f displayFormat) toDisplayItem(facts *domain.TokenFacts, md *domain.TokenMetadata, metadataURI string) domain.DisplayItem {
	item := domain.DisplayItem{
		TokenID:      facts.TokenID,
		Name:         domain.FallbackName(facts.TokenID),
		Description:  f.placeholderDescription,
		Image:        f.placeholderImage,
		Owned:        facts.Owned(),
		MetadataURI:  metadataURI,
		OwnerBalance: "0",
	}

	if facts.SupplyKnown && facts.TotalSupply != nil {
		item.TotalSupply = facts.TotalSupply.String()
	}
	if facts.OwnerBalance != nil {
		item.OwnerBalance = facts.OwnerBalance.String()
	}

	if md == nil {
		return item
	}

	item.HasMetadata = true
	item.Digest = md.Digest
	item.ExternalURL = md.ExternalURL
	item.AnimationURL = md.AnimationURL
	item.Attributes = md.Attributes
	if md.Name != "" {
		item.Name = md.Name
	}
	if md.Description != "" {
		item.Description = md.Description
	}
	if md.Image != "" {
		item.Image = md.Image
	}
	if price, ok := units.ParseBaseUnits(md.Extra[metadataPriceKey]); ok {
		item.Price = units.FormatAmount(price, f.nativeDecimals, f.nativeSymbol)
	}

	return item
}

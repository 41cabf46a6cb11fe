package asset

import (
	"maps"
	"slices"
)

// AssetClass tags the kind of instrument an asset represents.
type AssetClass string

// Known asset classes. Other values are accepted and rendered neutrally.
const (
	ClassEquity    AssetClass = "equity"
	ClassBond      AssetClass = "bond"
	ClassCommodity AssetClass = "commodity"
	ClassCurrency  AssetClass = "currency"
)

// Relationship types understood by the visualization layer.
const (
	TypeEquityCorrelation = "equity_correlation"
	TypeSector            = "sector"
	TypeCurrencyExposure  = "currency_exposure"
	TypeCommodityExposure = "commodity_exposure"
	TypeIssuer            = "issuer"
	TypeExchange          = "exchange"
	TypeIndexMembership   = "index_membership"
)

var knownTypes = []string{
	TypeCommodityExposure,
	TypeCurrencyExposure,
	TypeEquityCorrelation,
	TypeExchange,
	TypeIndexMembership,
	TypeIssuer,
	TypeSector,
}

// KnownRelationshipTypes returns the registered relationship types in sorted
// order. The returned slice is a copy.
func KnownRelationshipTypes() []string { return slices.Clone(knownTypes) }

// IsKnownRelationshipType reports whether t is a registered relationship type.
func IsKnownRelationshipType(t string) bool {
	_, ok := slices.BinarySearch(knownTypes, t)
	return ok
}

// Asset is a named financial instrument node.
type Asset struct {
	ID         string         // Unique identifier (ticker, ISIN, ...)
	Class      AssetClass     // equity, bond, commodity, currency or other
	Attributes map[string]any // Free-form attributes (sector, currency, price, ...)
}

// clone returns a copy whose attribute map is not shared with the caller.
func (a Asset) clone() Asset {
	if a.Attributes != nil {
		a.Attributes = maps.Clone(a.Attributes)
	}
	return a
}

// Relationship is a directed, typed, weighted edge between two assets.
type Relationship struct {
	Source string  // Source asset ID
	Target string  // Target asset ID
	Type   string  // Relationship type, e.g. "sector"
	Weight float64 // Strength of the relationship
}

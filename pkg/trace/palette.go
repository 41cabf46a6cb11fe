package trace

import (
	"fmt"
	"hash/fnv"
	"maps"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/assetgraph/pkg/asset"
)

var classColors = map[asset.AssetClass]string{
	asset.ClassEquity:    "#1f77b4",
	asset.ClassBond:      "#2ca02c",
	asset.ClassCommodity: "#ff7f0e",
	asset.ClassCurrency:  "#9467bd",
}

const otherClassColor = "#7f7f7f"

var typeColors = map[string]string{
	asset.TypeEquityCorrelation: "#d62728",
	asset.TypeSector:            "#17becf",
	asset.TypeCurrencyExposure:  "#bcbd22",
	asset.TypeCommodityExposure: "#8c564b",
	asset.TypeIssuer:            "#e377c2",
	asset.TypeExchange:          "#393b79",
	asset.TypeIndexMembership:   "#637939",
}

// AssetColor returns the marker color of a. A string "color" attribute wins
// over the class palette; it is validated with the rest of the figure.
func AssetColor(a asset.Asset) string {
	if c, ok := a.Attributes["color"].(string); ok {
		return c
	}
	if c, ok := classColors[a.Class]; ok {
		return c
	}
	return otherClassColor
}

// RelationshipColor returns the line color for a relationship type. Types
// outside the registry get a stable color derived from the type name.
func RelationshipColor(typ string) string {
	if c, ok := typeColors[typ]; ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(typ))
	hue := float64(h.Sum32() % 360)
	return colorful.Hcl(hue, 0.45, 0.6).Clamped().Hex()
}

// assetHover renders the hover text of a node: id, class, relationship count
// and attributes in key order.
func assetHover(a asset.Asset, outgoing int) string {
	var b strings.Builder
	b.WriteString(a.ID)
	if a.Class != "" {
		fmt.Fprintf(&b, "\nclass: %s", a.Class)
	}
	fmt.Fprintf(&b, "\nrelationships: %d", outgoing)
	for _, k := range slices.Sorted(maps.Keys(a.Attributes)) {
		if k == "color" {
			continue
		}
		fmt.Fprintf(&b, "\n%s: %v", k, a.Attributes[k])
	}
	return b.String()
}

func relationshipHover(r asset.Relationship) string {
	return fmt.Sprintf("%s -> %s\n%s (%.2f)", r.Source, r.Target, r.Type, r.Weight)
}

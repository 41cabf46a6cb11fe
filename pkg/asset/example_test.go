package asset_test

import (
	"fmt"

	"github.com/matzehuels/assetgraph/pkg/asset"
)

func ExampleGraph_Traverse() {
	g := asset.New()
	for _, id := range []string{"AAPL", "MSFT", "NVDA", "TSMC"} {
		_ = g.AddAsset(asset.Asset{ID: id, Class: asset.ClassEquity})
	}
	_ = g.AddRelationship(asset.Relationship{Source: "AAPL", Target: "MSFT", Type: asset.TypeEquityCorrelation, Weight: 0.8})
	_ = g.AddRelationship(asset.Relationship{Source: "AAPL", Target: "NVDA", Type: asset.TypeSector, Weight: 0.6})
	_ = g.AddRelationship(asset.Relationship{Source: "NVDA", Target: "TSMC", Type: asset.TypeSector, Weight: 0.9})

	tr, err := g.Traverse("AAPL", 2)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for i, level := range tr.Hops {
		fmt.Printf("hop %d: %v\n", i+1, level)
	}
	fmt.Println("via:", tr.Intermediates("TSMC"))
	// Output:
	// hop 1: [MSFT NVDA]
	// hop 2: [TSMC]
	// via: [NVDA]
}

func ExampleGraph_AddRelationship() {
	g := asset.New()
	_ = g.AddAsset(asset.Asset{ID: "GLD", Class: asset.ClassCommodity})

	err := g.AddRelationship(asset.Relationship{Source: "GLD", Target: "SLV", Type: asset.TypeCommodityExposure})
	fmt.Println(err)
	// Output:
	// UNKNOWN_ASSET: unknown asset "SLV"
}

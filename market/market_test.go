package market

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperliquid-client/gohl/errs"
	"github.com/hyperliquid-client/gohl/info"
)

type stubSource struct {
	meta     *info.Meta
	spotMeta *info.SpotMeta
	mids     map[string]string
	metaErr  error
	midsErr  error
}

func (s *stubSource) Meta(ctx context.Context, dex string) (*info.Meta, error) {
	if s.metaErr != nil {
		return nil, s.metaErr
	}
	return s.meta, nil
}

func (s *stubSource) SpotMeta(ctx context.Context, dex string) (*info.SpotMeta, error) {
	return s.spotMeta, nil
}

func (s *stubSource) AllMids(ctx context.Context, dex string) (map[string]string, error) {
	if s.midsErr != nil {
		return nil, s.midsErr
	}
	return s.mids, nil
}

func testSource() *stubSource {
	return &stubSource{
		meta: &info.Meta{Universe: []info.AssetInfo{
			{Name: "BTC", SzDecimals: 5},
			{Name: "ETH", SzDecimals: 4},
		}},
		spotMeta: &info.SpotMeta{
			Universe: []info.SpotAssetInfo{{Name: "PURR/USDC", Tokens: [2]int{1, 0}, Index: 0}},
			Tokens:   []info.SpotTokenInfo{{Index: 0, SzDecimals: 8}, {Index: 1, SzDecimals: 2}},
		},
		mids: map[string]string{"ETH": "3000.0", "BTC": "60000.0"},
	}
}

func TestResolveAsset_CaseInsensitive(t *testing.T) {
	c := New(testSource(), "", nil)
	ctx := context.Background()

	a, err := c.ResolveAsset(ctx, "eth", Perp)
	if err != nil {
		t.Fatalf("ResolveAsset: %v", err)
	}
	if a.ID != 1 || a.SzDecimals != 4 {
		t.Fatalf("got %+v", a)
	}
}

func TestResolveAsset_UnknownSymbol(t *testing.T) {
	c := New(testSource(), "", nil)
	_, err := c.ResolveAsset(context.Background(), "DOGE", Perp)
	if !errs.Is(err, errs.UnknownSymbol) {
		t.Fatalf("expected UNKNOWN_SYMBOL, got %v", err)
	}
}

func TestResolveAsset_Spot(t *testing.T) {
	c := New(testSource(), "", nil)
	a, err := c.ResolveAsset(context.Background(), "PURR/USDC", Spot)
	if err != nil {
		t.Fatalf("ResolveAsset: %v", err)
	}
	if a.ID != spotAssetIDOffset || a.SzDecimals != 2 {
		t.Fatalf("got %+v", a)
	}
}

func TestMidOrError_LazyLoad(t *testing.T) {
	c := New(testSource(), "", nil)
	mid, err := c.MidOrError(context.Background(), "eth")
	if err != nil {
		t.Fatalf("MidOrError: %v", err)
	}
	if mid.String() != "3000" {
		t.Fatalf("got %s", mid.String())
	}
}

func TestMidOrError_Missing(t *testing.T) {
	c := New(testSource(), "", nil)
	_, err := c.MidOrError(context.Background(), "DOGE")
	if !errs.Is(err, errs.UnknownSymbol) {
		t.Fatalf("expected UNKNOWN_SYMBOL, got %v", err)
	}
}

func TestWarmUp_SwallowsErrors(t *testing.T) {
	src := testSource()
	src.metaErr = errors.New("boom")
	c := New(src, "", nil)
	c.WarmUp(context.Background())

	// Perp universe failed to warm, but spot and mids should still be usable.
	if _, ok := c.lookup("PURR/USDC", Spot); !ok {
		t.Fatalf("expected spot universe to have warmed despite perp failure")
	}
}

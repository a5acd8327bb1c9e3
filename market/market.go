// Package market holds the process-wide, concurrency-safe registry of
// asset metadata (symbol -> id, szDecimals, instrument kind) and latest
// mid prices that the order normalizer consults. It is built from the
// exchange's meta/spotMeta/allMids info endpoints.
package market

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hyperliquid-client/gohl/errs"
	"github.com/hyperliquid-client/gohl/info"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Instrument distinguishes perpetual and spot markets. Spot asset ids
// are offset from perpetual ids by spotAssetIDOffset, an opaque mapping
// detail the rest of the system does not need to know about.
type Instrument string

const (
	Perp Instrument = "PERP"
	Spot Instrument = "SPOT"

	spotAssetIDOffset = 10_000
)

// Asset is an immutable market-symbol listing.
type Asset struct {
	Symbol     string
	ID         int
	Instrument Instrument
	SzDecimals int
}

// Source is the subset of info.Info this cache needs to warm and refresh
// itself. It is an interface so tests can stub it without a live server.
type Source interface {
	Meta(ctx context.Context, dex string) (*info.Meta, error)
	SpotMeta(ctx context.Context, dex string) (*info.SpotMeta, error)
	AllMids(ctx context.Context, dex string) (map[string]string, error)
}

// universe is the immutable snapshot swapped atomically on each
// successful load, so readers never observe a partially populated map.
type universe struct {
	byPerpSymbol map[string]Asset
	bySpotSymbol map[string]Asset
}

// Cache is a single-writer, many-reader metadata and mid-price registry.
type Cache struct {
	source Source
	log    *zap.SugaredLogger

	mu  sync.RWMutex
	u   *universe
	dex string

	mids sync.Map // symbol (uppercased) -> string decimal
}

// New builds an empty cache; call WarmUp to populate it eagerly, or rely
// on lazy on-demand loads from ResolveAsset/MidOrError.
func New(source Source, dex string, log *zap.SugaredLogger) *Cache {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Cache{
		source: source,
		log:    log,
		dex:    dex,
		u:      &universe{byPerpSymbol: map[string]Asset{}, bySpotSymbol: map[string]Asset{}},
	}
}

// WarmUp performs at most three concurrent requests (meta, spotMeta,
// allMids) to populate both universes and the mid-price map. It is
// best-effort: failures are logged and swallowed so a cold or flaky
// server never blocks a client from being constructed. Subsequent
// lookups lazy-load on demand regardless of whether WarmUp succeeded.
func (c *Cache) WarmUp(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		if err := c.loadPerpUniverse(ctx); err != nil {
			c.log.Warnw("warm-up: perp universe load failed", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := c.loadSpotUniverse(ctx); err != nil {
			c.log.Warnw("warm-up: spot universe load failed", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := c.loadMids(ctx); err != nil {
			c.log.Warnw("warm-up: mids load failed", "error", err)
		}
	}()

	wg.Wait()
}

func (c *Cache) loadPerpUniverse(ctx context.Context) error {
	meta, err := c.source.Meta(ctx, c.dex)
	if err != nil {
		return err
	}
	byPerp := make(map[string]Asset, len(meta.Universe))
	for id, a := range meta.Universe {
		byPerp[key(a.Name)] = Asset{Symbol: a.Name, ID: id, Instrument: Perp, SzDecimals: a.SzDecimals}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.u.clone()
	next.byPerpSymbol = byPerp
	c.u = next
	return nil
}

func (c *Cache) loadSpotUniverse(ctx context.Context) error {
	spotMeta, err := c.source.SpotMeta(ctx, c.dex)
	if err != nil {
		return err
	}
	tokenSzDecimals := make(map[int]int, len(spotMeta.Tokens))
	for _, t := range spotMeta.Tokens {
		tokenSzDecimals[t.Index] = t.SzDecimals
	}

	bySpot := make(map[string]Asset, len(spotMeta.Universe))
	for _, a := range spotMeta.Universe {
		szDecimals := 0
		if len(a.Tokens) > 0 {
			szDecimals = tokenSzDecimals[a.Tokens[0]]
		}
		bySpot[key(a.Name)] = Asset{
			Symbol:     a.Name,
			ID:         spotAssetIDOffset + a.Index,
			Instrument: Spot,
			SzDecimals: szDecimals,
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.u.clone()
	next.bySpotSymbol = bySpot
	c.u = next
	return nil
}

func (c *Cache) loadMids(ctx context.Context) error {
	mids, err := c.source.AllMids(ctx, c.dex)
	if err != nil {
		return err
	}
	for symbol, px := range mids {
		c.mids.Store(key(symbol), px)
	}
	return nil
}

func (u *universe) clone() *universe {
	if u == nil {
		return &universe{byPerpSymbol: map[string]Asset{}, bySpotSymbol: map[string]Asset{}}
	}
	return &universe{byPerpSymbol: u.byPerpSymbol, bySpotSymbol: u.bySpotSymbol}
}

func key(symbol string) string { return strings.ToUpper(symbol) }

// ResolveAsset looks up symbol in the universe matching instrument,
// case-insensitively, lazy-loading that universe on a cache miss.
func (c *Cache) ResolveAsset(ctx context.Context, symbol string, instrument Instrument) (Asset, error) {
	if a, ok := c.lookup(symbol, instrument); ok {
		return a, nil
	}

	var err error
	if instrument == Spot {
		err = c.loadSpotUniverse(ctx)
	} else {
		err = c.loadPerpUniverse(ctx)
	}
	if err != nil {
		return Asset{}, errs.Wrap(errs.UnknownSymbol, fmt.Sprintf("loading universe for %q", symbol), err)
	}

	if a, ok := c.lookup(symbol, instrument); ok {
		return a, nil
	}
	return Asset{}, errs.New(errs.UnknownSymbol, fmt.Sprintf("unknown symbol %q", symbol))
}

func (c *Cache) lookup(symbol string, instrument Instrument) (Asset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if instrument == Spot {
		a, ok := c.u.bySpotSymbol[key(symbol)]
		return a, ok
	}
	a, ok := c.u.byPerpSymbol[key(symbol)]
	return a, ok
}

// SzDecimals is a thin accessor used by the normalizer.
func (c *Cache) SzDecimals(ctx context.Context, symbol string, instrument Instrument) (int, error) {
	a, err := c.ResolveAsset(ctx, symbol, instrument)
	if err != nil {
		return 0, err
	}
	return a.SzDecimals, nil
}

// MidOrError returns the latest cached mid for symbol, fetching the
// whole mids map on a cache miss. Failures propagate to the caller.
func (c *Cache) MidOrError(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if raw, ok := c.mids.Load(key(symbol)); ok {
		return decimal.NewFromString(raw.(string))
	}

	if err := c.loadMids(ctx); err != nil {
		return decimal.Decimal{}, errs.Wrap(errs.UnknownSymbol, fmt.Sprintf("loading mids for %q", symbol), err)
	}

	raw, ok := c.mids.Load(key(symbol))
	if !ok {
		return decimal.Decimal{}, errs.New(errs.UnknownSymbol, fmt.Sprintf("no mid price for %q", symbol))
	}
	return decimal.NewFromString(raw.(string))
}

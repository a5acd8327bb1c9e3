// Package info is the read-only REST surface over the exchange's public
// /info endpoint: exchange metadata, mid prices, and per-user account
// queries. It has no websocket half — streaming is out of scope for this
// module, so there is nothing here to dial or subscribe to.
package info

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hyperliquid-client/gohl/rest"
)

// Info is a thin, stateless wrapper over one REST endpoint's request
// shapes. It caches nothing; market.Cache is the caching layer built on
// top of it, and account.Reader reads through it without caching.
type Info struct {
	rest rest.ClientInterface
}

// Config builds an Info client.
type Config struct {
	BaseURL string
	Timeout uint
}

// New creates an Info client.
func New(cfg Config) *Info {
	return &Info{
		rest: rest.New(rest.Config{
			BaseUrl: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}),
	}
}

// Close is a no-op kept for symmetry with the rest of the facade's
// lifecycle methods; the REST client holds no resources to release.
func (i *Info) Close() {}

// ===== Market data =====

// AllMids retrieves mid-prices for all coins, with fallback to last
// trade price if the book is empty.
func (i *Info) AllMids(ctx context.Context, dex string) (map[string]string, error) {
	var result map[string]string
	err := i.rest.Post(ctx, "/info", map[string]any{"type": "allMids", "dex": dex}, &result)
	return result, err
}

// L2Snapshot retrieves up to 20 levels of the order book for a coin.
func (i *Info) L2Snapshot(ctx context.Context, coin string) (*L2BookSnapshot, error) {
	var result L2BookSnapshot
	err := i.rest.Post(ctx, "/info", map[string]any{"type": "l2Book", "coin": coin}, &result)
	return &result, err
}

// Meta retrieves exchange metadata for perpetuals.
func (i *Info) Meta(ctx context.Context, dex string) (*Meta, error) {
	var result Meta
	err := i.rest.Post(ctx, "/info", map[string]any{"type": "meta", "dex": dex}, &result)
	return &result, err
}

// SpotMeta retrieves exchange metadata for spot trading.
func (i *Info) SpotMeta(ctx context.Context) (*SpotMeta, error) {
	var result SpotMeta
	err := i.rest.Post(ctx, "/info", map[string]any{"type": "spotMeta"}, &result)
	return &result, err
}

// CandlesSnapshot retrieves candlestick/OHLC data for a coin and interval.
func (i *Info) CandlesSnapshot(ctx context.Context, coin, interval string, startTime, endTime int64) ([]Candle, error) {
	var result []Candle
	err := i.rest.Post(ctx, "/info", map[string]any{
		"type": "candleSnapshot",
		"req": map[string]any{
			"coin":      coin,
			"interval":  interval,
			"startTime": startTime,
			"endTime":   endTime,
		},
	}, &result)
	return result, err
}

// FundingHistory retrieves funding history for a coin.
func (i *Info) FundingHistory(ctx context.Context, coin string, startTime int64, endTime *int64) ([]FundingRecord, error) {
	req := map[string]any{"type": "fundingHistory", "coin": coin, "startTime": startTime}
	if endTime != nil {
		req["endTime"] = *endTime
	}
	var result []FundingRecord
	err := i.rest.Post(ctx, "/info", req, &result)
	return result, err
}

// ===== Account queries =====

// UserState retrieves account portfolio and position data.
func (i *Info) UserState(ctx context.Context, user common.Address, dex string) (*UserState, error) {
	var result UserState
	err := i.rest.Post(ctx, "/info", map[string]any{
		"type": "clearinghouseState",
		"user": user.Hex(),
		"dex":  dex,
	}, &result)
	return &result, err
}

// SpotUserState retrieves spot account balances. The response shape is
// intentionally left as raw JSON: spec.md scopes out fully-typed result
// objects beyond clearinghouseState, and this query's payload otherwise
// passes straight through to the caller.
func (i *Info) SpotUserState(ctx context.Context, user common.Address) (json.RawMessage, error) {
	var result json.RawMessage
	err := i.rest.Post(ctx, "/info", map[string]any{
		"type": "spotClearinghouseState",
		"user": user.Hex(),
	}, &result)
	return result, err
}

// OpenOrders retrieves a user's active orders.
func (i *Info) OpenOrders(ctx context.Context, user common.Address, dex string) ([]OpenOrder, error) {
	var result []OpenOrder
	err := i.rest.Post(ctx, "/info", map[string]any{
		"type": "openOrders",
		"user": user.Hex(),
		"dex":  dex,
	}, &result)
	return result, err
}

// UserFills retrieves a user's fills/executed trades.
func (i *Info) UserFills(ctx context.Context, user common.Address) ([]Fill, error) {
	var result []Fill
	err := i.rest.Post(ctx, "/info", map[string]any{"type": "userFills", "user": user.Hex()}, &result)
	return result, err
}

// UserFillsByTime retrieves a user's fills within a time range.
func (i *Info) UserFillsByTime(ctx context.Context, user common.Address, startTime int64, endTime *int64, aggregateByTime bool) ([]Fill, error) {
	req := map[string]any{
		"type":            "userFillsByTime",
		"user":            user.Hex(),
		"startTime":       startTime,
		"aggregateByTime": aggregateByTime,
	}
	if endTime != nil {
		req["endTime"] = *endTime
	}
	var result []Fill
	err := i.rest.Post(ctx, "/info", req, &result)
	return result, err
}

// UserFundingHistory retrieves a user's funding payment history. Raw
// JSON for the same reason as SpotUserState.
func (i *Info) UserFundingHistory(ctx context.Context, user common.Address, startTime int64, endTime *int64) (json.RawMessage, error) {
	req := map[string]any{"type": "userFunding", "user": user.Hex(), "startTime": startTime}
	if endTime != nil {
		req["endTime"] = *endTime
	}
	var result json.RawMessage
	err := i.rest.Post(ctx, "/info", req, &result)
	return result, err
}

// UserFees retrieves a user's fee tier and trading volume. Raw JSON for
// the same reason as SpotUserState.
func (i *Info) UserFees(ctx context.Context, user common.Address) (json.RawMessage, error) {
	var result json.RawMessage
	err := i.rest.Post(ctx, "/info", map[string]any{"type": "userFees", "user": user.Hex()}, &result)
	return result, err
}

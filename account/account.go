// Package account is a read-only view of a user's positions and
// auxiliary account data. Snapshot/Position back the order normalizer's
// direction/size inference for close-position intents and never cache
// across calls: each inference fetches fresh state so close-position
// operations do not race with recent fills. The remaining accessors are
// thin passthroughs for data the normalizer never touches (fills,
// funding, open orders, fee tier) but that a trading caller still needs
// to read.
package account

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hyperliquid-client/gohl/errs"
	"github.com/hyperliquid-client/gohl/info"
	"github.com/shopspring/decimal"
)

// Source is the subset of info.Info this reader needs.
type Source interface {
	UserState(ctx context.Context, user common.Address, dex string) (*info.UserState, error)
	SpotUserState(ctx context.Context, user common.Address) (json.RawMessage, error)
	OpenOrders(ctx context.Context, user common.Address, dex string) ([]info.OpenOrder, error)
	UserFills(ctx context.Context, user common.Address) ([]info.Fill, error)
	UserFillsByTime(ctx context.Context, user common.Address, startTime int64, endTime *int64, aggregateByTime bool) ([]info.Fill, error)
	UserFundingHistory(ctx context.Context, user common.Address, startTime int64, endTime *int64) (json.RawMessage, error)
	UserFees(ctx context.Context, user common.Address) (json.RawMessage, error)
}

// Reader wraps the clearinghouseState info query and the other
// per-user read endpoints.
type Reader struct {
	source Source
	dex    string
}

// New builds a Reader over source for the given dex ("" for the default).
func New(source Source, dex string) *Reader {
	return &Reader{source: source, dex: dex}
}

// Snapshot returns symbol -> signed size for every position the user
// state reports, zero-size entries included. Parsing failures on an individual szi are
// fatal (BAD_POSITION) since a corrupt snapshot cannot be trusted for
// inference.
func (r *Reader) Snapshot(ctx context.Context, user common.Address) (map[string]decimal.Decimal, error) {
	state, err := r.source.UserState(ctx, user, r.dex)
	if err != nil {
		return nil, err
	}

	out := make(map[string]decimal.Decimal, len(state.AssetPositions))
	for _, ap := range state.AssetPositions {
		szi, err := decimal.NewFromString(ap.Position.Szi)
		if err != nil {
			return nil, errs.Wrap(errs.BadPosition, fmt.Sprintf("parsing szi for %q", ap.Position.Coin), err)
		}
		out[ap.Position.Coin] = szi
	}
	return out, nil
}

// Position returns the signed size for symbol, or zero if the user has
// no position in it (spec: "zero = none" is a valid, non-error state).
func (r *Reader) Position(ctx context.Context, user common.Address, symbol string) (decimal.Decimal, error) {
	snapshot, err := r.Snapshot(ctx, user)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if szi, ok := snapshot[symbol]; ok {
		return szi, nil
	}
	return decimal.Zero, nil
}

// SpotUserState returns the user's spot balances as raw JSON.
func (r *Reader) SpotUserState(ctx context.Context, user common.Address) (json.RawMessage, error) {
	return r.source.SpotUserState(ctx, user)
}

// OpenOrders returns the user's resting orders.
func (r *Reader) OpenOrders(ctx context.Context, user common.Address) ([]info.OpenOrder, error) {
	return r.source.OpenOrders(ctx, user, r.dex)
}

// Fills returns the user's executed trades.
func (r *Reader) Fills(ctx context.Context, user common.Address) ([]info.Fill, error) {
	return r.source.UserFills(ctx, user)
}

// FillsByTime returns the user's executed trades within [startTime, endTime].
// endTime of nil means "through now".
func (r *Reader) FillsByTime(ctx context.Context, user common.Address, startTime int64, endTime *int64, aggregateByTime bool) ([]info.Fill, error) {
	return r.source.UserFillsByTime(ctx, user, startTime, endTime, aggregateByTime)
}

// FundingHistory returns the user's funding payments as raw JSON.
func (r *Reader) FundingHistory(ctx context.Context, user common.Address, startTime int64, endTime *int64) (json.RawMessage, error) {
	return r.source.UserFundingHistory(ctx, user, startTime, endTime)
}

// Fees returns the user's fee tier and trading volume as raw JSON.
func (r *Reader) Fees(ctx context.Context, user common.Address) (json.RawMessage, error) {
	return r.source.UserFees(ctx, user)
}

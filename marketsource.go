package hyperliquid

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hyperliquid-client/gohl/info"
)

// infoMarketSource adapts *info.Info to market.Source: SpotMeta on the
// real API takes no dex argument (there is one spot universe), so dex
// is accepted and ignored to satisfy the cache's uniform interface.
type infoMarketSource struct {
	info *info.Info
}

func (s infoMarketSource) Meta(ctx context.Context, dex string) (*info.Meta, error) {
	return s.info.Meta(ctx, dex)
}

func (s infoMarketSource) SpotMeta(ctx context.Context, dex string) (*info.SpotMeta, error) {
	return s.info.SpotMeta(ctx)
}

func (s infoMarketSource) AllMids(ctx context.Context, dex string) (map[string]string, error) {
	return s.info.AllMids(ctx, dex)
}

// infoAccountSource adapts *info.Info to account.Source.
type infoAccountSource struct {
	info *info.Info
}

func (s infoAccountSource) UserState(ctx context.Context, user common.Address, dex string) (*info.UserState, error) {
	return s.info.UserState(ctx, user, dex)
}

func (s infoAccountSource) SpotUserState(ctx context.Context, user common.Address) (json.RawMessage, error) {
	return s.info.SpotUserState(ctx, user)
}

func (s infoAccountSource) OpenOrders(ctx context.Context, user common.Address, dex string) ([]info.OpenOrder, error) {
	return s.info.OpenOrders(ctx, user, dex)
}

func (s infoAccountSource) UserFills(ctx context.Context, user common.Address) ([]info.Fill, error) {
	return s.info.UserFills(ctx, user)
}

func (s infoAccountSource) UserFillsByTime(ctx context.Context, user common.Address, startTime int64, endTime *int64, aggregateByTime bool) ([]info.Fill, error) {
	return s.info.UserFillsByTime(ctx, user, startTime, endTime, aggregateByTime)
}

func (s infoAccountSource) UserFundingHistory(ctx context.Context, user common.Address, startTime int64, endTime *int64) (json.RawMessage, error) {
	return s.info.UserFundingHistory(ctx, user, startTime, endTime)
}

func (s infoAccountSource) UserFees(ctx context.Context, user common.Address) (json.RawMessage, error) {
	return s.info.UserFees(ctx, user)
}

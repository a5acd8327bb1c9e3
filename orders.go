package hyperliquid

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hyperliquid-client/gohl/constants"
	"github.com/hyperliquid-client/gohl/errs"
	"github.com/hyperliquid-client/gohl/market"
	"github.com/hyperliquid-client/gohl/numeric"
	"github.com/hyperliquid-client/gohl/order"
	"github.com/shopspring/decimal"
)

// Order places a single order.
func (c *Client) Order(ctx context.Context, intent order.Intent, builder *order.BuilderInfo) (Response[BulkOrdersResponse], error) {
	return c.BulkOrders(ctx, []order.Intent{intent}, order.GroupingNA, builder)
}

// BulkOrders places a batch of orders sharing one grouping and builder
// fee, required for normalTpsl/positionTpsl groupings where the
// trigger legs must accompany their parent in one action.
func (c *Client) BulkOrders(ctx context.Context, intents []order.Intent, grouping order.Grouping, builder *order.BuilderInfo) (Response[BulkOrdersResponse], error) {
	if len(intents) == 0 {
		return Response[BulkOrdersResponse]{}, errs.New(errs.BadNumber, "at least one order is required")
	}
	if builder != nil {
		if err := validateBuilderFee(builder.F); err != nil {
			return Response[BulkOrdersResponse]{}, err
		}
	}

	action, err := c.normalizer.Normalize(ctx, c.address(), intents, grouping, builder)
	if err != nil {
		return Response[BulkOrdersResponse]{}, err
	}

	var result Response[BulkOrdersResponse]
	if err := c.postL1(ctx, "order", action, &result); err != nil {
		return Response[BulkOrdersResponse]{}, err
	}
	return result, nil
}

// MarketOpen opens a position with an aggressive IOC limit order priced
// off the current mid plus slippage.
func (c *Client) MarketOpen(ctx context.Context, symbol string, instrument market.Instrument, isBuy bool, size decimal.Decimal, slippage *decimal.Decimal) (Response[BulkOrdersResponse], error) {
	return c.Order(ctx, order.Intent{
		Instrument: instrument,
		Symbol:     symbol,
		Size:       size,
		SizeSet:    true,
		IsBuy:      &isBuy,
		Slippage:   slippage,
		OrderType:  order.OrderType{Limit: &order.LimitSpec{TIF: order.TIFImmediateOrCancel}},
	}, nil)
}

// MarketClose closes all or part of the current position in symbol. A
// nil size closes the full residual.
func (c *Client) MarketClose(ctx context.Context, symbol string, instrument market.Instrument, size *decimal.Decimal, slippage *decimal.Decimal) (Response[BulkOrdersResponse], error) {
	intent := order.Intent{
		Instrument: instrument,
		Symbol:     symbol,
		ReduceOnly: true,
		Slippage:   slippage,
		OrderType:  order.OrderType{Limit: &order.LimitSpec{TIF: order.TIFImmediateOrCancel}},
	}
	if size != nil {
		intent.Size = *size
		intent.SizeSet = true
	}
	return c.Order(ctx, intent, nil)
}

// CloseAll closes every open position on instrument with reduce-only
// IOC orders.
func (c *Client) CloseAll(ctx context.Context, instrument market.Instrument) (Response[BulkOrdersResponse], error) {
	action, err := c.normalizer.CloseAll(ctx, c.address(), instrument)
	if err != nil {
		return Response[BulkOrdersResponse]{}, err
	}
	var result Response[BulkOrdersResponse]
	if err := c.postL1(ctx, "order", action, &result); err != nil {
		return Response[BulkOrdersResponse]{}, err
	}
	return result, nil
}

// Cancel cancels a single resting order by asset and exchange order id.
func (c *Client) Cancel(ctx context.Context, symbol string, instrument market.Instrument, oid int) (Response[CancelResponse], error) {
	return c.BulkCancel(ctx, []CancelRequest{{Symbol: symbol, Instrument: instrument, Oid: oid}})
}

// CancelRequest identifies one order to cancel by asset symbol + oid.
type CancelRequest struct {
	Symbol     string
	Instrument market.Instrument
	Oid        int
}

// BulkCancel cancels a batch of resting orders.
func (c *Client) BulkCancel(ctx context.Context, cancels []CancelRequest) (Response[CancelResponse], error) {
	if len(cancels) == 0 {
		return Response[CancelResponse]{}, errs.New(errs.BadNumber, "at least one cancel is required")
	}
	wires := make([]order.CancelWire, len(cancels))
	for i, cr := range cancels {
		asset, err := c.cache.ResolveAsset(ctx, cr.Symbol, cr.Instrument)
		if err != nil {
			return Response[CancelResponse]{}, fmt.Errorf("cancel %d: %w", i, err)
		}
		wires[i] = order.CancelWire{Asset: asset.ID, Oid: cr.Oid}
	}

	action := order.NewCancelAction(wires)
	var result Response[CancelResponse]
	if err := c.postL1(ctx, "cancel", action, &result); err != nil {
		return Response[CancelResponse]{}, err
	}
	return result, nil
}

// CancelByCloidRequest identifies one order to cancel by asset symbol +
// client order id.
type CancelByCloidRequest struct {
	Symbol     string
	Instrument market.Instrument
	Cloid      string
}

// BulkCancelByCloid cancels a batch of resting orders by client id.
func (c *Client) BulkCancelByCloid(ctx context.Context, cancels []CancelByCloidRequest) (Response[CancelResponse], error) {
	if len(cancels) == 0 {
		return Response[CancelResponse]{}, errs.New(errs.BadNumber, "at least one cancel is required")
	}
	wires := make([]order.CancelByCloidWire, len(cancels))
	for i, cr := range cancels {
		asset, err := c.cache.ResolveAsset(ctx, cr.Symbol, cr.Instrument)
		if err != nil {
			return Response[CancelResponse]{}, fmt.Errorf("cancel %d: %w", i, err)
		}
		wires[i] = order.CancelByCloidWire{Asset: asset.ID, Cloid: cr.Cloid}
	}

	action := order.NewCancelByCloidAction(wires)
	var result Response[CancelResponse]
	if err := c.postL1(ctx, "cancelByCloid", action, &result); err != nil {
		return Response[CancelResponse]{}, err
	}
	return result, nil
}

// ScheduleCancel schedules (or, with a nil time, clears) a dead-man's
// switch that cancels all of this wallet's resting orders at t.
func (c *Client) ScheduleCancel(ctx context.Context, t *time.Time) error {
	action := map[string]any{"type": "scheduleCancel"}
	if t != nil {
		action["time"] = t.UnixMilli()
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "scheduleCancel", action, &result)
}

// UpdateLeverage changes the leverage for an asset.
func (c *Client) UpdateLeverage(ctx context.Context, symbol string, instrument market.Instrument, leverage int, isCross bool) error {
	asset, err := c.cache.ResolveAsset(ctx, symbol, instrument)
	if err != nil {
		return err
	}
	action := map[string]any{
		"type":     "updateLeverage",
		"asset":    asset.ID,
		"isCross":  isCross,
		"leverage": leverage,
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "updateLeverage", action, &result)
}

// UpdateIsolatedMargin adds (or, for a negative delta, removes) margin
// from an isolated position, in USD.
func (c *Client) UpdateIsolatedMargin(ctx context.Context, symbol string, instrument market.Instrument, deltaUsd decimal.Decimal) error {
	asset, err := c.cache.ResolveAsset(ctx, symbol, instrument)
	if err != nil {
		return err
	}
	action := map[string]any{
		"type":  "updateIsolatedMargin",
		"asset": asset.ID,
		"isBuy": true,
		"ntli":  numeric.ToUsdInt(deltaUsd),
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "updateIsolatedMargin", action, &result)
}

// ModifyOrder replaces the resting order identified by oid with a new
// spec, keeping the same order id.
func (c *Client) ModifyOrder(ctx context.Context, oid int, intent order.Intent) error {
	wire, err := c.normalizeSingle(ctx, intent)
	if err != nil {
		return err
	}
	action := order.NewModifyAction(oid, wire)
	var result Response[json.RawMessage]
	return c.postL1(ctx, "modify", action, &result)
}

// ModifyRequest pairs an existing order id with its replacement intent.
type ModifyRequest struct {
	Oid    int
	Intent order.Intent
}

// BatchModifyOrders replaces a batch of resting orders in one action.
func (c *Client) BatchModifyOrders(ctx context.Context, modifies []ModifyRequest) error {
	if len(modifies) == 0 {
		return errs.New(errs.BadNumber, "at least one modify is required")
	}
	wires := make([]order.ModifyWire, len(modifies))
	for i, m := range modifies {
		wire, err := c.normalizeSingle(ctx, m.Intent)
		if err != nil {
			return fmt.Errorf("modify %d: %w", i, err)
		}
		wires[i] = order.ModifyWire{Oid: m.Oid, Order: wire}
	}
	action := order.NewBatchModifyAction(wires)
	var result Response[json.RawMessage]
	return c.postL1(ctx, "batchModify", action, &result)
}

// normalizeSingle runs one intent through the normalizer and returns
// its wire form, for the modify paths which need a bare Wire rather
// than a full order Action.
func (c *Client) normalizeSingle(ctx context.Context, intent order.Intent) (order.Wire, error) {
	action, err := c.normalizer.Normalize(ctx, c.address(), []order.Intent{intent}, order.GroupingNA, nil)
	if err != nil {
		return order.Wire{}, err
	}
	return action.Orders[0], nil
}

func validateBuilderFee(f int) error {
	if f < 0 || f > constants.MaxBuilderFee {
		return errs.New(errs.BadBuilderFee, fmt.Sprintf("builder fee %d out of range [0, %d]", f, constants.MaxBuilderFee))
	}
	return nil
}

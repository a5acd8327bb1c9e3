// Package order implements the order intent normalizer (spec component
// E): validation, asset resolution, inference, numeric formatting, and translation to
// the wire shape the signer consumes.
package order

import (
	"github.com/hyperliquid-client/gohl/market"
	"github.com/hyperliquid-client/gohl/types"
	"github.com/shopspring/decimal"
)

// TIF is a time-in-force tag for limit orders.
type TIF string

const (
	TIFGoodTilCancel TIF = "Gtc"
	TIFImmediateOrCancel TIF = "Ioc"
	TIFAddLiquidityOnly TIF = "Alo"
)

// TriggerDirection distinguishes take-profit from stop-loss triggers.
type TriggerDirection string

const (
	TakeProfit TriggerDirection = "tp"
	StopLoss   TriggerDirection = "sl"
)

// Grouping is the envelope tag on a bulk order action.
type Grouping string

const (
	GroupingNA           Grouping = "na"
	GroupingNormalTPSL   Grouping = "normalTpsl"
	GroupingPositionTPSL Grouping = "positionTpsl"
)

// LimitSpec is the Limit arm of the OrderType sum type.
type LimitSpec struct {
	TIF TIF
}

// TriggerSpec is the Trigger arm of the OrderType sum type. TriggerPx is
// nil until either the caller supplies one or inference substitutes the
// latest mid.
type TriggerSpec struct {
	TriggerPx *decimal.Decimal
	IsMarket  bool
	Direction TriggerDirection
}

// OrderType is a two-arm sum type: exactly one of Limit/Trigger is set.
type OrderType struct {
	Limit   *LimitSpec
	Trigger *TriggerSpec
}

// Intent is the semantic, pre-normalization order input.
type Intent struct {
	Instrument market.Instrument
	Symbol     string

	// Size is the requested size. SizeSet distinguishes an explicit
	// "0" (legal for reduce-only triggers on the entire residual
	// position) from "not yet known", which makes inference take the
	// full residual position size (close-position and position-TPSL
	// entries).
	Size    decimal.Decimal
	SizeSet bool

	// IsBuy is nil when direction must be inferred (close-position
	// placeholders, position-TPSL bulk entries).
	IsBuy *bool

	// LimitPrice is nil for a market-open/close-market placeholder
	// (synthesized from slippage) and required for a close-limit
	// placeholder.
	LimitPrice *decimal.Decimal

	OrderType  OrderType
	ReduceOnly bool
	Cloid      *types.Cloid

	// Slippage overrides the normalizer's default for this intent's
	// slippage-synthesized price, if set.
	Slippage *decimal.Decimal
}

// WireLimit is the {tif} arm of a wire order's type object.
type WireLimit struct {
	TIF string `json:"tif" msgpack:"tif"`
}

// WireTrigger is the {triggerPx, isMarket, tpsl} arm of a wire order's
// type object.
type WireTrigger struct {
	TriggerPx string `json:"triggerPx" msgpack:"triggerPx"`
	IsMarket  bool   `json:"isMarket" msgpack:"isMarket"`
	TPSL      string `json:"tpsl" msgpack:"tpsl"`
}

// WireOrderType carries exactly one inhabited branch.
type WireOrderType struct {
	Limit   *WireLimit   `json:"limit,omitempty" msgpack:"limit,omitempty"`
	Trigger *WireTrigger `json:"trigger,omitempty" msgpack:"trigger,omitempty"`
}

// Wire is the post-normalization order form the signer accepts.
type Wire struct {
	Asset      int           `json:"a" msgpack:"a"`
	IsBuy      bool          `json:"b" msgpack:"b"`
	Size       string        `json:"s" msgpack:"s"`
	LimitPx    string        `json:"p" msgpack:"p"`
	ReduceOnly bool          `json:"r" msgpack:"r"`
	Type       WireOrderType `json:"t" msgpack:"t"`
	Cloid      *string       `json:"c,omitempty" msgpack:"c,omitempty"`
}

// BuilderInfo is the optional builder-fee attachment on an order action.
type BuilderInfo struct {
	B string `json:"b" msgpack:"b"`
	F int    `json:"f" msgpack:"f"`
}

// Action is the L1 "order" action envelope.
type Action struct {
	Type     string       `json:"type" msgpack:"type"`
	Orders   []Wire       `json:"orders" msgpack:"orders"`
	Grouping Grouping     `json:"grouping" msgpack:"grouping"`
	Builder  *BuilderInfo `json:"builder,omitempty" msgpack:"builder,omitempty"`
}

// NewAction builds the order action envelope for a set of already
// normalized wires.
func NewAction(wires []Wire, grouping Grouping, builder *BuilderInfo) Action {
	return Action{Type: "order", Orders: wires, Grouping: grouping, Builder: builder}
}

// CancelWire identifies an order to cancel by asset + exchange-assigned
// order id.
type CancelWire struct {
	Asset int `json:"a" msgpack:"a"`
	Oid   int `json:"o" msgpack:"o"`
}

// CancelAction is the L1 "cancel" action envelope.
type CancelAction struct {
	Type    string       `json:"type" msgpack:"type"`
	Cancels []CancelWire `json:"cancels" msgpack:"cancels"`
}

func NewCancelAction(cancels []CancelWire) CancelAction {
	return CancelAction{Type: "cancel", Cancels: cancels}
}

// CancelByCloidWire identifies an order to cancel by asset + client id.
type CancelByCloidWire struct {
	Asset int    `json:"asset" msgpack:"asset"`
	Cloid string `json:"cloid" msgpack:"cloid"`
}

// CancelByCloidAction is the L1 "cancelByCloid" action envelope.
type CancelByCloidAction struct {
	Type    string              `json:"type" msgpack:"type"`
	Cancels []CancelByCloidWire `json:"cancels" msgpack:"cancels"`
}

func NewCancelByCloidAction(cancels []CancelByCloidWire) CancelByCloidAction {
	return CancelByCloidAction{Type: "cancelByCloid", Cancels: cancels}
}

// ModifyWire pairs an existing order id with its replacement wire.
type ModifyWire struct {
	Oid   int  `json:"oid" msgpack:"oid"`
	Order Wire `json:"order" msgpack:"order"`
}

// ModifyAction is the L1 "modify" action envelope (single order).
type ModifyAction struct {
	Type  string     `json:"type" msgpack:"type"`
	Oid   int        `json:"oid" msgpack:"oid"`
	Order Wire       `json:"order" msgpack:"order"`
}

func NewModifyAction(oid int, w Wire) ModifyAction {
	return ModifyAction{Type: "modify", Oid: oid, Order: w}
}

// BatchModifyAction is the L1 "batchModify" action envelope.
type BatchModifyAction struct {
	Type     string       `json:"type" msgpack:"type"`
	Modifies []ModifyWire `json:"modifies" msgpack:"modifies"`
}

func NewBatchModifyAction(modifies []ModifyWire) BatchModifyAction {
	return BatchModifyAction{Type: "batchModify", Modifies: modifies}
}

func isLimit(t OrderType, tif TIF) bool {
	return t.Limit != nil && t.Limit.TIF == tif
}

package order

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hyperliquid-client/gohl/account"
	"github.com/hyperliquid-client/gohl/errs"
	"github.com/hyperliquid-client/gohl/market"
	"github.com/hyperliquid-client/gohl/numeric"
	"github.com/shopspring/decimal"
)

// Normalizer runs the pipeline (sanitize, resolve asset, infer,
// translate with numeric formatting) that turns an Intent into a
// signer-ready Wire. It
// consults the market cache for asset ids/szDecimals/mids and the
// account reader for position-based inference (close-position and
// position-TPSL intents).
type Normalizer struct {
	cache           *market.Cache
	account         *account.Reader
	defaultSlippage decimal.Decimal
}

// New builds a Normalizer. defaultSlippage is applied to market-open and
// market-close intents that don't set their own Slippage.
func New(cache *market.Cache, acct *account.Reader, defaultSlippage decimal.Decimal) *Normalizer {
	return &Normalizer{cache: cache, account: acct, defaultSlippage: defaultSlippage}
}

// Normalize converts a batch of intents into an order action. All
// intents in a batch share a grouping and (optional) builder fee, as
// required for TPSL groupings where the trigger orders must accompany
// their parent in the same action.
func (n *Normalizer) Normalize(ctx context.Context, user common.Address, intents []Intent, grouping Grouping, builder *BuilderInfo) (Action, error) {
	wires := make([]Wire, 0, len(intents))
	for i, intent := range intents {
		w, err := n.normalizeOne(ctx, user, intent)
		if err != nil {
			return Action{}, fmt.Errorf("order %d: %w", i, err)
		}
		wires = append(wires, w)
	}
	return NewAction(wires, grouping, builder), nil
}

// CloseAll builds a close-everything batch: one reduce-only, opposite-
// direction, market intent per open position, sized to the full
// residual. Positions are read once from a single snapshot so the whole
// batch is consistent with itself.
func (n *Normalizer) CloseAll(ctx context.Context, user common.Address, instrument market.Instrument) (Action, error) {
	snapshot, err := n.account.Snapshot(ctx, user)
	if err != nil {
		return Action{}, err
	}

	intents := make([]Intent, 0, len(snapshot))
	for symbol, szi := range snapshot {
		if szi.IsZero() {
			continue
		}
		isBuy := szi.IsNegative()
		intents = append(intents, Intent{
			Instrument: instrument,
			Symbol:     symbol,
			Size:       szi.Abs(),
			SizeSet:    true,
			IsBuy:      &isBuy,
			ReduceOnly: true,
			OrderType:  OrderType{Limit: &LimitSpec{TIF: TIFImmediateOrCancel}},
		})
	}

	return n.Normalize(ctx, user, intents, GroupingNA, nil)
}

// normalizeOne runs sanitize -> resolve asset -> infer -> translate
// (which formats price and size) for a single intent.
func (n *Normalizer) normalizeOne(ctx context.Context, user common.Address, intent Intent) (Wire, error) {
	if err := sanitize(intent); err != nil {
		return Wire{}, err
	}

	asset, err := n.cache.ResolveAsset(ctx, intent.Symbol, intent.Instrument)
	if err != nil {
		return Wire{}, err
	}

	intent, err = n.infer(ctx, user, intent, asset)
	if err != nil {
		return Wire{}, err
	}

	return n.translate(ctx, intent, asset)
}

// sanitize rejects intents that are self-contradictory before any
// network call is made.
func sanitize(intent Intent) error {
	if intent.Symbol == "" {
		return errs.New(errs.UnknownSymbol, "order intent has no symbol")
	}
	if intent.OrderType.Limit == nil && intent.OrderType.Trigger == nil {
		return errs.New(errs.BadNumber, "order intent has neither a limit nor a trigger spec")
	}
	if intent.OrderType.Limit != nil && intent.OrderType.Trigger != nil {
		return errs.New(errs.BadNumber, "order intent sets both limit and trigger specs")
	}
	if intent.SizeSet && intent.Size.IsNegative() {
		return errs.New(errs.BadNumber, "order size must not be negative")
	}
	return nil
}

// infer fills in direction, size, and price fields that the intent
// left unset: close-position intents (IsBuy/Size unset)
// read the opposite-of-position direction and full residual size from
// the account snapshot; market-priced intents (LimitPrice unset)
// synthesize a slippage-adjusted limit price from the latest mid.
func (n *Normalizer) infer(ctx context.Context, user common.Address, intent Intent, asset market.Asset) (Intent, error) {
	if intent.IsBuy == nil || !intent.SizeSet {
		szi, err := n.account.Position(ctx, user, asset.Symbol)
		if err != nil {
			return intent, err
		}
		if intent.IsBuy == nil {
			isBuy := szi.IsNegative()
			intent.IsBuy = &isBuy
		}
		if !intent.SizeSet {
			intent.Size = szi.Abs()
			intent.SizeSet = true
		}
	}

	needsMid := intent.LimitPrice == nil
	needsMid = needsMid || (intent.OrderType.Trigger != nil && intent.OrderType.Trigger.TriggerPx == nil)
	var mid decimal.Decimal
	if needsMid {
		m, err := n.cache.MidOrError(ctx, asset.Symbol)
		if err != nil {
			return intent, err
		}
		mid = m
	}

	// Every order, trigger or limit, carries its own limit price on the
	// wire ("p"), separate from a trigger's activation price. A market
	// (IsMarket) trigger's limit price is slippage-adjusted the same as
	// a plain market order. Any intent whose LimitPrice is unset,
	// resting limit triggers included, gets the slippage-adjusted price.
	if intent.LimitPrice == nil {
		slippage := n.defaultSlippage
		if intent.Slippage != nil {
			slippage = *intent.Slippage
		}
		price := slippagePrice(mid, slippage, *intent.IsBuy)
		intent.LimitPrice = &price
	}

	if intent.OrderType.Trigger != nil && intent.OrderType.Trigger.TriggerPx == nil {
		trigger := *intent.OrderType.Trigger
		trigger.TriggerPx = &mid
		intent.OrderType.Trigger = &trigger
	}

	return intent, nil
}

// slippagePrice nudges mid away from the book to guarantee a market-
// style fill: up for a buy, down for a sell.
func slippagePrice(mid, slippage decimal.Decimal, isBuy bool) decimal.Decimal {
	factor := decimal.NewFromInt(1)
	if isBuy {
		factor = factor.Add(slippage)
	} else {
		factor = factor.Sub(slippage)
	}
	return mid.Mul(factor)
}

// translate formats the now-fully-determined intent's numeric fields
// and assembles the wire struct.
func (n *Normalizer) translate(ctx context.Context, intent Intent, asset market.Asset) (Wire, error) {
	sizeStr := numeric.FormatSize(intent.Size, asset.SzDecimals)

	priceStr, err := numeric.FormatPrice(*intent.LimitPrice, asset.SzDecimals, asset.Instrument == market.Spot)
	if err != nil {
		return Wire{}, err
	}

	wireType, err := translateOrderType(intent.OrderType, asset)
	if err != nil {
		return Wire{}, err
	}

	w := Wire{
		Asset:      asset.ID,
		IsBuy:      *intent.IsBuy,
		Size:       sizeStr,
		LimitPx:    priceStr,
		ReduceOnly: intent.ReduceOnly,
		Type:       wireType,
	}
	if intent.Cloid != nil {
		hex := intent.Cloid.Hex()
		w.Cloid = &hex
	}
	return w, nil
}

func translateOrderType(t OrderType, asset market.Asset) (WireOrderType, error) {
	if t.Limit != nil {
		return WireOrderType{Limit: &WireLimit{TIF: string(t.Limit.TIF)}}, nil
	}

	trig := t.Trigger
	triggerPxStr, err := numeric.FormatPrice(*trig.TriggerPx, asset.SzDecimals, asset.Instrument == market.Spot)
	if err != nil {
		return WireOrderType{}, err
	}
	return WireOrderType{Trigger: &WireTrigger{
		TriggerPx: triggerPxStr,
		IsMarket:  trig.IsMarket,
		TPSL:      string(trig.Direction),
	}}, nil
}

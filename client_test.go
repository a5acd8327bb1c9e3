package hyperliquid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyperliquid-client/gohl/market"
	"github.com/hyperliquid-client/gohl/order"
	"github.com/hyperliquid-client/gohl/wallet"
	"github.com/shopspring/decimal"
)

const testPrivateKeyHex = "1111111111111111111111111111111111111111111111111111111111111111"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	w, err := wallet.New("", "", testPrivateKeyHex)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}

	c, err := New(Config{BaseURL: server.URL, Wallet: w})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, server
}

func metaHandler(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	json.NewDecoder(r.Body).Decode(&body)

	switch body["type"] {
	case "meta":
		json.NewEncoder(w).Encode(map[string]any{
			"universe": []map[string]any{
				{"name": "ETH", "szDecimals": 4},
			},
		})
	case "spotMeta":
		json.NewEncoder(w).Encode(map[string]any{"universe": []any{}, "tokens": []any{}})
	case "allMids":
		json.NewEncoder(w).Encode(map[string]string{"ETH": "3000.0"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestClient_OrderRoundTrip(t *testing.T) {
	var sawExchangeRequest map[string]any

	c, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/info" {
			metaHandler(w, r)
			return
		}

		json.NewDecoder(r.Body).Decode(&sawExchangeRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"response": map[string]any{
				"type": "order",
				"data": map[string]any{
					"statuses": []map[string]any{
						{"resting": map[string]any{"oid": 7}},
					},
				},
			},
		})
	})
	defer server.Close()
	defer c.Close()

	isBuy := true
	price := decimal.RequireFromString("2900")
	resp, err := c.Order(context.Background(), order.Intent{
		Instrument: market.Perp,
		Symbol:     "ETH",
		Size:       decimal.RequireFromString("1"),
		SizeSet:    true,
		IsBuy:      &isBuy,
		LimitPrice: &price,
		OrderType:  order.OrderType{Limit: &order.LimitSpec{TIF: order.TIFGoodTilCancel}},
	}, nil)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if !resp.IsOK() {
		t.Fatalf("expected ok response, got %+v", resp)
	}
	if len(*resp.Data) != 1 || (*resp.Data)[0].Resting == nil || (*resp.Data)[0].Resting.Oid != 7 {
		t.Fatalf("unexpected order statuses: %+v", resp.Data)
	}

	action, _ := sawExchangeRequest["action"].(map[string]any)
	if action["type"] != "order" {
		t.Fatalf("expected order action, got %+v", sawExchangeRequest)
	}
	if _, hasVault := sawExchangeRequest["vaultAddress"]; hasVault {
		t.Fatal("expected no vaultAddress when client has none configured")
	}
}

func TestClient_BulkOrdersRejectsEmptyBatch(t *testing.T) {
	c, server := newTestClient(t, metaHandler)
	defer server.Close()
	defer c.Close()

	_, err := c.BulkOrders(context.Background(), nil, order.GroupingNA, nil)
	if err == nil {
		t.Fatal("expected error for empty order batch")
	}
}

func TestClient_BulkOrdersRejectsOutOfRangeBuilderFee(t *testing.T) {
	c, server := newTestClient(t, metaHandler)
	defer server.Close()
	defer c.Close()

	isBuy := true
	price := decimal.RequireFromString("1")
	_, err := c.BulkOrders(context.Background(), []order.Intent{{
		Instrument: market.Perp,
		Symbol:     "ETH",
		Size:       decimal.RequireFromString("1"),
		SizeSet:    true,
		IsBuy:      &isBuy,
		LimitPrice: &price,
		OrderType:  order.OrderType{Limit: &order.LimitSpec{TIF: order.TIFGoodTilCancel}},
	}}, order.GroupingNA, &order.BuilderInfo{F: 10_000_000})
	if err == nil {
		t.Fatal("expected error for builder fee above the max")
	}
}

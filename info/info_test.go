package info

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var testUser = common.HexToAddress("0x000000000000000000000000000000000000aa")

func newTestInfo(t *testing.T, handler http.HandlerFunc) (*Info, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	return New(Config{BaseURL: server.URL}), server
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	return body
}

func TestAllMidsSuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["type"] != "allMids" {
			t.Fatalf("expected allMids request, got %+v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"ETH": "3000.5"})
	})
	defer server.Close()

	mids, err := info.AllMids(context.Background(), "")
	if err != nil {
		t.Fatalf("AllMids: %v", err)
	}
	if mids["ETH"] != "3000.5" {
		t.Fatalf("expected ETH mid 3000.5, got %+v", mids)
	}
}

func TestAllMidsError(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	if _, err := info.AllMids(context.Background(), ""); err == nil {
		t.Fatal("expected error for 5xx response")
	}
}

func TestL2SnapshotSuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["coin"] != "ETH" {
			t.Fatalf("expected coin ETH, got %+v", body)
		}
		json.NewEncoder(w).Encode(L2BookSnapshot{
			Coin: "ETH",
			Levels: [2][]L2Level{
				{{Px: "3000", Sz: "1", N: 2}},
				{{Px: "3001", Sz: "1", N: 1}},
			},
			Time: 123,
		})
	})
	defer server.Close()

	snap, err := info.L2Snapshot(context.Background(), "ETH")
	if err != nil {
		t.Fatalf("L2Snapshot: %v", err)
	}
	if snap.Coin != "ETH" || len(snap.Levels[0]) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestMetaSuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Meta{Universe: []AssetInfo{{Name: "ETH", SzDecimals: 4}}})
	})
	defer server.Close()

	meta, err := info.Meta(context.Background(), "")
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if len(meta.Universe) != 1 || meta.Universe[0].Name != "ETH" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestSpotMetaSuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["type"] != "spotMeta" {
			t.Fatalf("expected spotMeta request, got %+v", body)
		}
		json.NewEncoder(w).Encode(SpotMeta{Universe: []SpotAssetInfo{{Name: "PURR/USDC"}}})
	})
	defer server.Close()

	meta, err := info.SpotMeta(context.Background())
	if err != nil {
		t.Fatalf("SpotMeta: %v", err)
	}
	if len(meta.Universe) != 1 {
		t.Fatalf("unexpected spot meta: %+v", meta)
	}
}

func TestUserStateSuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["type"] != "clearinghouseState" {
			t.Fatalf("expected clearinghouseState request, got %+v", body)
		}
		if body["user"] != testUser.Hex() {
			t.Fatalf("expected user %s, got %+v", testUser.Hex(), body["user"])
		}
		json.NewEncoder(w).Encode(UserState{Withdrawable: "100.0"})
	})
	defer server.Close()

	state, err := info.UserState(context.Background(), testUser, "")
	if err != nil {
		t.Fatalf("UserState: %v", err)
	}
	if state.Withdrawable != "100.0" {
		t.Fatalf("unexpected user state: %+v", state)
	}
}

func TestSpotUserStateSuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"balances":[{"coin":"USDC","total":"500"}]}`))
	})
	defer server.Close()

	raw, err := info.SpotUserState(context.Background(), testUser)
	if err != nil {
		t.Fatalf("SpotUserState: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("expected non-empty raw response")
	}
}

func TestOpenOrdersSuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]OpenOrder{{Coin: "ETH", Oid: 1, Sz: "1", LimitPx: "3000"}})
	})
	defer server.Close()

	orders, err := info.OpenOrders(context.Background(), testUser, "")
	if err != nil {
		t.Fatalf("OpenOrders: %v", err)
	}
	if len(orders) != 1 || orders[0].Oid != 1 {
		t.Fatalf("unexpected open orders: %+v", orders)
	}
}

func TestUserFillsSuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Fill{{Coin: "ETH", Oid: 2, Sz: "1", Px: "3000"}})
	})
	defer server.Close()

	fills, err := info.UserFills(context.Background(), testUser)
	if err != nil {
		t.Fatalf("UserFills: %v", err)
	}
	if len(fills) != 1 || fills[0].Oid != 2 {
		t.Fatalf("unexpected fills: %+v", fills)
	}
}

func TestUserFillsByTimeSuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["type"] != "userFillsByTime" {
			t.Fatalf("expected userFillsByTime request, got %+v", body)
		}
		if _, hasEnd := body["endTime"]; hasEnd {
			t.Fatal("expected no endTime when nil was passed")
		}
		json.NewEncoder(w).Encode([]Fill{{Coin: "ETH", Oid: 3}})
	})
	defer server.Close()

	fills, err := info.UserFillsByTime(context.Background(), testUser, 1000, nil, true)
	if err != nil {
		t.Fatalf("UserFillsByTime: %v", err)
	}
	if len(fills) != 1 {
		t.Fatalf("unexpected fills: %+v", fills)
	}
}

func TestFundingHistorySuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]FundingRecord{{Coin: "ETH", FundingRate: "0.0001"}})
	})
	defer server.Close()

	records, err := info.FundingHistory(context.Background(), "ETH", 1000, nil)
	if err != nil {
		t.Fatalf("FundingHistory: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestUserFundingHistorySuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"time":1000,"delta":{"coin":"ETH"}}]`))
	})
	defer server.Close()

	raw, err := info.UserFundingHistory(context.Background(), testUser, 1000, nil)
	if err != nil {
		t.Fatalf("UserFundingHistory: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("expected non-empty raw response")
	}
}

func TestCandlesSnapshotSuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		req, _ := body["req"].(map[string]any)
		if req["coin"] != "ETH" || req["interval"] != "1m" {
			t.Fatalf("unexpected candle request: %+v", body)
		}
		json.NewEncoder(w).Encode([]Candle{{T: 1000, O: "3000", C: "3010"}})
	})
	defer server.Close()

	candles, err := info.CandlesSnapshot(context.Background(), "ETH", "1m", 0, 1000)
	if err != nil {
		t.Fatalf("CandlesSnapshot: %v", err)
	}
	if len(candles) != 1 {
		t.Fatalf("unexpected candles: %+v", candles)
	}
}

func TestUserFeesSuccess(t *testing.T) {
	info, server := newTestInfo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"userAddRate":"0.0004"}`))
	})
	defer server.Close()

	raw, err := info.UserFees(context.Background(), testUser)
	if err != nil {
		t.Fatalf("UserFees: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("expected non-empty raw response")
	}
}

func TestClose_NoPanic(t *testing.T) {
	info := New(Config{BaseURL: "http://localhost"})
	info.Close()
}

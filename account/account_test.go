package account

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hyperliquid-client/gohl/errs"
	"github.com/hyperliquid-client/gohl/info"
)

type stubSource struct {
	state *info.UserState
	err   error
}

func (s *stubSource) UserState(ctx context.Context, user common.Address, dex string) (*info.UserState, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.state, nil
}

func (s *stubSource) SpotUserState(ctx context.Context, user common.Address) (json.RawMessage, error) {
	return nil, nil
}

func (s *stubSource) OpenOrders(ctx context.Context, user common.Address, dex string) ([]info.OpenOrder, error) {
	return nil, nil
}

func (s *stubSource) UserFills(ctx context.Context, user common.Address) ([]info.Fill, error) {
	return nil, nil
}

func (s *stubSource) UserFillsByTime(ctx context.Context, user common.Address, startTime int64, endTime *int64, aggregateByTime bool) ([]info.Fill, error) {
	return nil, nil
}

func (s *stubSource) UserFundingHistory(ctx context.Context, user common.Address, startTime int64, endTime *int64) (json.RawMessage, error) {
	return nil, nil
}

func (s *stubSource) UserFees(ctx context.Context, user common.Address) (json.RawMessage, error) {
	return nil, nil
}

var testUser = common.HexToAddress("0x000000000000000000000000000000000000aa")

func TestPosition_Found(t *testing.T) {
	r := New(&stubSource{state: &info.UserState{
		AssetPositions: []info.AssetPosition{
			{Position: info.Position{Coin: "ETH", Szi: "-0.0335"}},
		},
	}}, "")

	szi, err := r.Position(context.Background(), testUser, "ETH")
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if szi.String() != "-0.0335" {
		t.Fatalf("got %s", szi.String())
	}
}

func TestPosition_AbsentIsZero(t *testing.T) {
	r := New(&stubSource{state: &info.UserState{}}, "")

	szi, err := r.Position(context.Background(), testUser, "ETH")
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if !szi.IsZero() {
		t.Fatalf("expected zero, got %s", szi.String())
	}
}

func TestSnapshot_BadPosition(t *testing.T) {
	r := New(&stubSource{state: &info.UserState{
		AssetPositions: []info.AssetPosition{
			{Position: info.Position{Coin: "ETH", Szi: "not-a-number"}},
		},
	}}, "")

	_, err := r.Snapshot(context.Background(), testUser)
	if !errs.Is(err, errs.BadPosition) {
		t.Fatalf("expected BAD_POSITION, got %v", err)
	}
}

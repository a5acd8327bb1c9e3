package signer

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/hyperliquid-client/gohl/wallet"
)

type noopAction struct {
	Type string `msgpack:"type"`
}

func testWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.New("", "", "0000000000000000000000000000000000000000000000000000000000000001")
	if err != nil {
		t.Fatalf("wallet.New: %v", err)
	}
	return w
}

func TestHashAction_Deterministic(t *testing.T) {
	action := noopAction{Type: "noop"}

	h1, err := HashAction(action, 1, nil, nil)
	if err != nil {
		t.Fatalf("HashAction: %v", err)
	}
	h2, err := HashAction(action, 1, nil, nil)
	if err != nil {
		t.Fatalf("HashAction: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected identical digests for identical inputs, got %s vs %s", h1.Hex(), h2.Hex())
	}
}

func TestHashAction_ExpiresAfterAlwaysWritesFlag(t *testing.T) {
	action := noopAction{Type: "noop"}
	noExpiry, err := HashAction(action, 1, nil, nil)
	if err != nil {
		t.Fatalf("HashAction: %v", err)
	}

	expiry := uint64(1_000)
	withExpiry, err := HashAction(action, 1, nil, &expiry)
	if err != nil {
		t.Fatalf("HashAction: %v", err)
	}

	if noExpiry == withExpiry {
		t.Fatal("expected digest to change when expiresAfter is present")
	}

	zeroExpiry := uint64(0)
	withZeroExpiry, err := HashAction(action, 1, nil, &zeroExpiry)
	if err != nil {
		t.Fatalf("HashAction: %v", err)
	}
	// A present-but-zero expiry must still differ from an absent expiry:
	// the hasExpires flag byte (0x01 vs 0x00) must always be written,
	// never inferred from the value itself.
	if noExpiry == withZeroExpiry {
		t.Fatal("expected digest with an explicit zero expiry to differ from no expiry at all")
	}
}

func TestHashAction_VaultPresenceChangesDigest(t *testing.T) {
	action := noopAction{Type: "noop"}
	noVault, err := HashAction(action, 1, nil, nil)
	if err != nil {
		t.Fatalf("HashAction: %v", err)
	}

	vault := common.HexToAddress("0x000000000000000000000000000000000000aa")
	withVault, err := HashAction(action, 1, &vault, nil)
	if err != nil {
		t.Fatalf("HashAction: %v", err)
	}

	if noVault == withVault {
		t.Fatal("expected digest to change when a vault address is present")
	}
}

func TestSignL1Action_Deterministic(t *testing.T) {
	s := New(testWallet(t), true)
	action := noopAction{Type: "noop"}

	sig1, err := s.SignL1Action(action, 1, nil, nil)
	if err != nil {
		t.Fatalf("SignL1Action: %v", err)
	}
	sig2, err := s.SignL1Action(action, 1, nil, nil)
	if err != nil {
		t.Fatalf("SignL1Action: %v", err)
	}

	if sig1 != sig2 {
		t.Fatalf("expected deterministic signature, got %s vs %s", sig1, sig2)
	}
	if sig1.V != 27 && sig1.V != 28 {
		t.Fatalf("expected V in {27,28}, got %d", sig1.V)
	}
}

func TestSignL1Action_MainnetVsTestnetDiffer(t *testing.T) {
	w := testWallet(t)
	action := noopAction{Type: "noop"}

	mainnetSig, err := New(w, true).SignL1Action(action, 1, nil, nil)
	if err != nil {
		t.Fatalf("SignL1Action: %v", err)
	}
	testnetSig, err := New(w, false).SignL1Action(action, 1, nil, nil)
	if err != nil {
		t.Fatalf("SignL1Action: %v", err)
	}

	if mainnetSig == testnetSig {
		t.Fatal("expected mainnet and testnet signatures to differ (different phantom-agent source)")
	}
}

func TestSignUserAction_Deterministic(t *testing.T) {
	s := New(testWallet(t), true)
	fields := []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": "Mainnet",
		"destination":      "0x000000000000000000000000000000000000aa",
		"amount":           "1.5",
		"time":             uint64(1),
	}

	sig1, err := s.SignUserAction("HyperliquidTransaction:UsdSend", fields, message)
	if err != nil {
		t.Fatalf("SignUserAction: %v", err)
	}
	sig2, err := s.SignUserAction("HyperliquidTransaction:UsdSend", fields, message)
	if err != nil {
		t.Fatalf("SignUserAction: %v", err)
	}

	if sig1 != sig2 {
		t.Fatalf("expected deterministic signature, got %s vs %s", sig1, sig2)
	}
}

func TestSignature_JSONRoundTrip(t *testing.T) {
	s := New(testWallet(t), true)
	sig, err := s.SignL1Action(noopAction{Type: "noop"}, 1, nil, nil)
	if err != nil {
		t.Fatalf("SignL1Action: %v", err)
	}

	data, err := sig.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var decoded Signature
	if err := decoded.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if decoded != sig {
		t.Fatalf("round trip mismatch: %s vs %s", sig, decoded)
	}
}

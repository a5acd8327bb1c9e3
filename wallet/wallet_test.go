package wallet

import (
	"testing"

	"github.com/hyperliquid-client/gohl/errs"
)

const testKey = "0x0000000000000000000000000000000000000000000000000000000000000001"

func TestNew_DefaultsPrimaryAndAlias(t *testing.T) {
	w, err := New("", "", "0000000000000000000000000000000000000000000000000000000000000001")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.PrimaryAddress != w.DerivedAddress {
		t.Fatalf("expected primary to default to derived address")
	}
	if w.Alias != w.PrimaryAddress.Hex() {
		t.Fatalf("expected alias to default to primary address")
	}
}

func TestNew_ExplicitPrimaryAndAlias(t *testing.T) {
	w, err := New("trading-bot", "0x00000000000000000000000000000000000000aa", "0000000000000000000000000000000000000000000000000000000000000001")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.Alias != "trading-bot" {
		t.Fatalf("expected explicit alias to be kept, got %s", w.Alias)
	}
	if w.PrimaryAddress.Hex() != "0x00000000000000000000000000000000000000AA" {
		t.Fatalf("expected explicit primary address to be kept, got %s", w.PrimaryAddress.Hex())
	}
	if w.PrimaryAddress == w.DerivedAddress {
		t.Fatalf("expected primary and derived address to differ for a delegated wallet")
	}
}

func TestNew_BadPrivateKey(t *testing.T) {
	_, err := New("", "", "not-hex")
	if !errs.Is(err, errs.BadAddress) {
		t.Fatalf("expected BAD_ADDRESS, got %v", err)
	}
}

func TestNew_BadPrimaryAddress(t *testing.T) {
	_, err := New("", "not-an-address", "0000000000000000000000000000000000000000000000000000000000000001")
	if !errs.Is(err, errs.BadAddress) {
		t.Fatalf("expected BAD_ADDRESS, got %v", err)
	}
}

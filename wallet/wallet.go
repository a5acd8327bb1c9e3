// Package wallet holds the API wallet identity used to sign actions:
// the private key that actually produces ECDSA signatures, the address
// it derives, and the (possibly different) primary address the signer
// acts on behalf of when the wallet is an approved agent of another
// account.
package wallet

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hyperliquid-client/gohl/errs"
)

// Wallet is immutable once constructed; signing never mutates it.
type Wallet struct {
	Alias          string
	PrimaryAddress common.Address
	DerivedAddress common.Address
	privateKey     *ecdsa.PrivateKey
}

// New builds a Wallet from a hex-encoded ECDSA private key (with or
// without a leading "0x"). primaryAddress defaults to the key's derived
// address when empty; alias defaults to the primary address when empty.
func New(alias, primaryAddress, privateKeyHex string) (*Wallet, error) {
	keyHex := strings.TrimPrefix(privateKeyHex, "0x")
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, errs.Wrap(errs.BadAddress, "invalid private key", err)
	}
	derived := crypto.PubkeyToAddress(key.PublicKey)

	primary := derived
	if primaryAddress != "" {
		if !common.IsHexAddress(primaryAddress) {
			return nil, errs.New(errs.BadAddress, "invalid primary address "+primaryAddress)
		}
		primary = common.HexToAddress(primaryAddress)
	}

	effectiveAlias := alias
	if effectiveAlias == "" {
		effectiveAlias = primary.Hex()
	}

	return &Wallet{
		Alias:          effectiveAlias,
		PrimaryAddress: primary,
		DerivedAddress: derived,
		privateKey:     key,
	}, nil
}

// PrivateKey returns the underlying signing key for use by the signer
// package. It is a method rather than an exported field to keep the key
// out of struct dumps produced by careless %+v logging.
func (w *Wallet) PrivateKey() *ecdsa.PrivateKey { return w.privateKey }

// String deliberately omits the private key.
func (w *Wallet) String() string {
	return "Wallet{Alias: " + w.Alias + ", PrimaryAddress: " + w.PrimaryAddress.Hex() + "}"
}

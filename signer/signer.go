// Package signer implements the two action-signing paths: the L1 path
// (msgpack-framed digest + EIP-712 "Agent" wrapper) used for order,
// cancel, modify and similar trading actions, and the user-signed path
// (a fixed catalog of EIP-712 typed-data actions) used for transfers and
// delegation. Both paths sign with the wallet's API-wallet key and
// return a {r, s, v} triple.
package signer

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/hyperliquid-client/gohl/constants"
	"github.com/hyperliquid-client/gohl/errs"
	"github.com/hyperliquid-client/gohl/wallet"
	"github.com/vmihailenco/msgpack/v5"
)

// Signer signs actions on behalf of a single wallet against one network
// (mainnet or testnet never changes after construction).
type Signer struct {
	wallet    *wallet.Wallet
	isMainnet bool
}

// New builds a Signer bound to w and the given network.
func New(w *wallet.Wallet, isMainnet bool) *Signer {
	return &Signer{wallet: w, isMainnet: isMainnet}
}

// HashAction computes the keccak-256 digest the L1 path signs: the
// msgpack-encoded action, followed by the big-endian nonce, a
// hasVault flag (and 20-byte address if true), then a hasExpires flag
// (and 8-byte big-endian expiry if true). Both flag bytes are always
// written, present or not (0x01/0x00), matching Signing.java's
// sign_l1_action framing. Omitting or miscoding either byte changes the
// digest silently, so every L1 action must go through this function.
func HashAction(action any, nonce uint64, vaultAddress *common.Address, expiresAfterMs *uint64) (common.Hash, error) {
	data, err := msgpack.Marshal(action)
	if err != nil {
		return common.Hash{}, errs.Wrap(errs.EncodeError, "marshal action", err)
	}

	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)
	data = append(data, nonceBytes...)

	if vaultAddress != nil {
		data = append(data, 0x01)
		data = append(data, vaultAddress.Bytes()...)
	} else {
		data = append(data, 0x00)
	}

	if expiresAfterMs != nil {
		data = append(data, 0x01)
		expiryBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(expiryBytes, *expiresAfterMs)
		data = append(data, expiryBytes...)
	} else {
		data = append(data, 0x00)
	}

	return crypto.Keccak256Hash(data), nil
}

// SignL1Action signs action (any msgpack-encodable, stable-field-order
// value — use a struct, never a map, so the wire encoding order can't
// vary across runs) for the L1 path.
func (s *Signer) SignL1Action(action any, nonce uint64, vaultAddress *common.Address, expiresAfterMs *uint64) (Signature, error) {
	digest, err := HashAction(action, nonce, vaultAddress, expiresAfterMs)
	if err != nil {
		return Signature{}, err
	}

	agent := phantomAgent(digest, s.isMainnet)
	hash, _, err := apitypes.TypedDataAndHash(l1Payload(agent))
	if err != nil {
		return Signature{}, errs.Wrap(errs.SignError, "hash typed data", err)
	}

	return s.signHash(common.BytesToHash(hash))
}

// SignUserAction signs a fixed-catalog user-signed action. fields is the
// action's payloadTypes (beginning with hyperliquidChain, per the
// catalog each caller defines); message is the corresponding value set,
// which must already include "hyperliquidChain".
func (s *Signer) SignUserAction(primaryType string, fields []apitypes.Type, message apitypes.TypedDataMessage) (Signature, error) {
	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			primaryType: fields,
		},
		PrimaryType: primaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              "HyperliquidSignTransaction",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(constants.SignatureChainID),
			VerifyingContract: constants.ZeroAddress.Hex(),
		},
		Message: message,
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return Signature{}, errs.Wrap(errs.SignError, "hash typed data", err)
	}
	return s.signHash(common.BytesToHash(hash))
}

func (s *Signer) signHash(hash common.Hash) (Signature, error) {
	sig, err := crypto.Sign(hash.Bytes(), s.wallet.PrivateKey())
	if err != nil {
		return Signature{}, errs.Wrap(errs.SignError, "ecdsa sign", err)
	}
	if len(sig) != 65 {
		return Signature{}, errs.New(errs.SignError, "unexpected signature length")
	}

	var out Signature
	copy(out.R[:], sig[:32])
	copy(out.S[:], sig[32:64])

	v := sig[64]
	if v < 27 {
		v += 27
	}
	out.V = v

	return out, nil
}

// phantomAgent is the EIP-712 message the L1 digest is wrapped in:
// {source, connectionId}, where source distinguishes mainnet ("a") from
// testnet ("b").
func phantomAgent(digest common.Hash, isMainnet bool) apitypes.TypedDataMessage {
	source := "b"
	if isMainnet {
		source = "a"
	}
	return apitypes.TypedDataMessage{
		"source":       source,
		"connectionId": digest,
	}
}

func l1Payload(agent apitypes.TypedDataMessage) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Agent": {
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
		},
		PrimaryType: "Agent",
		Domain: apitypes.TypedDataDomain{
			Name:              "Exchange",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(constants.L1ChainID),
			VerifyingContract: constants.ZeroAddress.Hex(),
		},
		Message: agent,
	}
}

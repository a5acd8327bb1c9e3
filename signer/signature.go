package signer

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vmihailenco/msgpack/v5"
)

// Signature is the {r, s, v} triple returned by both signing paths.
type Signature struct {
	R common.Hash
	S common.Hash
	V byte
}

type signatureWire struct {
	R string `json:"r" msgpack:"r"`
	S string `json:"s" msgpack:"s"`
	V uint8  `json:"v" msgpack:"v"`
}

// MarshalJSON encodes as {"r":"0x...","s":"0x...","v":<number>}.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

var _ msgpack.CustomEncoder = (*Signature)(nil)

func (s *Signature) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(s.wire())
}

func (s Signature) wire() signatureWire {
	return signatureWire{
		R: hexutil.Encode(s.R[:]),
		S: hexutil.Encode(s.S[:]),
		V: s.V,
	}
}

// UnmarshalJSON decodes from {"r":"0x...","s":"0x...","v":<number>}.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var w signatureWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	rBytes, err := hexutil.Decode(w.R)
	if err != nil {
		return fmt.Errorf("invalid r: %w", err)
	}
	if len(rBytes) != len(s.R) {
		return fmt.Errorf("invalid r length: got %d, want %d", len(rBytes), len(s.R))
	}
	copy(s.R[:], rBytes)

	sBytes, err := hexutil.Decode(w.S)
	if err != nil {
		return fmt.Errorf("invalid s: %w", err)
	}
	if len(sBytes) != len(s.S) {
		return fmt.Errorf("invalid s length: got %d, want %d", len(sBytes), len(s.S))
	}
	copy(s.S[:], sBytes)

	s.V = byte(w.V)
	return nil
}

func (s Signature) String() string {
	return fmt.Sprintf("R: %s, S: %s, V: %d", hexutil.Encode(s.R[:]), hexutil.Encode(s.S[:]), s.V)
}

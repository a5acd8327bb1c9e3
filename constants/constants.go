// Package constants holds the fixed addresses, chain ids, and numeric
// bounds shared across the signer, transport, and facade.
package constants

import "github.com/ethereum/go-ethereum/common"

const (
	MainnetAPIURL = "https://api.hyperliquid.xyz"
	TestnetAPIURL = "https://api.hyperliquid-testnet.xyz"
	LocalAPIURL   = "http://localhost:3001"

	// L1ChainID is the EIP-712 domain chainId used by the L1 signing
	// path's "Exchange" phantom-agent payload. It is unrelated to the
	// user-signed path's chain id below.
	L1ChainID = 1337

	// SignatureChainID is the chain id threaded into user-signed actions'
	// "signatureChainId" field and the HyperliquidSignTransaction EIP-712
	// domain, decimal form. Same value as 0x66eee.
	SignatureChainID = 421614

	// DefaultSlippage is applied to market-open and close-market synthesized
	// prices when the caller does not override it.
	DefaultSlippage = "0.05"

	// DefaultExpiryMillis is the default L1 action expiry, relative to the
	// nonce, when the caller does not set one explicitly.
	DefaultExpiryMillis = 120_000

	// AbsoluteExpiryThreshold is the boundary above which an expiresAfter
	// value is interpreted as an absolute ms-since-epoch timestamp rather
	// than relative to the nonce.
	AbsoluteExpiryThreshold = 1_000_000_000_000

	// MaxBuilderFee is the inclusive upper bound on a builder fee's
	// tenths-of-a-basis-point value.
	MaxBuilderFee = 1_000_000

	// DefaultHTTPTimeoutSeconds is the per-attempt HTTP client timeout
	// applied when the caller does not configure one.
	DefaultHTTPTimeoutSeconds = 10
)

// ZeroAddress is the EIP-712 verifyingContract used by both signing
// domains; the protocol does not deploy a verifying contract.
var ZeroAddress = common.Address{}

// HyperliquidChain is the value of the "hyperliquidChain" field threaded
// into every user-signed action's message.
type HyperliquidChain string

const (
	ChainMainnet HyperliquidChain = "Mainnet"
	ChainTestnet HyperliquidChain = "Testnet"
)

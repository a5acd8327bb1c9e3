// Package hyperliquid is the order facade (component G): it composes
// the numeric codec, metadata cache, transport, signer, normalizer and
// account reader into the operation surface a trading caller uses —
// placing/cancelling/modifying orders, opening and closing positions,
// adjusting leverage and margin, and the fixed catalog of user-signed
// transfer and account-management actions.
package hyperliquid

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hyperliquid-client/gohl/account"
	"github.com/hyperliquid-client/gohl/constants"
	"github.com/hyperliquid-client/gohl/errs"
	"github.com/hyperliquid-client/gohl/info"
	"github.com/hyperliquid-client/gohl/market"
	"github.com/hyperliquid-client/gohl/order"
	"github.com/hyperliquid-client/gohl/rest"
	"github.com/hyperliquid-client/gohl/signer"
	"github.com/hyperliquid-client/gohl/wallet"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config builds a Client.
type Config struct {
	// BaseURL selects the server; empty defaults to mainnet.
	BaseURL string
	Timeout uint
	Retry   rest.RetryPolicy
	Logger  *zap.SugaredLogger

	// Wallet is the signing identity. Required.
	Wallet *wallet.Wallet
	// VaultAddress, if set, routes every L1 action through this vault.
	VaultAddress *common.Address
	// Dex selects a perp-dex other than the default ("").
	Dex string
	// DefaultSlippage overrides the normalizer's market-order slippage
	// (constants.DefaultSlippage if zero).
	DefaultSlippage decimal.Decimal
	// WarmUpCache eagerly loads meta/spotMeta/allMids at construction.
	WarmUpCache bool
}

// Client is a single wallet's trading session against one network.
type Client struct {
	rest       *rest.Client
	info       *info.Info
	cache      *market.Cache
	account    *account.Reader
	normalizer *order.Normalizer
	signer     *signer.Signer
	wallet     *wallet.Wallet

	vaultAddress *common.Address
	dex          string
	expiresAfter *uint64

	nonce nonceGenerator
}

// New builds a Client bound to cfg.Wallet.
func New(cfg Config) (*Client, error) {
	if cfg.Wallet == nil {
		return nil, errs.New(errs.BadAddress, "wallet is required")
	}

	restClient := rest.New(rest.Config{
		BaseUrl: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Retry:   cfg.Retry,
		Logger:  cfg.Logger,
	})

	infoClient := info.New(info.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	cache := market.New(infoMarketSource{info: infoClient}, cfg.Dex, log)
	acct := account.New(infoAccountSource{info: infoClient}, cfg.Dex)

	slippage := cfg.DefaultSlippage
	if slippage.IsZero() {
		slippage = decimal.RequireFromString(constants.DefaultSlippage)
	}

	c := &Client{
		rest:         restClient,
		info:         infoClient,
		cache:        cache,
		account:      acct,
		normalizer:   order.New(cache, acct, slippage),
		signer:       signer.New(cfg.Wallet, restClient.IsMainnet()),
		wallet:       cfg.Wallet,
		vaultAddress: cfg.VaultAddress,
		dex:          cfg.Dex,
	}

	if cfg.WarmUpCache {
		cache.WarmUp(context.Background())
	}

	return c, nil
}

// Close calls the underlying info client's Close, which holds no
// resources and does nothing.
func (c *Client) Close() { c.info.Close() }

// SetExpiresAfter sets an absolute or relative expiry (per spec §4.D:
// values >= 10^12 are treated as absolute unix millis, otherwise
// relative to the action's nonce) applied to every subsequent L1
// action. It has no effect on user-signed actions, which never carry
// an expiry (Open Question iii).
func (c *Client) SetExpiresAfter(ms uint64) { c.expiresAfter = &ms }

// ClearExpiresAfter reverts to the default 120s L1 expiry window.
func (c *Client) ClearExpiresAfter() { c.expiresAfter = nil }

// Account exposes the read-only position reader for callers that want
// to inspect state without placing an order.
func (c *Client) Account() *account.Reader { return c.account }

// Cache exposes the metadata/mid-price cache.
func (c *Client) Cache() *market.Cache { return c.cache }

func (c *Client) address() common.Address {
	if c.vaultAddress != nil {
		return *c.vaultAddress
	}
	return c.wallet.PrimaryAddress
}

func (c *Client) nowMillis() uint64 { return uint64(time.Now().UnixMilli()) }

// postL1 signs action for the L1 path and posts it to /exchange,
// decoding the JSON response into result.
func (c *Client) postL1(ctx context.Context, actionType string, action any, result any) error {
	nonce := c.nonce.next(c.nowMillis())

	expiry := c.expiresAfter
	if expiry == nil {
		def := uint64(constants.DefaultExpiryMillis)
		expiry = &def
	}
	if *expiry < constants.AbsoluteExpiryThreshold {
		abs := nonce + *expiry
		expiry = &abs
	}

	var vault *common.Address
	if actionType != "usdClassTransfer" && actionType != "sendAsset" {
		vault = c.vaultAddress
	}

	sig, err := c.signer.SignL1Action(action, nonce, vault, expiry)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"action":    action,
		"signature": sig,
		"nonce":     nonce,
	}
	if vault != nil {
		payload["vaultAddress"] = vault.Hex()
	}
	if expiry != nil {
		payload["expiresAfter"] = *expiry
	}

	return c.rest.Post(ctx, "/exchange", payload, result)
}

// postUserSigned posts an already-signed fixed-catalog user-signed
// action. nonce must be the same value embedded in action's own
// Nonce/Time field, since the user-signed EIP-712 digest binds it.
func (c *Client) postUserSigned(ctx context.Context, sig signer.Signature, nonce uint64, action any, result any) error {
	payload := map[string]any{
		"action":    action,
		"signature": sig,
		"nonce":     nonce,
	}
	return c.rest.Post(ctx, "/exchange", payload, result)
}

package hyperliquid

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hyperliquid-client/gohl/errs"
	"github.com/hyperliquid-client/gohl/market"
	"github.com/hyperliquid-client/gohl/numeric"
	"github.com/shopspring/decimal"
)

// VaultTransfer deposits (or, with isDeposit false, withdraws) usd from
// the caller's account into vault. Unlike the fixed user-signed
// catalog, this family is L1-signed — the teacher's request.go never
// gives these actions a signatureChainId/hyperliquidChain pair, so
// they go through postL1 rather than postUserSigned.
func (c *Client) VaultTransfer(ctx context.Context, vault common.Address, isDeposit bool, usd decimal.Decimal) error {
	action := map[string]any{
		"type":       "vaultTransfer",
		"vaultAddress": vault.Hex(),
		"isDeposit":  isDeposit,
		"usd":        numeric.ToUsdInt(usd).String(),
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "vaultTransfer", action, &result)
}

// SubAccountTransfer moves usd between the caller's main account and a
// sub-account.
func (c *Client) SubAccountTransfer(ctx context.Context, subAccount common.Address, isDeposit bool, usd decimal.Decimal) error {
	action := map[string]any{
		"type":          "subAccountTransfer",
		"subAccountUser": subAccount.Hex(),
		"isDeposit":     isDeposit,
		"usd":           numeric.ToUsdInt(usd).String(),
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "subAccountTransfer", action, &result)
}

// SubAccountSpotTransfer moves a spot token between the caller's main
// account and a sub-account.
func (c *Client) SubAccountSpotTransfer(ctx context.Context, subAccount common.Address, isDeposit bool, token string, amount decimal.Decimal) error {
	action := map[string]any{
		"type":          "subAccountSpotTransfer",
		"subAccountUser": subAccount.Hex(),
		"isDeposit":     isDeposit,
		"token":         token,
		"amount":        amount.String(),
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "subAccountSpotTransfer", action, &result)
}

// CreateSubAccount creates a new sub-account named name under the
// caller's account, returning its address.
func (c *Client) CreateSubAccount(ctx context.Context, name string) (common.Address, error) {
	action := map[string]any{
		"type": "createSubAccount",
		"name": name,
	}
	var result Response[struct {
		SubAccountUser string `json:"subAccountUser"`
	}]
	if err := c.postL1(ctx, "createSubAccount", action, &result); err != nil {
		return common.Address{}, err
	}
	if !result.IsOK() {
		return common.Address{}, fmt.Errorf("createSubAccount: %s", result.ErrorMessage)
	}
	return common.HexToAddress(result.Data.SubAccountUser), nil
}

// AgentEnableDexAbstraction lets an approved agent place orders across
// dexs on the account's behalf without a separate approval per dex.
func (c *Client) AgentEnableDexAbstraction(ctx context.Context) error {
	action := map[string]any{"type": "agentEnableDexAbstraction"}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "agentEnableDexAbstraction", action, &result)
}

// Noop submits the no-op action, used to burn a nonce without any
// state change (e.g. to recover from a gap in a batched nonce sequence).
func (c *Client) Noop(ctx context.Context) error {
	action := map[string]any{"type": "noop"}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "noop", action, &result)
}

// EvmUserModify toggles whether this account's actions are also
// mirrored to its EVM-side account (usingBigBlocks).
func (c *Client) EvmUserModify(ctx context.Context, usingBigBlocks bool) error {
	action := map[string]any{
		"type":           "evmUserModify",
		"usingBigBlocks": usingBigBlocks,
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "evmUserModify", action, &result)
}

// RegisterSpotToken is the first of spotDeploy's eight sub-operations:
// registers a new spot token with the given name, size/wei decimals
// and the maximum deployment gas (sent as "maxGas").
func (c *Client) RegisterSpotToken(ctx context.Context, name string, szDecimals, weiDecimals int, maxGas decimal.Decimal) error {
	return c.spotDeploy(ctx, "registerToken2", map[string]any{
		"spec": map[string]any{
			"name":        name,
			"szDecimals":  szDecimals,
			"weiDecimals": weiDecimals,
		},
		"maxGas": maxGas.String(),
	})
}

// RegisterSpotPair registers the trading pair between two previously
// registered spot tokens (the second spotDeploy sub-operation).
func (c *Client) RegisterSpotPair(ctx context.Context, baseToken, quoteToken int) error {
	return c.spotDeploy(ctx, "registerSpot", map[string]any{
		"tokens": []int{baseToken, quoteToken},
	})
}

// SetSpotGenesis sets a token's genesis balances (a spotDeploy
// sub-operation, run once per token before trading opens).
func (c *Client) SetSpotGenesis(ctx context.Context, token int, maxSupply decimal.Decimal) error {
	return c.spotDeploy(ctx, "genesis", map[string]any{
		"token":     token,
		"maxSupply": maxSupply.String(),
	})
}

// spotDeploy wraps one of the deployer-only spotDeploy sub-operations
// in its {"type": "spotDeploy", <key>: params} envelope and posts it
// L1-signed, per Exchange.java's spotDeploy family.
func (c *Client) spotDeploy(ctx context.Context, key string, params map[string]any) error {
	action := map[string]any{
		"type": "spotDeploy",
		key:    params,
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "spotDeploy", action, &result)
}

// RegisterPerpDex registers a new isolated perp-dex (the first of
// perpDeploy's sub-operations).
func (c *Client) RegisterPerpDex(ctx context.Context, dex, fullName string, oraclePxDecimals int) error {
	return c.perpDeploy(ctx, "registerAsset", map[string]any{
		"dex":              dex,
		"fullName":         fullName,
		"oraclePxDecimals": oraclePxDecimals,
	})
}

func (c *Client) perpDeploy(ctx context.Context, key string, params map[string]any) error {
	action := map[string]any{
		"type": "perpDeploy",
		key:    params,
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "perpDeploy", action, &result)
}

// CSignerAction jails or unjails a validator's consensus signer. jail
// selects the single populated variant ("jailSelf" when true,
// "unjailSelf" when false).
func (c *Client) CSignerAction(ctx context.Context, jail bool) error {
	key := "unjailSelf"
	if jail {
		key = "jailSelf"
	}
	action := map[string]any{
		"type": "CSignerAction",
		key:    map[string]any{},
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "CSignerAction", action, &result)
}

// CValidatorAction registers, changes the profile of, or unregisters a
// validator node, depending on which of register/changeProfile/
// unregister is supplied. When several are set, the first of Register,
// ChangeProfile, Unregister (true) is used; with none set the call fails.
type CValidatorAction struct {
	Register       *CValidatorRegister
	ChangeProfile  map[string]any
	Unregister     bool
}

// CValidatorRegister is the payload for registering a new validator.
type CValidatorRegister struct {
	NodeIP      string
	Name        string
	Description string
	Commission  int
}

func (c *Client) CValidatorAction(ctx context.Context, req CValidatorAction) error {
	action := map[string]any{"type": "CValidatorAction"}
	switch {
	case req.Register != nil:
		action["register"] = map[string]any{
			"profile": map[string]any{
				"node_ip":     map[string]any{"Ip": req.Register.NodeIP},
				"name":        req.Register.Name,
				"description": req.Register.Description,
			},
			"unjailed":   true,
			"initial_wei": 0,
		}
	case req.ChangeProfile != nil:
		action["changeProfile"] = req.ChangeProfile
	case req.Unregister:
		action["unregister"] = map[string]any{}
	default:
		return errs.New(errs.BadNumber, "exactly one of register/changeProfile/unregister is required")
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "CValidatorAction", action, &result)
}

// MultiSigSignature is one collected signer's signature over the inner
// action, as gathered out-of-band from a multi-sig group's members
// before the designated outer signer submits the wrapper.
type MultiSigSignature struct {
	R string `json:"r"`
	S string `json:"s"`
	V int    `json:"v"`
}

type multiSigPayload struct {
	MultiSigUser string `json:"multiSigUser"`
	OuterSigner  string `json:"outerSigner"`
	Action       any    `json:"action"`
}

type multiSigAction struct {
	Type             string              `json:"type"`
	SignatureChainId string              `json:"signatureChainId"`
	Signatures       []MultiSigSignature `json:"signatures"`
	Payload          multiSigPayload     `json:"payload"`
}

// MultiSig submits innerAction on behalf of multiSigUser, bundling
// signatures collected from the rest of the multi-sig group's signers.
// The caller's own wallet is the designated outer signer: it does not
// sign innerAction itself, only the multiSig wrapper around it, via the
// usual L1 path.
func (c *Client) MultiSig(ctx context.Context, multiSigUser common.Address, innerAction any, signatures []MultiSigSignature) error {
	action := multiSigAction{
		Type:             "multiSig",
		SignatureChainId: signatureChainIdHex(),
		Signatures:       signatures,
		Payload: multiSigPayload{
			MultiSigUser: strings.ToLower(multiSigUser.Hex()),
			OuterSigner:  strings.ToLower(c.wallet.DerivedAddress.Hex()),
			Action:       innerAction,
		},
	}
	var result Response[json.RawMessage]
	return c.postL1(ctx, "multiSig", action, &result)
}

// assetID resolves a symbol to its asset id through the market cache.
// No operation in this file calls it.
func (c *Client) assetID(ctx context.Context, symbol string, instrument market.Instrument) (int, error) {
	asset, err := c.cache.ResolveAsset(ctx, symbol, instrument)
	if err != nil {
		return 0, fmt.Errorf("resolve asset: %w", err)
	}
	return asset.ID, nil
}

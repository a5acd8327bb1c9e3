package hyperliquid

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/hyperliquid-client/gohl/constants"
	"github.com/shopspring/decimal"
)

// signatureChainIdHex is the hex form of constants.SignatureChainID,
// the value every user-signed action's signatureChainId field carries.
func signatureChainIdHex() string {
	return fmt.Sprintf("0x%x", constants.SignatureChainID)
}

// userSignedFields builds an action's EIP-712 field list: hyperliquidChain
// always comes first, per the fixed catalog's payloadTypes convention.
func userSignedFields(extra ...apitypes.Type) []apitypes.Type {
	return append([]apitypes.Type{{Name: "hyperliquidChain", Type: "string"}}, extra...)
}

// signUserSigned signs message/fields under primaryType, then posts
// action alongside the resulting signature and nonce.
func (c *Client) signUserSigned(ctx context.Context, primaryType string, fields []apitypes.Type, message apitypes.TypedDataMessage, nonce uint64, action any, result any) error {
	sig, err := c.signer.SignUserAction(primaryType, fields, message)
	if err != nil {
		return err
	}
	return c.postUserSigned(ctx, sig, nonce, action, result)
}

type usdSendAction struct {
	Type             string `json:"type"`
	HyperliquidChain string `json:"hyperliquidChain"`
	SignatureChainId string `json:"signatureChainId"`
	Destination      string `json:"destination"`
	Amount           string `json:"amount"`
	Time             uint64 `json:"time"`
}

// UsdSend transfers USDC from the perp wallet to destination on L1.
func (c *Client) UsdSend(ctx context.Context, destination common.Address, amount decimal.Decimal) error {
	nonce := c.nonce.next(c.nowMillis())
	action := usdSendAction{
		Type:             "usdSend",
		HyperliquidChain: c.rest.NetworkName(),
		SignatureChainId: signatureChainIdHex(),
		Destination:      strings.ToLower(destination.Hex()),
		Amount:           amount.String(),
		Time:             nonce,
	}
	fields := userSignedFields(
		apitypes.Type{Name: "destination", Type: "string"},
		apitypes.Type{Name: "amount", Type: "string"},
		apitypes.Type{Name: "time", Type: "uint64"},
	)
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": action.HyperliquidChain,
		"destination":      action.Destination,
		"amount":           action.Amount,
		"time":             action.Time,
	}
	var result Response[json.RawMessage]
	return c.signUserSigned(ctx, "HyperliquidTransaction:UsdSend", fields, message, nonce, action, &result)
}

type withdrawAction struct {
	Type             string `json:"type"`
	HyperliquidChain string `json:"hyperliquidChain"`
	SignatureChainId string `json:"signatureChainId"`
	Destination      string `json:"destination"`
	Amount           string `json:"amount"`
	Time             uint64 `json:"time"`
}

// Withdraw moves USDC from the exchange to destination on the native
// chain (the withdraw3 action).
func (c *Client) Withdraw(ctx context.Context, destination common.Address, amount decimal.Decimal) error {
	nonce := c.nonce.next(c.nowMillis())
	action := withdrawAction{
		Type:             "withdraw3",
		HyperliquidChain: c.rest.NetworkName(),
		SignatureChainId: signatureChainIdHex(),
		Destination:      strings.ToLower(destination.Hex()),
		Amount:           amount.String(),
		Time:             nonce,
	}
	fields := userSignedFields(
		apitypes.Type{Name: "destination", Type: "string"},
		apitypes.Type{Name: "amount", Type: "string"},
		apitypes.Type{Name: "time", Type: "uint64"},
	)
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": action.HyperliquidChain,
		"destination":      action.Destination,
		"amount":           action.Amount,
		"time":             action.Time,
	}
	var result Response[json.RawMessage]
	return c.signUserSigned(ctx, "HyperliquidTransaction:Withdraw", fields, message, nonce, action, &result)
}

type usdClassTransferAction struct {
	Type             string `json:"type"`
	HyperliquidChain string `json:"hyperliquidChain"`
	SignatureChainId string `json:"signatureChainId"`
	Amount           string `json:"amount"`
	ToPerp           bool   `json:"toPerp"`
	Nonce            uint64 `json:"nonce"`
}

// UsdClassTransfer moves USDC between the spot and perp wallets.
func (c *Client) UsdClassTransfer(ctx context.Context, amount decimal.Decimal, toPerp bool) error {
	nonce := c.nonce.next(c.nowMillis())
	amountStr := amount.String()
	if c.vaultAddress != nil {
		amountStr += fmt.Sprintf(" subaccount:%s", c.vaultAddress.Hex())
	}
	action := usdClassTransferAction{
		Type:             "usdClassTransfer",
		HyperliquidChain: c.rest.NetworkName(),
		SignatureChainId: signatureChainIdHex(),
		Amount:           amountStr,
		ToPerp:           toPerp,
		Nonce:            nonce,
	}
	fields := userSignedFields(
		apitypes.Type{Name: "amount", Type: "string"},
		apitypes.Type{Name: "toPerp", Type: "bool"},
		apitypes.Type{Name: "nonce", Type: "uint64"},
	)
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": action.HyperliquidChain,
		"amount":           action.Amount,
		"toPerp":           action.ToPerp,
		"nonce":            action.Nonce,
	}
	var result Response[json.RawMessage]
	return c.signUserSigned(ctx, "HyperliquidTransaction:UsdClassTransfer", fields, message, nonce, action, &result)
}

type spotSendAction struct {
	Type             string `json:"type"`
	HyperliquidChain string `json:"hyperliquidChain"`
	SignatureChainId string `json:"signatureChainId"`
	Destination      string `json:"destination"`
	Token            string `json:"token"`
	Amount           string `json:"amount"`
	Time             uint64 `json:"time"`
}

// SpotSend transfers a spot token to destination.
func (c *Client) SpotSend(ctx context.Context, destination common.Address, token string, amount decimal.Decimal) error {
	nonce := c.nonce.next(c.nowMillis())
	action := spotSendAction{
		Type:             "spotSend",
		HyperliquidChain: c.rest.NetworkName(),
		SignatureChainId: signatureChainIdHex(),
		Destination:      strings.ToLower(destination.Hex()),
		Token:            token,
		Amount:           amount.String(),
		Time:             nonce,
	}
	fields := userSignedFields(
		apitypes.Type{Name: "destination", Type: "string"},
		apitypes.Type{Name: "token", Type: "string"},
		apitypes.Type{Name: "amount", Type: "string"},
		apitypes.Type{Name: "time", Type: "uint64"},
	)
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": action.HyperliquidChain,
		"destination":      action.Destination,
		"token":            action.Token,
		"amount":           action.Amount,
		"time":             action.Time,
	}
	var result Response[json.RawMessage]
	return c.signUserSigned(ctx, "HyperliquidTransaction:SpotSend", fields, message, nonce, action, &result)
}

type sendAssetAction struct {
	Type             string `json:"type"`
	HyperliquidChain string `json:"hyperliquidChain"`
	SignatureChainId string `json:"signatureChainId"`
	Destination      string `json:"destination"`
	SourceDex        string `json:"sourceDex"`
	DestinationDex   string `json:"destinationDex"`
	Token            string `json:"token"`
	Amount           string `json:"amount"`
	FromSubAccount   string `json:"fromSubAccount"`
	Nonce            uint64 `json:"nonce"`
}

// SendAsset moves a token between dexs/sub-accounts in one action.
func (c *Client) SendAsset(ctx context.Context, destination common.Address, sourceDex, destinationDex, token string, amount decimal.Decimal) error {
	nonce := c.nonce.next(c.nowMillis())
	fromSubAccount := ""
	if c.vaultAddress != nil {
		fromSubAccount = c.vaultAddress.Hex()
	}
	action := sendAssetAction{
		Type:             "sendAsset",
		HyperliquidChain: c.rest.NetworkName(),
		SignatureChainId: signatureChainIdHex(),
		Destination:      destination.Hex(),
		SourceDex:        sourceDex,
		DestinationDex:   destinationDex,
		Token:            token,
		Amount:           amount.String(),
		FromSubAccount:   fromSubAccount,
		Nonce:            nonce,
	}
	fields := userSignedFields(
		apitypes.Type{Name: "destination", Type: "string"},
		apitypes.Type{Name: "sourceDex", Type: "string"},
		apitypes.Type{Name: "destinationDex", Type: "string"},
		apitypes.Type{Name: "token", Type: "string"},
		apitypes.Type{Name: "amount", Type: "string"},
		apitypes.Type{Name: "fromSubAccount", Type: "string"},
		apitypes.Type{Name: "nonce", Type: "uint64"},
	)
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": action.HyperliquidChain,
		"destination":      action.Destination,
		"sourceDex":        action.SourceDex,
		"destinationDex":   action.DestinationDex,
		"token":            action.Token,
		"amount":           action.Amount,
		"fromSubAccount":   action.FromSubAccount,
		"nonce":            action.Nonce,
	}
	var result Response[json.RawMessage]
	return c.signUserSigned(ctx, "HyperliquidTransaction:SendAsset", fields, message, nonce, action, &result)
}

type approveAgentAction struct {
	Type             string `json:"type"`
	HyperliquidChain string `json:"hyperliquidChain"`
	SignatureChainId string `json:"signatureChainId"`
	AgentAddress     string `json:"agentAddress"`
	AgentName        string `json:"agentName"`
	Nonce            uint64 `json:"nonce"`
}

// ApproveAgent authorizes an API wallet to sign on this account's
// behalf. agentName may be empty.
func (c *Client) ApproveAgent(ctx context.Context, agentAddress common.Address, agentName string) error {
	nonce := c.nonce.next(c.nowMillis())
	action := approveAgentAction{
		Type:             "approveAgent",
		HyperliquidChain: c.rest.NetworkName(),
		SignatureChainId: signatureChainIdHex(),
		AgentAddress:     strings.ToLower(agentAddress.Hex()),
		AgentName:        agentName,
		Nonce:            nonce,
	}
	fields := userSignedFields(
		apitypes.Type{Name: "agentAddress", Type: "address"},
		apitypes.Type{Name: "agentName", Type: "string"},
		apitypes.Type{Name: "nonce", Type: "uint64"},
	)
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": action.HyperliquidChain,
		"agentAddress":     action.AgentAddress,
		"agentName":        action.AgentName,
		"nonce":             action.Nonce,
	}
	var result Response[json.RawMessage]
	return c.signUserSigned(ctx, "HyperliquidTransaction:ApproveAgent", fields, message, nonce, action, &result)
}

type approveBuilderFeeAction struct {
	Type             string `json:"type"`
	HyperliquidChain string `json:"hyperliquidChain"`
	SignatureChainId string `json:"signatureChainId"`
	MaxFeeRate       string `json:"maxFeeRate"`
	Builder          string `json:"builder"`
	Nonce            uint64 `json:"nonce"`
}

// ApproveBuilderFee authorizes a builder to attach up to maxFeeRate
// (e.g. "0.001%") of builder fee to this account's orders.
func (c *Client) ApproveBuilderFee(ctx context.Context, builder common.Address, maxFeeRate string) error {
	nonce := c.nonce.next(c.nowMillis())
	action := approveBuilderFeeAction{
		Type:             "approveBuilderFee",
		HyperliquidChain: c.rest.NetworkName(),
		SignatureChainId: signatureChainIdHex(),
		MaxFeeRate:       maxFeeRate,
		Builder:          strings.ToLower(builder.Hex()),
		Nonce:            nonce,
	}
	fields := userSignedFields(
		apitypes.Type{Name: "maxFeeRate", Type: "string"},
		apitypes.Type{Name: "builder", Type: "address"},
		apitypes.Type{Name: "nonce", Type: "uint64"},
	)
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": action.HyperliquidChain,
		"maxFeeRate":       action.MaxFeeRate,
		"builder":          action.Builder,
		"nonce":            action.Nonce,
	}
	var result Response[json.RawMessage]
	return c.signUserSigned(ctx, "HyperliquidTransaction:ApproveBuilderFee", fields, message, nonce, action, &result)
}

type setReferrerAction struct {
	Type             string `json:"type"`
	HyperliquidChain string `json:"hyperliquidChain"`
	SignatureChainId string `json:"signatureChainId"`
	Code             string `json:"code"`
	Nonce            uint64 `json:"nonce"`
}

// SetReferrer attaches a referral code to this account. The spec's
// fixed catalog lists setReferrer as user-signed (the teacher's own
// request.go builds it as an unsigned L1 action instead, an
// inconsistency the catalog resolves in favor of the spec).
func (c *Client) SetReferrer(ctx context.Context, code string) error {
	nonce := c.nonce.next(c.nowMillis())
	action := setReferrerAction{
		Type:             "setReferrer",
		HyperliquidChain: c.rest.NetworkName(),
		SignatureChainId: signatureChainIdHex(),
		Code:             code,
		Nonce:            nonce,
	}
	fields := userSignedFields(
		apitypes.Type{Name: "code", Type: "string"},
		apitypes.Type{Name: "nonce", Type: "uint64"},
	)
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": action.HyperliquidChain,
		"code":             action.Code,
		"nonce":            action.Nonce,
	}
	var result Response[json.RawMessage]
	return c.signUserSigned(ctx, "HyperliquidTransaction:SetReferrer", fields, message, nonce, action, &result)
}

type tokenDelegateAction struct {
	Type             string `json:"type"`
	HyperliquidChain string `json:"hyperliquidChain"`
	SignatureChainId string `json:"signatureChainId"`
	Validator        string `json:"validator"`
	Wei              string `json:"wei"`
	IsUndelegate     bool   `json:"isUndelegate"`
	Nonce            uint64 `json:"nonce"`
}

// TokenDelegate stakes (or, with isUndelegate, unstakes) wei units of
// the native token with validator.
func (c *Client) TokenDelegate(ctx context.Context, validator common.Address, wei decimal.Decimal, isUndelegate bool) error {
	nonce := c.nonce.next(c.nowMillis())
	action := tokenDelegateAction{
		Type:             "tokenDelegate",
		HyperliquidChain: c.rest.NetworkName(),
		SignatureChainId: signatureChainIdHex(),
		Validator:        strings.ToLower(validator.Hex()),
		Wei:              wei.Truncate(0).String(),
		IsUndelegate:     isUndelegate,
		Nonce:            nonce,
	}
	fields := userSignedFields(
		apitypes.Type{Name: "validator", Type: "address"},
		apitypes.Type{Name: "wei", Type: "uint64"},
		apitypes.Type{Name: "isUndelegate", Type: "bool"},
		apitypes.Type{Name: "nonce", Type: "uint64"},
	)
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": action.HyperliquidChain,
		"validator":        action.Validator,
		"wei":              action.Wei,
		"isUndelegate":     action.IsUndelegate,
		"nonce":            action.Nonce,
	}
	var result Response[json.RawMessage]
	return c.signUserSigned(ctx, "HyperliquidTransaction:TokenDelegate", fields, message, nonce, action, &result)
}

type convertToMultiSigUserAction struct {
	Type             string `json:"type"`
	HyperliquidChain string `json:"hyperliquidChain"`
	SignatureChainId string `json:"signatureChainId"`
	SignersJSON      string `json:"signers"`
	Nonce            uint64 `json:"nonce"`
}

// ConvertToMultiSigUser converts this account into a multi-sig user
// guarded by the given authorized signer addresses and threshold.
func (c *Client) ConvertToMultiSigUser(ctx context.Context, signers []common.Address, threshold int) error {
	nonce := c.nonce.next(c.nowMillis())
	hexSigners := make([]string, len(signers))
	for i, s := range signers {
		hexSigners[i] = strings.ToLower(s.Hex())
	}
	signersJSON, err := json.Marshal(map[string]any{"authorizedUsers": hexSigners, "threshold": threshold})
	if err != nil {
		return err
	}

	action := convertToMultiSigUserAction{
		Type:             "convertToMultiSigUser",
		HyperliquidChain: c.rest.NetworkName(),
		SignatureChainId: signatureChainIdHex(),
		SignersJSON:      string(signersJSON),
		Nonce:            nonce,
	}
	fields := userSignedFields(
		apitypes.Type{Name: "signers", Type: "string"},
		apitypes.Type{Name: "nonce", Type: "uint64"},
	)
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": action.HyperliquidChain,
		"signers":          action.SignersJSON,
		"nonce":            action.Nonce,
	}
	var result Response[json.RawMessage]
	return c.signUserSigned(ctx, "HyperliquidTransaction:ConvertToMultiSigUser", fields, message, nonce, action, &result)
}

type userDexAbstractionAction struct {
	Type             string `json:"type"`
	HyperliquidChain string `json:"hyperliquidChain"`
	SignatureChainId string `json:"signatureChainId"`
	Dex              string `json:"dex"`
	Nonce            uint64 `json:"nonce"`
}

// UserDexAbstraction opts this account into abstracted-dex order
// routing for dex; there is no opt-out input.
func (c *Client) UserDexAbstraction(ctx context.Context, dex string) error {
	nonce := c.nonce.next(c.nowMillis())
	action := userDexAbstractionAction{
		Type:             "userDexAbstraction",
		HyperliquidChain: c.rest.NetworkName(),
		SignatureChainId: signatureChainIdHex(),
		Dex:              dex,
		Nonce:            nonce,
	}
	fields := userSignedFields(
		apitypes.Type{Name: "dex", Type: "string"},
		apitypes.Type{Name: "nonce", Type: "uint64"},
	)
	message := apitypes.TypedDataMessage{
		"hyperliquidChain": action.HyperliquidChain,
		"dex":              action.Dex,
		"nonce":            action.Nonce,
	}
	var result Response[json.RawMessage]
	return c.signUserSigned(ctx, "HyperliquidTransaction:UserDexAbstraction", fields, message, nonce, action, &result)
}

// Package rest is the single-endpoint JSON transport: POST a body, get a
// JSON tree back, with classified errors and an opt-in retry/back-off
// wrapper. Retry lives here and nowhere else — the signer and normalizer
// stay pure.
package rest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hyperliquid-client/gohl/constants"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

// ClientInterface is the transport contract the rest of the module
// depends on, so tests can stub it without a live server.
type ClientInterface interface {
	Post(ctx context.Context, path string, body any, result any) error
	IsMainnet() bool
	NetworkName() string
}

// RetryPolicy controls the back-off wrapper around HTTP_5XX/IO failures.
// The zero value disables retries (MaxRetries defaults to 0).
type RetryPolicy struct {
	InitialBackoff time.Duration
	Multiplier     float64
	MaxBackoff     time.Duration
	MaxRetries     int
}

// Config configures a Client.
type Config struct {
	// BaseUrl selects the server. Empty defaults to mainnet.
	BaseUrl string
	// Timeout is the per-attempt request timeout in seconds. Zero uses
	// constants.DefaultHTTPTimeoutSeconds.
	Timeout uint
	// Retry is the opt-in back-off policy. Zero value means no retries.
	Retry RetryPolicy
	// Logger receives debug request/response bodies when set. Nil uses a
	// no-op logger.
	Logger *zap.SugaredLogger
}

type Client struct {
	baseUrl   string
	isMainnet bool
	timeout   mo.Option[uint]
	retry     RetryPolicy
	log       *zap.SugaredLogger
	http      *resty.Client
}

// New creates a Client from Config.
func New(c Config) *Client {
	baseUrl := c.BaseUrl
	if baseUrl == "" {
		baseUrl = constants.MainnetAPIURL
	}

	var timeout mo.Option[uint]
	if c.Timeout != 0 {
		timeout = mo.Some(c.Timeout)
	}

	log := c.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Client{
		baseUrl:   baseUrl,
		isMainnet: baseUrl == constants.MainnetAPIURL,
		timeout:   timeout,
		retry:     c.Retry,
		log:       log,
		http: resty.New().
			SetJSONMarshaler(json.Marshal).
			SetJSONUnmarshaler(json.Unmarshal),
	}
}

// timeoutDuration resolves the configured timeout, falling back to
// constants.DefaultHTTPTimeoutSeconds when none was set.
func (c *Client) timeoutDuration() time.Duration {
	seconds := c.timeout.OrElse(constants.DefaultHTTPTimeoutSeconds)
	return time.Duration(seconds) * time.Second
}

// IsMainnet reports whether this client targets the mainnet API URL.
func (c *Client) IsMainnet() bool { return c.isMainnet }

// NetworkName is the "hyperliquidChain" value threaded into user-signed
// action payloads.
func (c *Client) NetworkName() string {
	if c.isMainnet {
		return string(constants.ChainMainnet)
	}
	return string(constants.ChainTestnet)
}

// Post sends a POST request to path with body, decoding the JSON
// response into result. When the client's RetryPolicy has MaxRetries >
// 0, HTTP_5XX and IO failures are retried with exponential back-off;
// HTTP_4XX never retries.
func (c *Client) Post(ctx context.Context, path string, body any, result any) error {
	url := c.baseUrl + path

	backoff := c.retry.InitialBackoff
	attempts := c.retry.MaxRetries + 1

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		reqCtx, cancel := context.WithTimeout(ctx, c.timeoutDuration())
		resp, err := c.http.R().
			SetContext(reqCtx).
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			SetResult(result).
			ForceContentType("application/json").
			Post(url)
		cancel()

		c.log.Debugw("rest request", "path", path, "attempt", attempt, "body", body)

		classified := classify(resp, err)
		if classified == nil {
			c.log.Debugw("rest response", "path", path, "attempt", attempt, "body", string(resp.Body()))
			return nil
		}
		c.log.Debugw("rest response", "path", path, "attempt", attempt, "error", classified)

		lastErr = classified
		if !retryable(classified) {
			return classified
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff, c.retry.Multiplier, c.retry.MaxBackoff)
	}

	return lastErr
}

func nextBackoff(prev time.Duration, multiplier float64, max time.Duration) time.Duration {
	if prev <= 0 {
		prev = time.Millisecond
	}
	next := time.Duration(float64(prev) * multiplier)
	if max > 0 && next > max {
		return max
	}
	return next
}

package rest

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/hyperliquid-client/gohl/errs"
)

// classify turns a resty response/error pair into the taxonomy from
// §7: HTTP_4XX (non-retryable), HTTP_5XX and IO (both retryable). A nil
// return means the request succeeded.
func classify(resp *resty.Response, err error) error {
	if err != nil {
		return errs.Wrap(errs.IO, "transport failure", err)
	}

	status := resp.StatusCode()
	switch {
	case status < 400:
		return nil
	case status < 500:
		return errs.New(errs.HTTP4xx, fmt.Sprintf("status %d: %s", status, resp.Body()))
	default:
		return errs.New(errs.HTTP5xx, fmt.Sprintf("status %d: %s", status, resp.Body()))
	}
}

func retryable(err error) bool {
	return errs.Is(err, errs.HTTP5xx) || errs.Is(err, errs.IO)
}

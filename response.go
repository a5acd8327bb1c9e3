package hyperliquid

import (
	"encoding/json"
	"fmt"

	"github.com/hyperliquid-client/gohl/types"
)

// Response is a generic top-level response that can hold any "ok" payload type.
type Response[T any] struct {
	Status       string
	Data         *T // present when Status == "ok"
	ErrorMessage string
}

// wire-level shape:
//
//	{"status": "ok" | "err", "response": <object or string>}
type rawResponse struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
}

func (r *Response[T]) UnmarshalJSON(data []byte) error {
	var raw rawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal raw response: %w", err)
	}

	r.Status = raw.Status
	r.Data = nil
	r.ErrorMessage = ""

	switch raw.Status {
	case "ok":
		var payload T
		if err := json.Unmarshal(raw.Response, &payload); err != nil {
			return fmt.Errorf("unmarshal ok response body: %w", err)
		}
		r.Data = &payload

	case "err":
		var msg string
		if err := json.Unmarshal(raw.Response, &msg); err != nil {
			return fmt.Errorf("unmarshal error response body: %w", err)
		}
		r.ErrorMessage = msg

	default:
		var msg string
		if err := json.Unmarshal(raw.Response, &msg); err != nil {
			msg = string(raw.Response)
		}
		r.ErrorMessage = msg
	}

	return nil
}

func (r Response[T]) IsOK() bool  { return r.Status == "ok" && r.Data != nil }
func (r Response[T]) IsErr() bool { return r.Status == "err" }

func extractStatuses[T any](data []byte) ([]T, error) {
	var raw struct {
		Type string          `json:"type"`
		Data ResponseData[T] `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return raw.Data.Statuses, nil
}

type ResponseData[T any] struct {
	Statuses []T `json:"statuses"`
}

// BulkOrdersResponse is a flat slice of OrderStatus, one per order
// submitted in the batch.
type BulkOrdersResponse []OrderStatus

func (or *BulkOrdersResponse) UnmarshalJSON(data []byte) error {
	statuses, err := extractStatuses[OrderStatus](data)
	if err != nil {
		return fmt.Errorf("unmarshal order response: %w", err)
	}
	*or = BulkOrdersResponse(statuses)
	return nil
}

type OrderStatus struct {
	Resting *OrderStatusResting `json:"resting,omitempty"`
	Filled  *OrderStatusFilled  `json:"filled,omitempty"`
	Error   *string             `json:"error,omitempty"`
}

type OrderStatusResting struct {
	Oid      int64        `json:"oid"`
	ClientId *types.Cloid `json:"cloid"`
}

type OrderStatusFilled struct {
	TotalSz string `json:"totalSz"`
	AvgPx   string `json:"avgPx"`
	Oid     int64  `json:"oid"`
}

// CancelResponse is a flat slice of per-cancel status strings.
type CancelResponse []CloseStatus

func (cr *CancelResponse) UnmarshalJSON(data []byte) error {
	statuses, err := extractStatuses[CloseStatus](data)
	if err != nil {
		return fmt.Errorf("unmarshal cancel response: %w", err)
	}
	*cr = CancelResponse(statuses)
	return nil
}

type CloseStatus string

// ModifyResponse is a flat slice of OrderStatus, one per modified order.
type ModifyResponse []OrderStatus

func (mr *ModifyResponse) UnmarshalJSON(data []byte) error {
	statuses, err := extractStatuses[OrderStatus](data)
	if err != nil {
		return fmt.Errorf("unmarshal modify response: %w", err)
	}
	*mr = ModifyResponse(statuses)
	return nil
}

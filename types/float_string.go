package types

import (
	"encoding/json"
	"strconv"
)

// FloatString represents a floating-point response field that the server
// may encode as either a JSON string or a JSON number. It exists purely
// for decoding loosely-typed info responses; nothing on the signing path
// uses it (see the numeric package for canonical wire formatting).
type FloatString float64

// UnmarshalJSON implements json.Unmarshaler for FloatString.
func (f *FloatString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = 0
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = FloatString(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FloatString(v)
	return nil
}

func (f FloatString) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

func (f FloatString) Raw() float64 {
	return float64(f)
}

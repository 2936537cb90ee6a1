package backend

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The backend is not strict about scalar types: weights arrive as "500"
// or 500, flags as true or "true". These types decode either form and
// fall back to the zero value instead of failing the whole document.

type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	var s string
	if json.Unmarshal(b, &s) == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if json.Unmarshal(b, &n) == nil {
		*f = FlexString(n.String())
	}
	return nil
}

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	var n float64
	if json.Unmarshal(b, &n) == nil {
		*f = FlexFloat(n)
		return nil
	}
	var s string
	if json.Unmarshal(b, &s) == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = FlexFloat(v)
		}
	}
	return nil
}

type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	var v bool
	if json.Unmarshal(b, &v) == nil {
		*f = FlexBool(v)
		return nil
	}
	var s string
	if json.Unmarshal(b, &s) == nil {
		v, _ = strconv.ParseBool(strings.TrimSpace(s))
		*f = FlexBool(v)
	}
	return nil
}

// FirstNonEmpty returns the first non-empty string, "" when all are.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// IsObject reports whether raw holds a JSON object.
func IsObject(raw json.RawMessage) bool {
	return strings.HasPrefix(strings.TrimSpace(string(raw)), "{")
}

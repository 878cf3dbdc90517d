package domain

import (
	"bytes"
	"encoding/json"
	"math"
)

// NullFloat is a float64 that may be absent. An absent value, NaN or an
// infinity always serializes as JSON null.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a present value.
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// Null returns the missing marker.
func Null() NullFloat {
	return NullFloat{}
}

// IsNull reports whether the value should be treated as missing.
func (n NullFloat) IsNull() bool {
	return !n.Valid || math.IsNaN(n.Value) || math.IsInf(n.Value, 0)
}

// Ptr returns nil for a missing value.
func (n NullFloat) Ptr() *float64 {
	if n.IsNull() {
		return nil
	}
	v := n.Value
	return &v
}

// MarshalJSON implements json.Marshaler
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if n.IsNull() {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON implements json.Unmarshaler
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Float(v)
	return nil
}

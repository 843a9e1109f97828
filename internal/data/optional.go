package data

import (
	"bytes"
	"encoding/json"
)

// OptionalInt32 is a nullable integer in a partial update body. Set reports
// whether the key appeared at all; an explicit null leaves Value nil.
type OptionalInt32 struct {
	Set   bool
	Value *int32
}

// UnmarshalJSON is only called when the key is present, including for null.
func (o *OptionalInt32) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}

	var n int32
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	o.Value = &n
	return nil
}

// nonNegative reports whether o is unset, null, or at least zero.
func (o OptionalInt32) nonNegative() bool {
	return o.Value == nil || *o.Value >= 0
}

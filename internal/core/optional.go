package core

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// Optional records whether a JSON field was present, explicitly null, or of
// the wrong type. A malformed value never fails the whole body.
type Optional[T any] struct {
	Value   T
	Present bool
	Null    bool
	Invalid bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		o.Invalid = true
		return nil
	}
	o.Value = v
	return nil
}

// Ok reports whether a usable value was supplied.
func (o Optional[T]) Ok() bool {
	return o.Present && !o.Null && !o.Invalid
}

// Assign copies the value into dst when set and clears dst on explicit null.
// Absent and mistyped fields leave dst untouched.
func (o Optional[T]) Assign(dst *T) {
	switch {
	case !o.Present || o.Invalid:
	case o.Null:
		var zero T
		*dst = zero
	default:
		*dst = o.Value
	}
}

// Text returns the string when it is set and not blank.
func Text(o Optional[string]) (string, bool) {
	if !o.Ok() || strings.TrimSpace(o.Value) == "" {
		return "", false
	}
	return o.Value, true
}

// ClampProgress rounds p to the nearest integer and bounds it to [0,100].
func ClampProgress(p float64) int {
	if math.IsNaN(p) {
		return 0
	}
	r := math.Round(p)
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return int(r)
}

package scenegraph

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Scalar is a geometric quantity that may not be determined yet.
//
// The zero value is unset. Arithmetic on Scalars propagates "unset": the sum or
// difference of an unset operand is unset, never zero. Callers that need a
// concrete number must decide on a default explicitly with [Scalar.Or].
type Scalar struct {
	v     float64
	valid bool
}

// Some returns a set Scalar holding v. NaN is representable so that writes can
// detect and reject it.
func Some(v float64) Scalar { return Scalar{v: v, valid: true} }

// Unset is the undetermined Scalar.
var Unset = Scalar{}

// Valid reports whether the Scalar holds a value.
func (s Scalar) Valid() bool { return s.valid }

// Get returns the value and whether it is set.
func (s Scalar) Get() (float64, bool) { return s.v, s.valid }

// Or returns the value, or def when unset.
func (s Scalar) Or(def float64) float64 {
	if !s.valid {
		return def
	}
	return s.v
}

// IsNaN reports whether the Scalar is set to NaN.
func (s Scalar) IsNaN() bool { return s.valid && math.IsNaN(s.v) }

// Add returns s+o, unset if either operand is unset.
func (s Scalar) Add(o Scalar) Scalar {
	if !s.valid || !o.valid {
		return Unset
	}
	return Some(s.v + o.v)
}

// Sub returns s-o, unset if either operand is unset.
func (s Scalar) Sub(o Scalar) Scalar {
	if !s.valid || !o.valid {
		return Unset
	}
	return Some(s.v - o.v)
}

// Equal reports whether both Scalars are unset, or both set to the same value.
func (s Scalar) Equal(o Scalar) bool {
	if s.valid != o.valid {
		return false
	}
	return !s.valid || s.v == o.v
}

// String formats the value, or "undefined" when unset.
func (s Scalar) String() string {
	if !s.valid {
		return "undefined"
	}
	return strconv.FormatFloat(s.v, 'g', -1, 64)
}

// MarshalJSON encodes an unset Scalar as null.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.valid || math.IsNaN(s.v) || math.IsInf(s.v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, s.v, 'g', -1, 64), nil
}

// UnmarshalJSON decodes null as unset.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Unset
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Some(v)
	return nil
}

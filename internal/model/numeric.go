package model

import (
	"math"
	"strconv"
	"strings"
)

// Numeric is a float64 that unmarshals from JSON numbers or numeric strings.
// Model responses quote numbers inconsistently ("subscribers": "1000000" vs
// 1000000); anything unparseable becomes NaN so the statistics layer can drop
// the row instead of failing the whole analysis.
type Numeric float64

func (n *Numeric) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = Numeric(math.NaN())
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = Numeric(math.NaN())
		return nil
	}
	*n = Numeric(f)
	return nil
}

// MarshalJSON emits a plain JSON number; NaN and infinities (dropped rows)
// encode as null.
func (n Numeric) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// Valid reports whether the value parsed to a finite number.
func (n Numeric) Valid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float64 returns the underlying value.
func (n Numeric) Float64() float64 {
	return float64(n)
}

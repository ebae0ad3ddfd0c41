package jsonwebtoken

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// maxNumericDate is 9999-12-31T23:59:59Z.
const maxNumericDate = 253402300799

// NumericDate is a JSON number of seconds since the Unix epoch (RFC 7519).
type NumericDate struct {
	time.Time
}

// NewNumericDate truncates t to whole seconds.
func NewNumericDate(t time.Time) NumericDate {
	return NumericDate{Time: t.Truncate(time.Second)}
}

func (date NumericDate) MarshalJSON() ([]byte, error) {
	if date.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, date.Unix(), 10), nil
}

// UnmarshalJSON accepts integer or fractional seconds. Fractions are dropped.
func (date *NumericDate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		date.Time = time.Time{}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid time format: expected unix timestamp, got %s", b)
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid time format: expected unix timestamp, got %s", b)
	}
	if f < 0 || f > maxNumericDate {
		return fmt.Errorf("invalid unix timestamp: %s", b)
	}

	date.Time = time.Unix(int64(f), 0).UTC()
	return nil
}

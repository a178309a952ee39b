package analytics

import (
	"bytes"
	"encoding/json"
)

// CategoryTotal is the summed spending of one category.
type CategoryTotal struct {
	Category string
	Amount   float64
}

// CategoryTotals keeps categories in the order they were first seen. It
// encodes as a JSON object whose keys follow that order.
type CategoryTotals []CategoryTotal

// Get returns the total for category.
func (c CategoryTotals) Get(category string) (float64, bool) {
	for _, t := range c {
		if t.Category == category {
			return t.Amount, true
		}
	}
	return 0, false
}

// MarshalJSON implements json.Marshaler.
func (c CategoryTotals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(t.Category)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

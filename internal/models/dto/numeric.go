package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Numeric is a number sent either as a JSON number or as a numeric string.
// It keeps the literal text; parsing and range checks belong to the service.
type Numeric string

// UnmarshalJSON implements json.Unmarshaler. null decodes to "".
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(strings.TrimSpace(s))
		return nil
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return errors.New("expected a number or numeric string")
		}
		*n = Numeric(num.String())
		return nil
	}
}

// String returns the literal text.
func (n Numeric) String() string { return string(n) }

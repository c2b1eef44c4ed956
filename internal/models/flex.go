package models

import (
	"encoding/json"
	"strings"
)

// FlexString holds a scalar JSON value that may arrive as a string, a number or null
type FlexString string

// UnmarshalJSON keeps the literal text of numbers and the content of strings
func (f *FlexString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*f = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	default:
		*f = FlexString(raw)
	}
	return nil
}

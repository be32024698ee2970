package jsonutil

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexibleStringValue converts a json.RawMessage to a string. The oracle is
// asked to send every profile value as a string, but it regularly sends
// graduation years and GPAs as bare numbers and flags as booleans. Returns an
// empty string for null or absent values.
func FlexibleStringValue(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		// Integers keep their exact form; floats keep whatever precision
		// the oracle sent
		if i, err := num.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return num.String()
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}

	// Objects and arrays pass through as raw JSON text
	return trimmed
}

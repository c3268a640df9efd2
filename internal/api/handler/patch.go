package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// PATCH bodies are partial: an absent field leaves the column unchanged while
// an explicit JSON null clears it. encoding/json cannot tell the two apart
// through pointers, so patch requests use json.RawMessage fields — nil means
// absent, the literal "null" means clear. The helpers below decode them.

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

func decodeString(field string, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%s must be a string", field)
	}
	return s, nil
}

func decodeBool(field string, raw json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, fmt.Errorf("%s must be a boolean", field)
	}
	return b, nil
}

func decodeTime(field string, raw json.RawMessage) (time.Time, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("%s must be a valid date", field)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a valid date", field)
	}
	return t, nil
}

// decodeNumber accepts JSON numbers and numeric strings ("42", "42.5").
func decodeNumber(field string, raw json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%s must be a number", field)
}

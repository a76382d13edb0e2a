package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// OptionalInt is an integer field of a loosely-shaped server response.
// The server may send a number, a numeric string, null, or omit the field
// entirely; anything unparsable leaves the value invalid instead of
// failing the whole decode.
type OptionalInt struct {
	Value int
	Valid bool
}

func (o *OptionalInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*o = OptionalInt{}
		return nil
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*o = OptionalInt{}
		return nil
	}

	switch value := v.(type) {
	case float64:
		*o = OptionalInt{Value: int(value), Valid: true}
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			*o = OptionalInt{}
			return nil
		}
		*o = OptionalInt{Value: n, Valid: true}
	default:
		*o = OptionalInt{}
	}
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// timeLayouts are the wire formats the backend is known to emit:
// RFC3339 with fractional seconds, and a bare ISO timestamp without zone.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
}

// OptionalTime is a timestamp field of a loosely-shaped server response.
// Absent, null, or unparsable values leave it invalid.
type OptionalTime struct {
	Time  time.Time
	Valid bool
}

func (o *OptionalTime) UnmarshalJSON(b []byte) error {
	if strings.TrimSpace(string(b)) == "null" {
		*o = OptionalTime{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*o = OptionalTime{}
		return nil
	}
	if s == "" {
		*o = OptionalTime{}
		return nil
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*o = OptionalTime{Time: t, Valid: true}
			return nil
		}
	}
	*o = OptionalTime{}
	return nil
}

func (o OptionalTime) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Time.Format(time.RFC3339Nano))
}

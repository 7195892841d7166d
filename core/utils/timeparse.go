package utils

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted for string timestamps, tried in order. The legacy intake
// wrote whatever the operator's browser produced, so both ISO-8601 and plain
// date forms occur.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// CoerceTime converts a loosely typed legacy timestamp value into a time.Time.
// It accepts native time values, ISO-8601 strings, epoch-millisecond numbers,
// and the exported document-store timestamp shape ({seconds, nanoseconds}).
// The second return value is false when the value cannot be interpreted;
// callers treat that as "absent", not as an error.
func CoerceTime(val any) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		return parseTimeString(v)
	case int:
		return fromEpoch(float64(v))
	case int64:
		return fromEpoch(float64(v))
	case float64:
		return fromEpoch(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromEpoch(f)
	case map[string]any:
		return fromTimestampDoc(v)
	default:
		return time.Time{}, false
	}
}

func parseTimeString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// Digit-only strings are epoch values exported as text, but only at epoch
	// magnitudes: 10 digits for seconds, 13 for milliseconds. Shorter runs are
	// compact dates ("20240301") or junk, and must not coerce into the 1970s.
	if isDigits(s) && (len(s) == 10 || len(s) == 13) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fromEpoch(f)
		}
	}

	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fromEpoch interprets a numeric epoch value. Values past 1e11 can only be
// milliseconds (that is beyond year 5138 in seconds); smaller ones are seconds.
func fromEpoch(f float64) (time.Time, bool) {
	if f <= 0 {
		return time.Time{}, false
	}
	ms := int64(f)
	if f < 1e11 {
		ms = int64(f * 1000)
	}
	return time.UnixMilli(ms).UTC(), true
}

// fromTimestampDoc handles the exported structured timestamp shape, which
// appears both as {seconds, nanoseconds} and {_seconds, _nanoseconds}.
func fromTimestampDoc(doc map[string]any) (time.Time, bool) {
	secVal, ok := doc["seconds"]
	if !ok {
		secVal, ok = doc["_seconds"]
	}
	if !ok {
		return time.Time{}, false
	}

	sec, ok := toInt64(secVal)
	if !ok || sec <= 0 {
		return time.Time{}, false
	}

	var nanos int64
	if nv, found := doc["nanoseconds"]; found {
		nanos, _ = toInt64(nv)
	} else if nv, found := doc["_nanoseconds"]; found {
		nanos, _ = toInt64(nv)
	}

	return time.Unix(sec, nanos).UTC(), true
}

func toInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case json.Number:
		i, err := v.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
